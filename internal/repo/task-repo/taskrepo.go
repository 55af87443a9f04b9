package taskrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, task *domain.Task) error {
	query := `
        INSERT INTO tasks (id, title, url, created_at)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.db.Exec(ctx, query, task.ID, task.Title, task.URL, task.CreatedAt)
	if err != nil {
		zap.L().Error("can't save task", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `
        SELECT id, title, url, created_at
        FROM tasks
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var task domain.Task
	err := row.Scan(&task.ID, &task.Title, &task.URL, &task.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find task", zap.Error(err))
		return nil, err
	}
	return &task, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Task, error) {
	query := `
        SELECT id, title, url, created_at
        FROM tasks
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get tasks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.URL, &task.CreatedAt); err != nil {
			zap.L().Error("can't scan task row", zap.Error(err))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
