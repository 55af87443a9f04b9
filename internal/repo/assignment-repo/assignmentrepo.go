package assignmentrepo

import (
	"context"
	"errors"
	"time"

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

const assignmentColumns = `id, user_id, task_id, title, urls, status, feedback, created_at`

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var a domain.Assignment
	err := row.Scan(&a.ID, &a.UserID, &a.TaskID, &a.Title, &a.URLs, &a.Status, &a.Feedback, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan assignment row", zap.Error(err))
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Save(ctx context.Context, assignment *domain.Assignment) error {
	query := `
        INSERT INTO assignments (user_id, task_id, title, urls, status, feedback, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		assignment.UserID, assignment.TaskID, assignment.Title, assignment.URLs,
		assignment.Status, assignment.Feedback, assignment.CreatedAt,
	).Scan(&assignment.ID)
	if err != nil {
		if !pg.IsUniqueViolation(err) {
			zap.L().Error("can't save assignment", zap.Error(err))
		}
		return err
	}
	return nil
}

func (r *Repository) FindApprovedForDay(ctx context.Context, userID int, taskID uuid.UUID, dayStart time.Time) (*domain.Assignment, error) {
	query := `
        SELECT ` + assignmentColumns + `
        FROM assignments
        WHERE user_id = $1 AND task_id = $2 AND status = 'approved' AND created_at >= $3
        LIMIT 1
    `
	return scanAssignment(r.db.QueryRow(ctx, query, userID, taskID, dayStart))
}

func (r *Repository) FindForDay(ctx context.Context, userID int, taskID uuid.UUID, dayStart time.Time) (*domain.Assignment, error) {
	query := `
        SELECT ` + assignmentColumns + `
        FROM assignments
        WHERE user_id = $1 AND task_id = $2 AND status != 'rejected' AND created_at >= $3
        LIMIT 1
    `
	return scanAssignment(r.db.QueryRow(ctx, query, userID, taskID, dayStart))
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Assignment, error) {
	query := `
        SELECT ` + assignmentColumns + `
        FROM assignments
        WHERE id = $1
    `
	return scanAssignment(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Assignment, error) {
	query := `
        SELECT ` + assignmentColumns + `
        FROM assignments
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, userID)
}

func (r *Repository) FindByStatus(ctx context.Context, status string) ([]domain.Assignment, error) {
	query := `
        SELECT ` + assignmentColumns + `
        FROM assignments
        WHERE status = $1
        ORDER BY created_at ASC
    `
	return r.findMany(ctx, query, status)
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get assignments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		err := rows.Scan(&a.ID, &a.UserID, &a.TaskID, &a.Title, &a.URLs, &a.Status, &a.Feedback, &a.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan assignment row", zap.Error(err))
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status, feedback string) error {
	query := `
        UPDATE assignments
        SET status = $2, feedback = $3
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id, status, feedback)
	if err != nil {
		if !pg.IsUniqueViolation(err) {
			zap.L().Error("can't update assignment", zap.Error(err))
		}
		return err
	}
	return nil
}
