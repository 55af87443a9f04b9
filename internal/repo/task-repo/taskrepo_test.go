package taskrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/taskvest/taskvest/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	id := uuid.New()

	task := &domain.Task{ID: id, Title: "Why Education Matters", URL: "", CreatedAt: now}

	t.Run("Successful save", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
			WithArgs(id, "Why Education Matters", "", now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Save(context.Background(), task)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
			WithArgs(id, "Why Education Matters", "", now).
			WillReturnError(errors.New("database error"))

		err := repo.Save(context.Background(), task)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	id := uuid.New()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Task
	}{
		{
			name: "Task exists",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "title", "url", "created_at"}).
					AddRow(id, "Why Education Matters", "", now)
				mock.ExpectQuery("FROM tasks").
					WithArgs(id).
					WillReturnRows(rows)
			},
			result: &domain.Task{ID: id, Title: "Why Education Matters", CreatedAt: now},
		},
		{
			name: "Task does not exist",
			mockSetup: func() {
				mock.ExpectQuery("FROM tasks").
					WithArgs(id).
					WillReturnRows(pgxmock.NewRows([]string{"id", "title", "url", "created_at"}))
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery("FROM tasks").
					WithArgs(id).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			task, err := repo.FindByID(context.Background(), id)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, task)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Tasks returned newest first", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "title", "url", "created_at"}).
			AddRow(uuid.New(), "Benefits of Daily Exercise", "", now).
			AddRow(uuid.New(), "Why Education Matters", "", now.Add(-time.Hour))
		mock.ExpectQuery("FROM tasks").WillReturnRows(rows)

		tasks, err := repo.FindAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, tasks, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery("FROM tasks").WillReturnError(errors.New("database error"))

		tasks, err := repo.FindAll(context.Background())

		assert.Error(t, err)
		assert.Nil(t, tasks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
