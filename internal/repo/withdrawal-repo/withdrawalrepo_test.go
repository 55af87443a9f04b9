package withdrawalrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

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

func withdrawalRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "user_id", "amount", "bank_name", "holder_name", "account_number", "status", "created_at",
	})
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	withdrawal := &domain.Withdrawal{
		UserID:        1,
		Amount:        5000,
		BankName:      "First Bank",
		HolderName:    "John Doe",
		AccountNumber: "4561261212345467",
		Status:        "pending",
		CreatedAt:     now,
	}

	t.Run("Successful save", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO withdrawals")).
			WithArgs(1, 5000.0, "First Bank", "John Doe", "4561261212345467", "pending", now).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(3))

		err := repo.Save(context.Background(), withdrawal)

		assert.NoError(t, err)
		assert.Equal(t, 3, withdrawal.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO withdrawals")).
			WithArgs(1, 5000.0, "First Bank", "John Doe", "4561261212345467", "pending", now).
			WillReturnError(errors.New("database error"))

		err := repo.Save(context.Background(), withdrawal)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Withdrawal
	}{
		{
			name: "Withdrawal exists",
			mockSetup: func() {
				rows := withdrawalRows().
					AddRow(1, 1, 5000.0, "First Bank", "John Doe", "4561261212345467", "pending", now)
				mock.ExpectQuery("FROM withdrawals").
					WithArgs(1).
					WillReturnRows(rows)
			},
			result: &domain.Withdrawal{
				ID: 1, UserID: 1, Amount: 5000, BankName: "First Bank",
				HolderName: "John Doe", AccountNumber: "4561261212345467",
				Status: "pending", CreatedAt: now,
			},
		},
		{
			name: "Withdrawal does not exist",
			mockSetup: func() {
				mock.ExpectQuery("FROM withdrawals").
					WithArgs(1).
					WillReturnRows(withdrawalRows())
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery("FROM withdrawals").
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			withdrawal, err := repo.FindByID(context.Background(), 1)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, withdrawal)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Withdrawals returned newest first", func(t *testing.T) {
		rows := withdrawalRows().
			AddRow(2, 1, 3000.0, "First Bank", "John Doe", "4561261212345467", "pending", now).
			AddRow(1, 1, 2000.0, "First Bank", "John Doe", "4561261212345467", "approved", now.Add(-time.Hour))
		mock.ExpectQuery("FROM withdrawals").
			WithArgs(1).
			WillReturnRows(rows)

		withdrawals, err := repo.FindByUserID(context.Background(), 1)

		assert.NoError(t, err)
		assert.Len(t, withdrawals, 2)
		assert.Equal(t, 2, withdrawals[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery("FROM withdrawals").
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		withdrawals, err := repo.FindByUserID(context.Background(), 1)

		assert.Error(t, err)
		assert.Nil(t, withdrawals)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByStatus(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := withdrawalRows().
		AddRow(1, 1, 3000.0, "First Bank", "John Doe", "4561261212345467", "pending", now)
	mock.ExpectQuery("FROM withdrawals").
		WithArgs("pending").
		WillReturnRows(rows)

	withdrawals, err := repo.FindByStatus(context.Background(), "pending")

	assert.NoError(t, err)
	assert.Len(t, withdrawals, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Successful update", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE withdrawals")).
			WithArgs(1, "approved").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(context.Background(), 1, "approved")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE withdrawals")).
			WithArgs(1, "approved").
			WillReturnError(errors.New("database error"))

		err := repo.UpdateStatus(context.Background(), 1, "approved")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
