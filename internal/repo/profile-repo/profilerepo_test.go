package profilerepo

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

func profileRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"user_id", "name", "avatar_url", "plan_id", "plan_start", "plan_end",
		"current_balance", "today_earning", "last_earning_at", "total_earning",
		"referral_bonus", "referral_count", "referral_code", "referred_by",
	})
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Profile
	}{
		{
			name: "Profile exists",
			mockSetup: func() {
				rows := profileRows().
					AddRow(1, "alice", "", nil, nil, nil, 6000.0, 2000.0, nil, 6000.0, 0.0, 0, "ABCD1234", nil)
				mock.ExpectQuery("FROM profiles").
					WithArgs(1).
					WillReturnRows(rows)
			},
			result: &domain.Profile{
				UserID:         1,
				Name:           "alice",
				CurrentBalance: 6000,
				TodayEarning:   2000,
				TotalEarning:   6000,
				ReferralCode:   "ABCD1234",
			},
		},
		{
			name: "Profile does not exist",
			mockSetup: func() {
				mock.ExpectQuery("FROM profiles").
					WithArgs(1).
					WillReturnRows(profileRows())
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery("FROM profiles").
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_AddEarnings(t *testing.T) {
	repo, mock := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Earnings credited",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
					WithArgs(1, 2000.0, timeNow).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
					WithArgs(1, 2000.0, timeNow).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.AddEarnings(context.Background(), 1, 2000, timeNow)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_Debit(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		debited   bool
	}{
		{
			name: "Balance covers the amount",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
					WithArgs(1, 500.0).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			debited: true,
		},
		{
			name: "Insufficient balance",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
					WithArgs(1, 500.0).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			debited: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
					WithArgs(1, 500.0).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			debited, err := repo.Debit(context.Background(), 1, 500)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.debited, debited)
		})
	}
}
