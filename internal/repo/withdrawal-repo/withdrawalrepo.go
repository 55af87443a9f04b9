package withdrawalrepo

import (
	"context"
	"errors"

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

func (r *Repository) Save(ctx context.Context, withdrawal *domain.Withdrawal) error {
	query := `
        INSERT INTO withdrawals (user_id, amount, bank_name, holder_name, account_number, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		withdrawal.UserID, withdrawal.Amount, withdrawal.BankName, withdrawal.HolderName,
		withdrawal.AccountNumber, withdrawal.Status, withdrawal.CreatedAt,
	).Scan(&withdrawal.ID)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Withdrawal, error) {
	query := `
        SELECT id, user_id, amount, bank_name, holder_name, account_number, status, created_at
        FROM withdrawals
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var wd domain.Withdrawal
	err := row.Scan(&wd.ID, &wd.UserID, &wd.Amount, &wd.BankName, &wd.HolderName, &wd.AccountNumber, &wd.Status, &wd.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find withdrawal", zap.Error(err))
		return nil, err
	}
	return &wd, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	query := `
        SELECT id, user_id, amount, bank_name, holder_name, account_number, status, created_at
        FROM withdrawals
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, userID)
}

func (r *Repository) FindByStatus(ctx context.Context, status string) ([]domain.Withdrawal, error) {
	query := `
        SELECT id, user_id, amount, bank_name, holder_name, account_number, status, created_at
        FROM withdrawals
        WHERE status = $1
        ORDER BY created_at ASC
    `
	return r.findMany(ctx, query, status)
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var wd domain.Withdrawal
		err := rows.Scan(&wd.ID, &wd.UserID, &wd.Amount, &wd.BankName, &wd.HolderName, &wd.AccountNumber, &wd.Status, &wd.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, wd)
	}
	return withdrawals, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `
        UPDATE withdrawals
        SET status = $2
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		zap.L().Error("can't update withdrawal", zap.Error(err))
		return err
	}
	return nil
}
