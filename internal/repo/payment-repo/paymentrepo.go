package paymentrepo

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

func (r *Repository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `
        INSERT INTO payments (user_id, plan_id, payment_uid, status, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		payment.UserID, payment.PlanID, payment.PaymentUID, payment.Status, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Payment, error) {
	query := `
        SELECT id, user_id, plan_id, payment_uid, status, created_at
        FROM payments
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var p domain.Payment
	err := row.Scan(&p.ID, &p.UserID, &p.PlanID, &p.PaymentUID, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Payment, error) {
	query := `
        SELECT id, user_id, plan_id, payment_uid, status, created_at
        FROM payments
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, userID)
}

func (r *Repository) FindByStatus(ctx context.Context, status string) ([]domain.Payment, error) {
	query := `
        SELECT id, user_id, plan_id, payment_uid, status, created_at
        FROM payments
        WHERE status = $1
        ORDER BY created_at ASC
    `
	return r.findMany(ctx, query, status)
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.PlanID, &p.PaymentUID, &p.Status, &p.CreatedAt); err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `
        UPDATE payments
        SET status = $2
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		zap.L().Error("can't update payment", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CountApprovedByUser(ctx context.Context, userID int) (int, error) {
	query := `
        SELECT count(*)
        FROM payments
        WHERE user_id = $1 AND status = 'approved'
    `
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		zap.L().Error("can't count payments", zap.Error(err))
		return 0, err
	}
	return count, nil
}
