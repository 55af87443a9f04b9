package planrepo

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

func (r *Repository) Save(ctx context.Context, plan *domain.Plan) error {
	query := `
        INSERT INTO plans (name, investment, daily_earning, period_days, total_return, referral_bonus, daily_assignments, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		plan.Name, plan.Investment, plan.DailyEarning, plan.PeriodDays,
		plan.TotalReturn, plan.ReferralBonus, plan.DailyAssignments, plan.CreatedAt,
	).Scan(&plan.ID)
	if err != nil {
		zap.L().Error("can't save plan", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Plan, error) {
	query := `
        SELECT id, name, investment, daily_earning, period_days, total_return, referral_bonus, daily_assignments, created_at
        FROM plans
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var plan domain.Plan
	err := row.Scan(
		&plan.ID, &plan.Name, &plan.Investment, &plan.DailyEarning, &plan.PeriodDays,
		&plan.TotalReturn, &plan.ReferralBonus, &plan.DailyAssignments, &plan.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find plan", zap.Error(err))
		return nil, err
	}
	return &plan, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Plan, error) {
	query := `
        SELECT id, name, investment, daily_earning, period_days, total_return, referral_bonus, daily_assignments, created_at
        FROM plans
        ORDER BY investment ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get plans", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var plan domain.Plan
		err := rows.Scan(
			&plan.ID, &plan.Name, &plan.Investment, &plan.DailyEarning, &plan.PeriodDays,
			&plan.TotalReturn, &plan.ReferralBonus, &plan.DailyAssignments, &plan.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan plan row", zap.Error(err))
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
