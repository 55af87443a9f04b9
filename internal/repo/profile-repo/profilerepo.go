package profilerepo

import (
	"context"
	"errors"
	"time"

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

const profileColumns = `
    user_id, name, avatar_url, plan_id, plan_start, plan_end,
    current_balance, today_earning, last_earning_at, total_earning,
    referral_bonus, referral_count, referral_code, referred_by
`

func (r *Repository) scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.UserID, &p.Name, &p.AvatarURL, &p.PlanID, &p.PlanStart, &p.PlanEnd,
		&p.CurrentBalance, &p.TodayEarning, &p.LastEarningAt, &p.TotalEarning,
		&p.ReferralBonus, &p.ReferralCount, &p.ReferralCode, &p.ReferredBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan profile row", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
        INSERT INTO profiles (user_id, name, avatar_url, referral_code, referred_by)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query,
		profile.UserID, profile.Name, profile.AvatarURL, profile.ReferralCode, profile.ReferredBy)
	if err != nil {
		zap.L().Error("can't create profile", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return r.scanProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE referral_code = $1`
	return r.scanProfile(r.db.QueryRow(ctx, query, code))
}

func (r *Repository) UpdateInfo(ctx context.Context, userID int, name, avatarURL string) error {
	query := `
        UPDATE profiles
        SET name = $2, avatar_url = $3
        WHERE user_id = $1
    `
	_, err := r.db.Exec(ctx, query, userID, name, avatarURL)
	if err != nil {
		zap.L().Error("can't update profile", zap.Error(err))
		return err
	}
	return nil
}

// AddEarnings is the atomic earnings increment: one statement adds amount to
// the balance and total counters, and either extends or restarts the daily
// counter depending on the day bucket of the previous credit.
func (r *Repository) AddEarnings(ctx context.Context, userID int, amount float64, now time.Time) error {
	query := `
        UPDATE profiles
        SET current_balance = current_balance + $2,
            total_earning = total_earning + $2,
            today_earning = CASE
                WHEN last_earning_at >= date_trunc('day', $3::timestamp) THEN today_earning + $2
                ELSE $2
            END,
            last_earning_at = $3
        WHERE user_id = $1
    `
	_, err := r.db.Exec(ctx, query, userID, amount, now)
	if err != nil {
		zap.L().Error("can't add earnings", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AssignPlan(ctx context.Context, userID, planID int, start, end time.Time) error {
	query := `
        UPDATE profiles
        SET plan_id = $2, plan_start = $3, plan_end = $4
        WHERE user_id = $1
    `
	_, err := r.db.Exec(ctx, query, userID, planID, start, end)
	if err != nil {
		zap.L().Error("can't assign plan", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AddReferralBonus(ctx context.Context, userID int, amount float64) error {
	query := `
        UPDATE profiles
        SET referral_bonus = referral_bonus + $2,
            current_balance = current_balance + $2
        WHERE user_id = $1
    `
	_, err := r.db.Exec(ctx, query, userID, amount)
	if err != nil {
		zap.L().Error("can't add referral bonus", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) IncrementReferralCount(ctx context.Context, userID int) error {
	query := `
        UPDATE profiles
        SET referral_count = referral_count + 1
        WHERE user_id = $1
    `
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't increment referral count", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Debit(ctx context.Context, userID int, amount float64) (bool, error) {
	query := `
        UPDATE profiles
        SET current_balance = current_balance - $2
        WHERE user_id = $1 AND current_balance >= $2
    `
	tag, err := r.db.Exec(ctx, query, userID, amount)
	if err != nil {
		zap.L().Error("can't debit balance", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
