package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type Profile struct {
	UserID         int        `db:"user_id"`
	Name           string     `db:"name"`
	AvatarURL      string     `db:"avatar_url"`
	PlanID         *int       `db:"plan_id"`
	PlanStart      *time.Time `db:"plan_start"`
	PlanEnd        *time.Time `db:"plan_end"`
	CurrentBalance float64    `db:"current_balance"`
	TodayEarning   float64    `db:"today_earning"`
	LastEarningAt  *time.Time `db:"last_earning_at"`
	TotalEarning   float64    `db:"total_earning"`
	ReferralBonus  float64    `db:"referral_bonus"`
	ReferralCount  int        `db:"referral_count"`
	ReferralCode   string     `db:"referral_code"`
	ReferredBy     *int       `db:"referred_by"`
}

type Plan struct {
	ID               int       `db:"id"`
	Name             string    `db:"name"`
	Investment       float64   `db:"investment"`
	DailyEarning     float64   `db:"daily_earning"`
	PeriodDays       int       `db:"period_days"`
	TotalReturn      float64   `db:"total_return"`
	ReferralBonus    float64   `db:"referral_bonus"`
	DailyAssignments int       `db:"daily_assignments"`
	CreatedAt        time.Time `db:"created_at"`
}

type Task struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}

type Assignment struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	TaskID    uuid.UUID `db:"task_id"`
	Title     string    `db:"title"`
	URLs      []string  `db:"urls"`
	Status    string    `db:"status"`
	Feedback  string    `db:"feedback"`
	CreatedAt time.Time `db:"created_at"`
}

type Payment struct {
	ID         int       `db:"id"`
	UserID     int       `db:"user_id"`
	PlanID     int       `db:"plan_id"`
	PaymentUID string    `db:"payment_uid"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

type Withdrawal struct {
	ID            int       `db:"id"`
	UserID        int       `db:"user_id"`
	Amount        float64   `db:"amount"`
	BankName      string    `db:"bank_name"`
	HolderName    string    `db:"holder_name"`
	AccountNumber string    `db:"account_number"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}
