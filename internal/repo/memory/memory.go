// Package memory is the demo-mode fixture store. It backs the same repo
// interfaces as postgres but keeps everything in process, seeded with a few
// plans, tasks and an admin account so the API is usable without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/repo"
	"github.com/taskvest/taskvest/pkg/auth"
)

type Store struct {
	mu sync.Mutex

	users       map[int]*domain.User
	profiles    map[int]*domain.Profile
	plans       map[int]*domain.Plan
	tasks       map[uuid.UUID]*domain.Task
	assignments map[int]*domain.Assignment
	payments    map[int]*domain.Payment
	withdrawals map[int]*domain.Withdrawal

	nextUserID       int
	nextPlanID       int
	nextAssignmentID int
	nextPaymentID    int
	nextWithdrawalID int
}

// TXManager runs the callback directly; the store mutates under its own lock.
type TXManager struct{}

func (TXManager) Begin(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func New() *Store {
	s := &Store{
		users:       make(map[int]*domain.User),
		profiles:    make(map[int]*domain.Profile),
		plans:       make(map[int]*domain.Plan),
		tasks:       make(map[uuid.UUID]*domain.Task),
		assignments: make(map[int]*domain.Assignment),
		payments:    make(map[int]*domain.Payment),
		withdrawals: make(map[int]*domain.Withdrawal),
	}
	s.seed()
	return s
}

func (s *Store) Repositories() *repo.Repositories {
	return &repo.Repositories{
		UserRepo:       (*userRepo)(s),
		ProfileRepo:    (*profileRepo)(s),
		PlanRepo:       (*planRepo)(s),
		TaskRepo:       (*taskRepo)(s),
		AssignmentRepo: (*assignmentRepo)(s),
		PaymentRepo:    (*paymentRepo)(s),
		WithdrawalRepo: (*withdrawalRepo)(s),
	}
}

func (s *Store) seed() {
	now := time.Now()

	hash, _ := (&auth.HashService{}).HashPassword("admin")
	s.nextUserID++
	admin := &domain.User{ID: s.nextUserID, Login: "admin", PasswordHash: hash, Role: domain.RoleAdmin, CreatedAt: now}
	s.users[admin.ID] = admin
	s.profiles[admin.ID] = &domain.Profile{UserID: admin.ID, Name: "admin", ReferralCode: "ADMIN000"}

	plans := []domain.Plan{
		{Name: "Starter", Investment: 10000, DailyEarning: 2000, PeriodDays: 30, TotalReturn: 60000, ReferralBonus: 1000, DailyAssignments: 1},
		{Name: "Standard", Investment: 25000, DailyEarning: 5000, PeriodDays: 30, TotalReturn: 150000, ReferralBonus: 2500, DailyAssignments: 2},
		{Name: "Premium", Investment: 50000, DailyEarning: 10000, PeriodDays: 30, TotalReturn: 300000, ReferralBonus: 5000, DailyAssignments: 3},
	}
	for i := range plans {
		s.nextPlanID++
		plans[i].ID = s.nextPlanID
		plans[i].CreatedAt = now
		s.plans[plans[i].ID] = &plans[i]
	}

	tasks := []domain.Task{
		{ID: uuid.New(), Title: "The Importance of Saving Money", CreatedAt: now},
		{ID: uuid.New(), Title: "Why Education Matters", CreatedAt: now},
		{ID: uuid.New(), Title: "Benefits of Daily Exercise", CreatedAt: now},
	}
	for i := range tasks {
		s.tasks[tasks[i].ID] = &tasks[i]
	}
}

type userRepo Store

func (r *userRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Login == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	cp := *user
	cp.ID = s.nextUserID
	cp.CreatedAt = time.Now()
	s.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

type profileRepo Store

func (r *profileRepo) Create(_ context.Context, profile *domain.Profile) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *profile
	s.profiles[cp.UserID] = &cp
	return nil
}

func (r *profileRepo) FindByUserID(_ context.Context, userID int) (*domain.Profile, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *profileRepo) FindByReferralCode(_ context.Context, code string) (*domain.Profile, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ReferralCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *profileRepo) UpdateInfo(_ context.Context, userID int, name, avatarURL string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		p.Name = name
		p.AvatarURL = avatarURL
	}
	return nil
}

func (r *profileRepo) AddEarnings(_ context.Context, userID int, amount float64, now time.Time) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil
	}
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if p.LastEarningAt != nil && !p.LastEarningAt.Before(dayStart) {
		p.TodayEarning += amount
	} else {
		p.TodayEarning = amount
	}
	p.CurrentBalance += amount
	p.TotalEarning += amount
	t := now
	p.LastEarningAt = &t
	return nil
}

func (r *profileRepo) AssignPlan(_ context.Context, userID, planID int, start, end time.Time) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		p.PlanID = &planID
		p.PlanStart = &start
		p.PlanEnd = &end
	}
	return nil
}

func (r *profileRepo) AddReferralBonus(_ context.Context, userID int, amount float64) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		p.ReferralBonus += amount
		p.CurrentBalance += amount
	}
	return nil
}

func (r *profileRepo) IncrementReferralCount(_ context.Context, userID int) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		p.ReferralCount++
	}
	return nil
}

func (r *profileRepo) Debit(_ context.Context, userID int, amount float64) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok || p.CurrentBalance < amount {
		return false, nil
	}
	p.CurrentBalance -= amount
	return true, nil
}

type planRepo Store

func (r *planRepo) Save(_ context.Context, plan *domain.Plan) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPlanID++
	plan.ID = s.nextPlanID
	cp := *plan
	s.plans[cp.ID] = &cp
	return nil
}

func (r *planRepo) FindByID(_ context.Context, id int) (*domain.Plan, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *planRepo) FindAll(_ context.Context) ([]domain.Plan, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	plans := make([]domain.Plan, 0, len(s.plans))
	for _, p := range s.plans {
		plans = append(plans, *p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Investment < plans[j].Investment })
	return plans, nil
}

type taskRepo Store

func (r *taskRepo) Save(_ context.Context, task *domain.Task) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *task
	s.tasks[cp.ID] = &cp
	return nil
}

func (r *taskRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *taskRepo) FindAll(_ context.Context) ([]domain.Task, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

type assignmentRepo Store

func (r *assignmentRepo) Save(_ context.Context, assignment *domain.Assignment) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAssignmentID++
	assignment.ID = s.nextAssignmentID
	cp := *assignment
	s.assignments[cp.ID] = &cp
	return nil
}

func (r *assignmentRepo) FindApprovedForDay(_ context.Context, userID int, taskID uuid.UUID, dayStart time.Time) (*domain.Assignment, error) {
	return r.findForDay(userID, taskID, dayStart, true)
}

func (r *assignmentRepo) FindForDay(_ context.Context, userID int, taskID uuid.UUID, dayStart time.Time) (*domain.Assignment, error) {
	return r.findForDay(userID, taskID, dayStart, false)
}

func (r *assignmentRepo) findForDay(userID int, taskID uuid.UUID, dayStart time.Time, approvedOnly bool) (*domain.Assignment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assignments {
		if a.UserID != userID || a.TaskID != taskID || a.CreatedAt.Before(dayStart) {
			continue
		}
		if approvedOnly && a.Status != "approved" {
			continue
		}
		if !approvedOnly && a.Status == "rejected" {
			continue
		}
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *assignmentRepo) FindByID(_ context.Context, id int) (*domain.Assignment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *assignmentRepo) FindByUserID(_ context.Context, userID int) ([]domain.Assignment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Assignment
	for _, a := range s.assignments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *assignmentRepo) FindByStatus(_ context.Context, status string) ([]domain.Assignment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Assignment
	for _, a := range s.assignments {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *assignmentRepo) UpdateStatus(_ context.Context, id int, status, feedback string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.assignments[id]; ok {
		a.Status = status
		a.Feedback = feedback
	}
	return nil
}

type paymentRepo Store

func (r *paymentRepo) Save(_ context.Context, payment *domain.Payment) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPaymentID++
	payment.ID = s.nextPaymentID
	cp := *payment
	s.payments[cp.ID] = &cp
	return nil
}

func (r *paymentRepo) FindByID(_ context.Context, id int) (*domain.Payment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *paymentRepo) FindByUserID(_ context.Context, userID int) ([]domain.Payment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *paymentRepo) FindByStatus(_ context.Context, status string) ([]domain.Payment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *paymentRepo) UpdateStatus(_ context.Context, id int, status string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.payments[id]; ok {
		p.Status = status
	}
	return nil
}

func (r *paymentRepo) CountApprovedByUser(_ context.Context, userID int) (int, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.payments {
		if p.UserID == userID && p.Status == "approved" {
			count++
		}
	}
	return count, nil
}

type withdrawalRepo Store

func (r *withdrawalRepo) Save(_ context.Context, withdrawal *domain.Withdrawal) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextWithdrawalID++
	withdrawal.ID = s.nextWithdrawalID
	cp := *withdrawal
	s.withdrawals[cp.ID] = &cp
	return nil
}

func (r *withdrawalRepo) FindByID(_ context.Context, id int) (*domain.Withdrawal, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	wd, ok := s.withdrawals[id]
	if !ok {
		return nil, nil
	}
	cp := *wd
	return &cp, nil
}

func (r *withdrawalRepo) FindByUserID(_ context.Context, userID int) ([]domain.Withdrawal, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Withdrawal
	for _, wd := range s.withdrawals {
		if wd.UserID == userID {
			out = append(out, *wd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *withdrawalRepo) FindByStatus(_ context.Context, status string) ([]domain.Withdrawal, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Withdrawal
	for _, wd := range s.withdrawals {
		if wd.Status == status {
			out = append(out, *wd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *withdrawalRepo) UpdateStatus(_ context.Context, id int, status string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if wd, ok := s.withdrawals[id]; ok {
		wd.Status = status
	}
	return nil
}
