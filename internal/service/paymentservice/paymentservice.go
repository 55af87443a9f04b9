package paymentservice

import (
	"context"
	"errors"
	"time"

	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/pg"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id int) (*domain.Payment, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Payment, error)
	FindByStatus(ctx context.Context, status string) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	CountApprovedByUser(ctx context.Context, userID int) (int, error)
}

type PlanRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Plan, error)
}

type ProfileRepo interface {
	FindByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	AssignPlan(ctx context.Context, userID, planID int, start, end time.Time) error
	AddReferralBonus(ctx context.Context, userID int, amount float64) error
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrNotPending      = errors.New("payment is not pending")
)

type Service struct {
	repo        Repo
	planRepo    PlanRepo
	profileRepo ProfileRepo
	txManager   pg.TXManager
	loc         *time.Location
}

func New(repo Repo, planRepo PlanRepo, profileRepo ProfileRepo, txManager pg.TXManager, loc *time.Location) *Service {
	return &Service{
		repo:        repo,
		planRepo:    planRepo,
		profileRepo: profileRepo,
		txManager:   txManager,
		loc:         loc,
	}
}

func (s *Service) CreatePayment(ctx context.Context, userID, planID int, paymentUID string) (*domain.Payment, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		zap.L().Error("can't find plan", zap.Error(err))
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	payment := &domain.Payment{
		UserID:     userID,
		PlanID:     planID,
		PaymentUID: paymentUID,
		Status:     StatusPending,
		CreatedAt:  time.Now().In(s.loc),
	}
	if err := s.repo.Save(ctx, payment); err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (s *Service) GetPayments(ctx context.Context, userID int) ([]domain.Payment, error) {
	payments, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get payments", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (s *Service) GetByStatus(ctx context.Context, status string) ([]domain.Payment, error) {
	payments, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		zap.L().Error("failed to get payments", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

// Review transitions a pending payment. Approval assigns the plan to the
// payer's profile and credits the referrer's bonus on the first approved
// payment, all in one transaction with the status flip. Transitions are
// terminal either way.
func (s *Service) Review(ctx context.Context, id int, approve bool) (*domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != StatusPending {
		return nil, ErrNotPending
	}

	if !approve {
		if err := s.repo.UpdateStatus(ctx, id, StatusRejected); err != nil {
			zap.L().Error("can't reject payment", zap.Error(err))
			return nil, err
		}
		payment.Status = StatusRejected
		return payment, nil
	}

	plan, err := s.planRepo.FindByID(ctx, payment.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	profile, err := s.profileRepo.FindByUserID(ctx, payment.UserID)
	if err != nil {
		return nil, err
	}

	approvedBefore, err := s.repo.CountApprovedByUser(ctx, payment.UserID)
	if err != nil {
		return nil, err
	}

	planStart := time.Now().In(s.loc)
	planEnd := planStart.AddDate(0, 0, plan.PeriodDays)

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, id, StatusApproved); err != nil {
			return err
		}
		if err := s.profileRepo.AssignPlan(ctx, payment.UserID, plan.ID, planStart, planEnd); err != nil {
			return err
		}
		if profile != nil && profile.ReferredBy != nil && plan.ReferralBonus > 0 && approvedBefore == 0 {
			return s.profileRepo.AddReferralBonus(ctx, *profile.ReferredBy, plan.ReferralBonus)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't approve payment", zap.Error(err))
		return nil, err
	}

	zap.L().Info("payment approved",
		zap.Int("paymentID", id),
		zap.Int("userID", payment.UserID),
		zap.String("plan", plan.Name),
	)
	payment.Status = StatusApproved
	return payment, nil
}
