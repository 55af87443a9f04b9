package withdrawalservice

import (
	"context"
	"errors"
	"time"

	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/pg"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, withdrawal *domain.Withdrawal) error
	FindByID(ctx context.Context, id int) (*domain.Withdrawal, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	FindByStatus(ctx context.Context, status string) ([]domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type ProfileRepo interface {
	FindByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	// Debit decrements the balance only when it covers amount; the returned
	// bool reports whether the debit applied.
	Debit(ctx context.Context, userID int, amount float64) (bool, error)
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("withdrawal amount must be positive")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrNotPending          = errors.New("withdrawal is not pending")
)

type Service struct {
	repo        Repo
	profileRepo ProfileRepo
	txManager   pg.TXManager
	loc         *time.Location
}

func New(repo Repo, profileRepo ProfileRepo, txManager pg.TXManager, loc *time.Location) *Service {
	return &Service{
		repo:        repo,
		profileRepo: profileRepo,
		txManager:   txManager,
		loc:         loc,
	}
}

func (s *Service) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	if withdrawal.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	profile, err := s.profileRepo.FindByUserID(ctx, withdrawal.UserID)
	if err != nil {
		zap.L().Error("failed to get profile", zap.Error(err))
		return nil, err
	}
	if profile == nil || profile.CurrentBalance < withdrawal.Amount {
		return nil, ErrInsufficientBalance
	}

	withdrawal.Status = StatusPending
	withdrawal.CreatedAt = time.Now().In(s.loc)
	if err := s.repo.Save(ctx, withdrawal); err != nil {
		zap.L().Error("failed to create withdrawal record", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) GetByStatus(ctx context.Context, status string) ([]domain.Withdrawal, error) {
	withdrawals, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

// Review transitions a pending withdrawal. Approval debits the user's balance
// in the same transaction as the status flip, so the paid-out amount can never
// stay spendable. Transitions are terminal.
func (s *Service) Review(ctx context.Context, id int, approve bool) (*domain.Withdrawal, error) {
	withdrawal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("can't find withdrawal", zap.Error(err))
		return nil, err
	}
	if withdrawal == nil {
		return nil, ErrWithdrawalNotFound
	}
	if withdrawal.Status != StatusPending {
		return nil, ErrNotPending
	}

	if !approve {
		if err := s.repo.UpdateStatus(ctx, id, StatusRejected); err != nil {
			zap.L().Error("can't reject withdrawal", zap.Error(err))
			return nil, err
		}
		withdrawal.Status = StatusRejected
		return withdrawal, nil
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, id, StatusApproved); err != nil {
			return err
		}
		debited, err := s.profileRepo.Debit(ctx, withdrawal.UserID, withdrawal.Amount)
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientBalance
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't approve withdrawal", zap.Error(err))
		return nil, err
	}

	withdrawal.Status = StatusApproved
	return withdrawal, nil
}
