package planservice

import (
	"context"
	"errors"
	"time"

	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/pg"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, plan *domain.Plan) error
	FindAll(ctx context.Context) ([]domain.Plan, error)
	FindByID(ctx context.Context, id int) (*domain.Plan, error)
}

var (
	ErrPlanExists  = errors.New("plan with this name already exists")
	ErrInvalidPlan = errors.New("invalid plan parameters")
)

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	if plan.Name == "" || plan.Investment <= 0 || plan.PeriodDays <= 0 || plan.DailyEarning < 0 {
		return nil, ErrInvalidPlan
	}
	plan.CreatedAt = time.Now()

	if err := s.repo.Save(ctx, plan); err != nil {
		if pg.IsUniqueViolation(err) {
			return nil, ErrPlanExists
		}
		zap.L().Error("can't save plan", zap.Error(err))
		return nil, err
	}
	return plan, nil
}

func (s *Service) GetPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.repo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to get plans", zap.Error(err))
		return nil, err
	}
	return plans, nil
}
