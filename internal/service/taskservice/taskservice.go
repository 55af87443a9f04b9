package taskservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskvest/taskvest/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, task *domain.Task) error
	FindAll(ctx context.Context) ([]domain.Task, error)
}

var ErrEmptyTitle = errors.New("task title is required")

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateTask(ctx context.Context, title, url string) (*domain.Task, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	task := &domain.Task{
		ID:        uuid.New(),
		Title:     title,
		URL:       url,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, task); err != nil {
		zap.L().Error("can't save task", zap.Error(err))
		return nil, err
	}
	return task, nil
}

func (s *Service) GetTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to get tasks", zap.Error(err))
		return nil, err
	}
	return tasks, nil
}
