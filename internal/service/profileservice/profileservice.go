package profileservice

import (
	"context"
	"errors"
	"time"

	"github.com/taskvest/taskvest/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	FindByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	UpdateInfo(ctx context.Context, userID int, name, avatarURL string) error
}

var ErrProfileNotFound = errors.New("profile not found")

type Service struct {
	repo Repo
	loc  *time.Location
}

func New(repo Repo, loc *time.Location) *Service {
	return &Service{repo: repo, loc: loc}
}

// GetProfile returns the profile with today_earning zeroed when the last
// credit happened before the current day bucket.
func (s *Service) GetProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get profile", zap.Error(err))
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	y, m, d := time.Now().In(s.loc).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	if profile.LastEarningAt == nil || profile.LastEarningAt.Before(dayStart) {
		profile.TodayEarning = 0
	}
	return profile, nil
}

// UpdateProfile changes only the fields present in the request; a non-nil
// empty avatar URL clears the stored one.
func (s *Service) UpdateProfile(ctx context.Context, userID int, name, avatarURL *string) (*domain.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get profile", zap.Error(err))
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if name != nil {
		profile.Name = *name
	}
	if avatarURL != nil {
		profile.AvatarURL = *avatarURL
	}
	if err := s.repo.UpdateInfo(ctx, userID, profile.Name, profile.AvatarURL); err != nil {
		zap.L().Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	return profile, nil
}
