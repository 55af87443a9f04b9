package authservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/pg"
	"github.com/taskvest/taskvest/pkg/auth"
	"go.uber.org/zap"
)

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type ProfileRepo interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByReferralCode(ctx context.Context, code string) (*domain.Profile, error)
	IncrementReferralCount(ctx context.Context, userID int) error
}

var (
	ErrLoginTaken          = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnknownReferralCode = errors.New("unknown referral code")
)

type Service struct {
	userRepo    Repo
	profileRepo ProfileRepo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	txManager   pg.TXManager
}

func New(repo Repo, profileRepo ProfileRepo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:    repo,
		profileRepo: profileRepo,
		hashService: hashService,
		jwtService:  jwtService,
		txManager:   txManager,
	}
}

func (s *Service) Register(ctx context.Context, login, password, referralCode string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists, login: ", zap.String("login", login))
		return nil, ErrLoginTaken
	}

	var referrer *domain.Profile
	if referralCode != "" {
		referrer, err = s.profileRepo.FindByReferralCode(ctx, referralCode)
		if err != nil {
			zap.L().Error("can't find referrer: ", zap.Error(err))
			return nil, err
		}
		if referrer == nil {
			return nil, ErrUnknownReferralCode
		}
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Login:        login,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		newUser, err := s.userRepo.Create(ctx, user)
		if err != nil {
			return err
		}
		user = newUser

		profile := &domain.Profile{
			UserID:       newUser.ID,
			Name:         login,
			ReferralCode: newReferralCode(),
		}
		if referrer != nil {
			profile.ReferredBy = &referrer.UserID
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return err
		}

		if referrer != nil {
			return s.profileRepo.IncrementReferralCount(ctx, referrer.UserID)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("login", login))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(userID int, role string) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)

	token, err := s.jwtService.GenerateJWT(userID, role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
