package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/pg"
	"github.com/taskvest/taskvest/pkg/auth"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	userRepo    *MockRepo
	profileRepo *MockProfileRepo
	hashService *auth.MockHashServiceInterface
	jwtService  *auth.MockJWTServiceInterface
	txManager   *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		userRepo:    NewMockRepo(ctrl),
		profileRepo: NewMockProfileRepo(ctrl),
		hashService: auth.NewMockHashServiceInterface(ctrl),
		jwtService:  auth.NewMockJWTServiceInterface(ctrl),
		txManager:   pg.NewMockTXManager(ctrl),
	}
	service := New(m.userRepo, m.profileRepo, m.hashService, m.jwtService, m.txManager)
	defer ctrl.Finish()
	return service, m
}

func passThroughTx(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name         string
		login        string
		password     string
		referralCode string
		mockSetup    func(m *mocks)
		expectedErr  error
	}{
		{
			name:     "Successful registration",
			login:    "alice",
			password: "password",
			mockSetup: func(m *mocks) {
				m.userRepo.EXPECT().FindByLogin(gomock.Any(), "alice").Return(nil, nil)
				m.hashService.EXPECT().HashPassword("password").Return("hashed", nil)
				passThroughTx(m)
				m.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *domain.User) (*domain.User, error) {
						assert.Equal(t, "alice", u.Login)
						assert.Equal(t, "hashed", u.PasswordHash)
						assert.Equal(t, domain.RoleUser, u.Role)
						u.ID = 1
						return u, nil
					})
				m.profileRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.Profile) error {
						assert.Equal(t, 1, p.UserID)
						assert.Len(t, p.ReferralCode, 8)
						assert.Nil(t, p.ReferredBy)
						return nil
					})
			},
		},
		{
			name:     "Registration with referral code",
			login:    "bob",
			password: "password",

			referralCode: "ABCD1234",
			mockSetup: func(m *mocks) {
				m.userRepo.EXPECT().FindByLogin(gomock.Any(), "bob").Return(nil, nil)
				m.profileRepo.EXPECT().FindByReferralCode(gomock.Any(), "ABCD1234").
					Return(&domain.Profile{UserID: 42, ReferralCode: "ABCD1234"}, nil)
				m.hashService.EXPECT().HashPassword("password").Return("hashed", nil)
				passThroughTx(m)
				m.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *domain.User) (*domain.User, error) {
						u.ID = 2
						return u, nil
					})
				m.profileRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.Profile) error {
						assert.NotNil(t, p.ReferredBy)
						assert.Equal(t, 42, *p.ReferredBy)
						return nil
					})
				m.profileRepo.EXPECT().IncrementReferralCount(gomock.Any(), 42).Return(nil)
			},
		},
		{
			name:     "Login already taken",
			login:    "alice",
			password: "password",
			mockSetup: func(m *mocks) {
				m.userRepo.EXPECT().FindByLogin(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice"}, nil)
			},
			expectedErr: ErrLoginTaken,
		},
		{
			name:         "Unknown referral code",
			login:        "bob",
			password:     "password",
			referralCode: "NOPE0000",
			mockSetup: func(m *mocks) {
				m.userRepo.EXPECT().FindByLogin(gomock.Any(), "bob").Return(nil, nil)
				m.profileRepo.EXPECT().FindByReferralCode(gomock.Any(), "NOPE0000").Return(nil, nil)
			},
			expectedErr: ErrUnknownReferralCode,
		},
		{
			name:     "Create fails inside transaction",
			login:    "alice",
			password: "password",
			mockSetup: func(m *mocks) {
				m.userRepo.EXPECT().FindByLogin(gomock.Any(), "alice").Return(nil, nil)
				m.hashService.EXPECT().HashPassword("password").Return("hashed", nil)
				passThroughTx(m)
				m.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.mockSetup(m)
			user, err := service.Register(context.Background(), tt.login, tt.password, tt.referralCode)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.login, user.Login)
			}
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	tests := []struct {
		name        string
		mockSetup   func(m *mocks)
		expectedErr error
	}{
		{
			name: "Valid credentials",
			mockSetup: func(m *mocks) {
				m.userRepo.EXPECT().FindByLogin(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice", PasswordHash: "hashed"}, nil)
				m.hashService.EXPECT().ComparePassword("hashed", "password").Return(true)
			},
		},
		{
			name: "Unknown login",
			mockSetup: func(m *mocks) {
				m.userRepo.EXPECT().FindByLogin(gomock.Any(), "alice").Return(nil, nil)
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name: "Wrong password",
			mockSetup: func(m *mocks) {
				m.userRepo.EXPECT().FindByLogin(gomock.Any(), "alice").
					Return(&domain.User{ID: 1, Login: "alice", PasswordHash: "hashed"}, nil)
				m.hashService.EXPECT().ComparePassword("hashed", "password").Return(false)
			},
			expectedErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.mockSetup(m)
			user, err := service.Authenticate(context.Background(), "alice", "password")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			}
		})
	}
}

func TestService_GenerateToken(t *testing.T) {
	service, m := NewMock(t)

	m.jwtService.EXPECT().GenerateJWT(1, domain.RoleAdmin, gomock.Any()).Return("token", nil)
	token, err := service.GenerateToken(1, domain.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, "token", token)

	m.jwtService.EXPECT().GenerateJWT(1, domain.RoleUser, gomock.Any()).Return("", errors.New("sign error"))
	token, err = service.GenerateToken(1, domain.RoleUser)
	assert.Error(t, err)
	assert.Empty(t, token)
}
