package planservice

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/taskvest/taskvest/internal/domain"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepo(ctrl)
	service := New(mockRepo)
	defer ctrl.Finish()
	return service, mockRepo
}

func TestService_CreatePlan(t *testing.T) {
	tests := []struct {
		name        string
		plan        *domain.Plan
		mockSetup   func(m *MockRepo)
		expectedErr error
	}{
		{
			name: "Plan created",
			plan: &domain.Plan{Name: "Standard", Investment: 25000, DailyEarning: 5000, PeriodDays: 30},
			mockSetup: func(m *MockRepo) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.Plan) error {
						p.ID = 2
						return nil
					})
			},
		},
		{
			name:        "Missing name",
			plan:        &domain.Plan{Investment: 25000, PeriodDays: 30},
			mockSetup:   func(m *MockRepo) {},
			expectedErr: ErrInvalidPlan,
		},
		{
			name:        "Non-positive investment",
			plan:        &domain.Plan{Name: "Standard", Investment: 0, PeriodDays: 30},
			mockSetup:   func(m *MockRepo) {},
			expectedErr: ErrInvalidPlan,
		},
		{
			name: "Duplicate name",
			plan: &domain.Plan{Name: "Standard", Investment: 25000, PeriodDays: 30},
			mockSetup: func(m *MockRepo) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
			},
			expectedErr: ErrPlanExists,
		},
		{
			name: "Database error",
			plan: &domain.Plan{Name: "Standard", Investment: 25000, PeriodDays: 30},
			mockSetup: func(m *MockRepo) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo := NewMock(t)
			tt.mockSetup(mockRepo)
			plan, err := service.CreatePlan(context.Background(), tt.plan)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
				assert.Nil(t, plan)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 2, plan.ID)
			}
		})
	}
}

func TestService_GetPlans(t *testing.T) {
	service, mockRepo := NewMock(t)

	expected := []domain.Plan{{ID: 1, Name: "Starter"}, {ID: 2, Name: "Standard"}}
	mockRepo.EXPECT().FindAll(gomock.Any()).Return(expected, nil)
	plans, err := service.GetPlans(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, plans)

	mockRepo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("database error"))
	plans, err = service.GetPlans(context.Background())
	assert.Error(t, err)
	assert.Nil(t, plans)
}
