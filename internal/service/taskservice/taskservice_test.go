package taskservice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
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

func TestService_CreateTask(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		mockSetup   func(m *MockRepo)
		expectedErr error
	}{
		{
			name:  "Task created with generated id",
			title: "Why Education Matters",
			mockSetup: func(m *MockRepo) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, task *domain.Task) error {
						assert.NotEqual(t, uuid.Nil, task.ID)
						assert.Equal(t, "Why Education Matters", task.Title)
						return nil
					})
			},
		},
		{
			name:        "Empty title",
			title:       "",
			mockSetup:   func(m *MockRepo) {},
			expectedErr: ErrEmptyTitle,
		},
		{
			name:  "Database error",
			title: "Why Education Matters",
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
			task, err := service.CreateTask(context.Background(), tt.title, "")
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, task)
			}
		})
	}
}

func TestService_GetTasks(t *testing.T) {
	service, mockRepo := NewMock(t)

	expected := []domain.Task{{ID: uuid.New(), Title: "Why Education Matters"}}
	mockRepo.EXPECT().FindAll(gomock.Any()).Return(expected, nil)
	tasks, err := service.GetTasks(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, tasks)

	mockRepo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("database error"))
	tasks, err = service.GetTasks(context.Background())
	assert.Error(t, err)
	assert.Nil(t, tasks)
}
