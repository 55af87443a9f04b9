package tasks

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/dto"
	"github.com/taskvest/taskvest/internal/service/taskservice"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*TaskHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestGetTasksHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Tasks returned", func(t *testing.T) {
		service.EXPECT().GetTasks(gomock.Any()).Return([]domain.Task{
			{ID: uuid.New(), Title: "The Importance of Saving Money", CreatedAt: time.Now()},
			{ID: uuid.New(), Title: "Why Education Matters", CreatedAt: time.Now()},
		}, nil)

		rec := httptest.NewRecorder()
		handler.GetTasks(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.TaskResponseDTO
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("No tasks returns empty list", func(t *testing.T) {
		service.EXPECT().GetTasks(gomock.Any()).Return(nil, nil)

		rec := httptest.NewRecorder()
		handler.GetTasks(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestCreateTaskHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          []byte
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Task created",
			body: []byte(`{"title":"Benefits of Daily Exercise","url":"https://example.com/task-brief"}`),
			prepareMock: func() {
				service.EXPECT().
					CreateTask(gomock.Any(), "Benefits of Daily Exercise", "https://example.com/task-brief").
					Return(&domain.Task{
						ID:        uuid.New(),
						Title:     "Benefits of Daily Exercise",
						URL:       "https://example.com/task-brief",
						CreatedAt: time.Now(),
					}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Malformed JSON",
			body:          []byte("{"),
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Empty title",
			body: []byte(`{"title":""}`),
			prepareMock: func() {
				service.EXPECT().
					CreateTask(gomock.Any(), "", "").
					Return(nil, taskservice.ErrEmptyTitle)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "task title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/tasks", bytes.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.CreateTask(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedError != "" {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp["message"])
			}
		})
	}
}
