package assignmentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/pg"
	"github.com/taskvest/taskvest/internal/verifier"
	gomock "go.uber.org/mock/gomock"
)

var (
	testTaskID = uuid.MustParse("6b1bb09c-9b38-4e2b-8d54-1a62cbd3fd6a")
	testImages = []string{"data:image/png;base64,AAAA", "data:image/jpeg;base64,BBBB"}
)

type mocks struct {
	repo        *MockRepo
	taskRepo    *MockTaskRepo
	profileRepo *MockProfileRepo
	verifier    *MockVerifier
	txManager   *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:        NewMockRepo(ctrl),
		taskRepo:    NewMockTaskRepo(ctrl),
		profileRepo: NewMockProfileRepo(ctrl),
		verifier:    NewMockVerifier(ctrl),
		txManager:   pg.NewMockTXManager(ctrl),
	}
	service := New(m.repo, m.taskRepo, m.profileRepo, m.verifier, m.txManager, time.UTC)
	defer ctrl.Finish()
	return service, m
}

func passThroughTx(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name        string
		sub         Submission
		wantField   string
		expectValid bool
	}{
		{
			name:        "Valid submission",
			sub:         Submission{TaskID: testTaskID.String(), Title: "Daily Task 1", Images: testImages},
			expectValid: true,
		},
		{
			name:      "Missing task id",
			sub:       Submission{Title: "Daily Task 1", Images: testImages},
			wantField: "task_id",
		},
		{
			name:      "Malformed task id",
			sub:       Submission{TaskID: "not-a-uuid", Title: "Daily Task 1", Images: testImages},
			wantField: "task_id",
		},
		{
			name:      "Missing title",
			sub:       Submission{TaskID: testTaskID.String(), Title: "   ", Images: testImages},
			wantField: "title",
		},
		{
			name:      "Empty image list",
			sub:       Submission{TaskID: testTaskID.String(), Title: "Daily Task 1"},
			wantField: "images",
		},
		{
			name: "Too many images",
			sub: Submission{TaskID: testTaskID.String(), Title: "Daily Task 1", Images: []string{
				"data:image/png;base64,A", "data:image/png;base64,B", "data:image/png;base64,C",
				"data:image/png;base64,D", "data:image/png;base64,E", "data:image/png;base64,F",
			}},
			wantField: "images",
		},
		{
			name:      "Not a data URI",
			sub:       Submission{TaskID: testTaskID.String(), Title: "Daily Task 1", Images: []string{"https://example.com/img.png"}},
			wantField: "images[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taskID, verr := ValidateSubmission(tt.sub)
			if tt.expectValid {
				assert.Nil(t, verr)
				assert.Equal(t, testTaskID, taskID)
				return
			}
			assert.NotNil(t, verr)
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestSubmitForVerification(t *testing.T) {
	validSub := Submission{TaskID: testTaskID.String(), Title: "Daily Task 1", Images: testImages}
	task := &domain.Task{ID: testTaskID, Title: "Daily Task 1"}

	tests := []struct {
		name          string
		sub           Submission
		prepareMock   func(m *mocks)
		expected      verifier.Decision
		expectedError error
	}{
		{
			name: "Invalid submission rejected before any call",
			sub:  Submission{TaskID: testTaskID.String(), Title: "Daily Task 1"},
			// no mock expectations: neither the store nor the verifier may be touched
			prepareMock:   func(m *mocks) {},
			expectedError: &ValidationError{},
		},
		{
			name: "Unknown task",
			sub:  validSub,
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(nil, nil)
			},
			expectedError: ErrTaskNotFound,
		},
		{
			name: "Already approved today short-circuits before the verifier",
			sub:  validSub,
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindApprovedForDay(gomock.Any(), 1, testTaskID, gomock.Any()).
					Return(&domain.Assignment{Status: StatusApproved}, nil)
			},
			expectedError: ErrAlreadyApprovedToday,
		},
		{
			name: "Guard query failure aborts before any write",
			sub:  validSub,
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindApprovedForDay(gomock.Any(), 1, testTaskID, gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
		{
			name: "Rejected decision leaves no row",
			sub:  validSub,
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindApprovedForDay(gomock.Any(), 1, testTaskID, gomock.Any()).Return(nil, nil)
				m.verifier.EXPECT().Verify(gomock.Any(), "Daily Task 1", testImages).
					Return(verifier.Decision{Approved: false, Reason: verifier.ReasonNotHandwritten})
			},
			expected: verifier.Decision{Approved: false, Reason: verifier.ReasonNotHandwritten},
		},
		{
			name: "Approved decision inserts one row and credits 2000 in one transaction",
			sub:  validSub,
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindApprovedForDay(gomock.Any(), 1, testTaskID, gomock.Any()).Return(nil, nil)
				m.verifier.EXPECT().Verify(gomock.Any(), "Daily Task 1", testImages).
					Return(verifier.Decision{Approved: true, Reason: verifier.ReasonApproved})
				passThroughTx(m)
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *domain.Assignment) error {
						assert.Equal(t, StatusApproved, a.Status)
						assert.Equal(t, verifier.ReasonApproved, a.Feedback)
						assert.Equal(t, testImages, a.URLs)
						return nil
					})
				m.profileRepo.EXPECT().AddEarnings(gomock.Any(), 1, AssignmentBonus, gomock.Any()).Return(nil)
			},
			expected: verifier.Decision{Approved: true, Reason: verifier.ReasonApproved},
		},
		{
			name: "Insert failure surfaces with the feedback attached",
			sub:  validSub,
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindApprovedForDay(gomock.Any(), 1, testTaskID, gomock.Any()).Return(nil, nil)
				m.verifier.EXPECT().Verify(gomock.Any(), "Daily Task 1", testImages).
					Return(verifier.Decision{Approved: true, Reason: verifier.ReasonApproved})
				passThroughTx(m)
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
			},
			expected:      verifier.Decision{Approved: true, Reason: verifier.ReasonApproved},
			expectedError: errors.New("insert failed"),
		},
		{
			name: "Concurrent duplicate maps to already approved",
			sub:  validSub,
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindApprovedForDay(gomock.Any(), 1, testTaskID, gomock.Any()).Return(nil, nil)
				m.verifier.EXPECT().Verify(gomock.Any(), "Daily Task 1", testImages).
					Return(verifier.Decision{Approved: true, Reason: verifier.ReasonApproved})
				passThroughTx(m)
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
			},
			expectedError: ErrAlreadyApprovedToday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			decision, err := service.SubmitForVerification(context.Background(), 1, tt.sub)
			if tt.expectedError != nil {
				assert.Error(t, err)
				var verr *ValidationError
				if errors.As(tt.expectedError, &verr) {
					assert.ErrorAs(t, err, &verr)
				} else {
					assert.Equal(t, tt.expectedError.Error(), err.Error())
				}
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, decision)
		})
	}
}

func TestSubmitURL(t *testing.T) {
	task := &domain.Task{ID: testTaskID, Title: "Daily Task 1"}

	tests := []struct {
		name          string
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name: "New pending assignment created",
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindForDay(gomock.Any(), 1, testTaskID, gomock.Any()).Return(nil, nil)
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *domain.Assignment) error {
						assert.Equal(t, StatusPending, a.Status)
						assert.Equal(t, []string{"https://example.com/proof"}, a.URLs)
						return nil
					})
			},
		},
		{
			name: "Approved today",
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindForDay(gomock.Any(), 1, testTaskID, gomock.Any()).
					Return(&domain.Assignment{Status: StatusApproved}, nil)
			},
			expectedError: ErrAlreadyApprovedToday,
		},
		{
			name: "Pending today",
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(task, nil)
				m.repo.EXPECT().FindForDay(gomock.Any(), 1, testTaskID, gomock.Any()).
					Return(&domain.Assignment{Status: StatusPending}, nil)
			},
			expectedError: ErrAlreadySubmittedToday,
		},
		{
			name: "Unknown task",
			prepareMock: func(m *mocks) {
				m.taskRepo.EXPECT().FindByID(gomock.Any(), testTaskID).Return(nil, nil)
			},
			expectedError: ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			assignment, err := service.SubmitURL(context.Background(), 1, testTaskID, "Daily Task 1", "https://example.com/proof")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, assignment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, assignment)
				assert.Equal(t, StatusPending, assignment.Status)
			}
		})
	}
}

func TestReview(t *testing.T) {
	pending := &domain.Assignment{ID: 7, UserID: 1, TaskID: testTaskID, Status: StatusPending}

	tests := []struct {
		name           string
		approve        bool
		prepareMock    func(m *mocks)
		expectedStatus string
		expectedError  error
	}{
		{
			name:    "Approval credits earnings in one transaction",
			approve: true,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(pending, nil)
				m.repo.EXPECT().FindApprovedForDay(gomock.Any(), 1, testTaskID, gomock.Any()).Return(nil, nil)
				passThroughTx(m)
				m.repo.EXPECT().UpdateStatus(gomock.Any(), 7, StatusApproved, "looks good").Return(nil)
				m.profileRepo.EXPECT().AddEarnings(gomock.Any(), 1, AssignmentBonus, gomock.Any()).Return(nil)
			},
			expectedStatus: StatusApproved,
		},
		{
			name:    "Rejection flips status only",
			approve: false,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(pending, nil)
				m.repo.EXPECT().UpdateStatus(gomock.Any(), 7, StatusRejected, "looks good").Return(nil)
			},
			expectedStatus: StatusRejected,
		},
		{
			name:    "Unknown assignment",
			approve: true,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(nil, nil)
			},
			expectedError: ErrAssignmentNotFound,
		},
		{
			name:    "Already reviewed",
			approve: true,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().FindByID(gomock.Any(), 7).
					Return(&domain.Assignment{ID: 7, Status: StatusRejected}, nil)
			},
			expectedError: ErrNotPending,
		},
		{
			name:    "Another approval landed today",
			approve: true,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(pending, nil)
				m.repo.EXPECT().FindApprovedForDay(gomock.Any(), 1, testTaskID, gomock.Any()).
					Return(&domain.Assignment{Status: StatusApproved}, nil)
			},
			expectedError: ErrAlreadyApprovedToday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			// FindByID returns a shared fixture, reset mutations between cases
			pending.Status = StatusPending
			pending.Feedback = ""

			assignment, err := service.Review(context.Background(), 7, tt.approve, "looks good")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, assignment)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, assignment.Status)
				assert.Equal(t, "looks good", assignment.Feedback)
			}
		})
	}
}
