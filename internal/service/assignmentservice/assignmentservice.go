package assignmentservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/pg"
	"github.com/taskvest/taskvest/internal/verifier"
	"github.com/taskvest/taskvest/pkg/validate"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, assignment *domain.Assignment) error
	FindApprovedForDay(ctx context.Context, userID int, taskID uuid.UUID, dayStart time.Time) (*domain.Assignment, error)
	FindForDay(ctx context.Context, userID int, taskID uuid.UUID, dayStart time.Time) (*domain.Assignment, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Assignment, error)
	FindByID(ctx context.Context, id int) (*domain.Assignment, error)
	FindByStatus(ctx context.Context, status string) ([]domain.Assignment, error)
	UpdateStatus(ctx context.Context, id int, status, feedback string) error
}

type TaskRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

type ProfileRepo interface {
	AddEarnings(ctx context.Context, userID int, amount float64, now time.Time) error
}

type Verifier interface {
	Verify(ctx context.Context, taskTitle string, images []string) verifier.Decision
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	// AssignmentBonus is credited for every approved submission.
	AssignmentBonus float64 = 2000

	maxImages = 5
)

var (
	ErrAlreadyApprovedToday  = errors.New("you have already submitted and been approved for this task today")
	ErrAlreadySubmittedToday = errors.New("you have already submitted this task today")
	ErrTaskNotFound          = errors.New("task not found")
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrNotPending            = errors.New("assignment is not pending")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "invalid submission: " + strings.Join(msgs, "; ")
}

// Submission is the raw payload of the image verification path.
type Submission struct {
	TaskID string
	Title  string
	Images []string
}

// ValidateSubmission checks the submission shape. Pure, no side effects; it
// must reject before any network call is made.
func ValidateSubmission(sub Submission) (uuid.UUID, *ValidationError) {
	var fields []FieldError

	taskID, err := uuid.Parse(sub.TaskID)
	if sub.TaskID == "" {
		fields = append(fields, FieldError{Field: "task_id", Message: "is required"})
	} else if err != nil {
		fields = append(fields, FieldError{Field: "task_id", Message: "must be a valid UUID"})
	}

	if strings.TrimSpace(sub.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "is required"})
	}

	switch {
	case len(sub.Images) == 0:
		fields = append(fields, FieldError{Field: "images", Message: "at least one image is required"})
	case len(sub.Images) > maxImages:
		fields = append(fields, FieldError{Field: "images", Message: fmt.Sprintf("at most %d images are allowed", maxImages)})
	default:
		for i, img := range sub.Images {
			if !validate.IsDataURI(img) {
				fields = append(fields, FieldError{Field: fmt.Sprintf("images[%d]", i), Message: "must be a base64 data URI"})
			}
		}
	}

	if len(fields) > 0 {
		return uuid.Nil, &ValidationError{Fields: fields}
	}
	return taskID, nil
}

type Service struct {
	repo        Repo
	taskRepo    TaskRepo
	profileRepo ProfileRepo
	verifier    Verifier
	txManager   pg.TXManager
	loc         *time.Location
}

func New(repo Repo, taskRepo TaskRepo, profileRepo ProfileRepo, verifier Verifier, txManager pg.TXManager, loc *time.Location) *Service {
	return &Service{
		repo:        repo,
		taskRepo:    taskRepo,
		profileRepo: profileRepo,
		verifier:    verifier,
		txManager:   txManager,
		loc:         loc,
	}
}

func (s *Service) startOfDay(now time.Time) time.Time {
	y, m, d := now.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// SubmitForVerification runs the image verification path: validate, duplicate
// guard, external judgment, then one transaction inserting the approved row
// and crediting earnings. Rejected attempts are never persisted.
func (s *Service) SubmitForVerification(ctx context.Context, userID int, sub Submission) (verifier.Decision, error) {
	taskID, verr := ValidateSubmission(sub)
	if verr != nil {
		return verifier.Decision{}, verr
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		zap.L().Error("can't find task", zap.Error(err))
		return verifier.Decision{}, err
	}
	if task == nil {
		return verifier.Decision{}, ErrTaskNotFound
	}

	now := time.Now().In(s.loc)
	existing, err := s.repo.FindApprovedForDay(ctx, userID, taskID, s.startOfDay(now))
	if err != nil {
		zap.L().Error("duplicate guard query failed", zap.Error(err))
		return verifier.Decision{}, err
	}
	if existing != nil {
		return verifier.Decision{}, ErrAlreadyApprovedToday
	}

	decision := s.verifier.Verify(ctx, sub.Title, sub.Images)
	if !decision.Approved {
		zap.L().Info("submission not approved",
			zap.Int("userID", userID),
			zap.String("taskID", taskID.String()),
			zap.String("reason", decision.Reason),
		)
		return decision, nil
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		assignment := &domain.Assignment{
			UserID:    userID,
			TaskID:    taskID,
			Title:     sub.Title,
			URLs:      sub.Images,
			Status:    StatusApproved,
			Feedback:  decision.Reason,
			CreatedAt: now,
		}
		if err := s.repo.Save(ctx, assignment); err != nil {
			return err
		}
		return s.profileRepo.AddEarnings(ctx, userID, AssignmentBonus, now)
	})
	if err != nil {
		if pg.IsUniqueViolation(err) {
			// lost the race against a concurrent submission
			return verifier.Decision{}, ErrAlreadyApprovedToday
		}
		zap.L().Error("can't record approved submission", zap.Error(err))
		return decision, err
	}

	zap.L().Info("submission approved",
		zap.Int("userID", userID),
		zap.String("taskID", taskID.String()),
		zap.Float64("bonus", AssignmentBonus),
	)
	return decision, nil
}

// SubmitURL is the single-URL path: the assignment is created pending and
// reviewed by an administrator later.
func (s *Service) SubmitURL(ctx context.Context, userID int, taskID uuid.UUID, title, url string) (*domain.Assignment, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		zap.L().Error("can't find task", zap.Error(err))
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	now := time.Now().In(s.loc)
	existing, err := s.repo.FindForDay(ctx, userID, taskID, s.startOfDay(now))
	if err != nil {
		zap.L().Error("duplicate guard query failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		if existing.Status == StatusApproved {
			return nil, ErrAlreadyApprovedToday
		}
		return nil, ErrAlreadySubmittedToday
	}

	assignment := &domain.Assignment{
		UserID:    userID,
		TaskID:    taskID,
		Title:     title,
		URLs:      []string{url},
		Status:    StatusPending,
		CreatedAt: now,
	}
	if err := s.repo.Save(ctx, assignment); err != nil {
		zap.L().Error("can't save assignment", zap.Error(err))
		return nil, err
	}
	return assignment, nil
}

func (s *Service) GetAssignments(ctx context.Context, userID int) ([]domain.Assignment, error) {
	assignments, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get assignments", zap.Error(err))
		return nil, err
	}
	return assignments, nil
}

func (s *Service) GetPending(ctx context.Context) ([]domain.Assignment, error) {
	assignments, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		zap.L().Error("failed to get pending assignments", zap.Error(err))
		return nil, err
	}
	return assignments, nil
}

// Review transitions a pending assignment. Approval credits earnings in the
// same transaction as the status flip; both transitions are terminal.
func (s *Service) Review(ctx context.Context, id int, approve bool, feedback string) (*domain.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("can't find assignment", zap.Error(err))
		return nil, err
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.Status != StatusPending {
		return nil, ErrNotPending
	}

	if !approve {
		if err := s.repo.UpdateStatus(ctx, id, StatusRejected, feedback); err != nil {
			zap.L().Error("can't reject assignment", zap.Error(err))
			return nil, err
		}
		assignment.Status = StatusRejected
		assignment.Feedback = feedback
		return assignment, nil
	}

	now := time.Now().In(s.loc)
	existing, err := s.repo.FindApprovedForDay(ctx, assignment.UserID, assignment.TaskID, s.startOfDay(now))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyApprovedToday
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, id, StatusApproved, feedback); err != nil {
			return err
		}
		return s.profileRepo.AddEarnings(ctx, assignment.UserID, AssignmentBonus, now)
	})
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return nil, ErrAlreadyApprovedToday
		}
		zap.L().Error("can't approve assignment", zap.Error(err))
		return nil, err
	}

	assignment.Status = StatusApproved
	assignment.Feedback = feedback
	return assignment, nil
}
