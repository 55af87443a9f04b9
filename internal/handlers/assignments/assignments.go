package assignments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/dto"
	"github.com/taskvest/taskvest/internal/service/assignmentservice"
	"github.com/taskvest/taskvest/internal/verifier"
	"github.com/taskvest/taskvest/pkg/auth"
	"github.com/taskvest/taskvest/pkg/utils"
)

type Service interface {
	SubmitForVerification(ctx context.Context, userID int, sub assignmentservice.Submission) (verifier.Decision, error)
	SubmitURL(ctx context.Context, userID int, taskID uuid.UUID, title, url string) (*domain.Assignment, error)
	GetAssignments(ctx context.Context, userID int) ([]domain.Assignment, error)
	GetPending(ctx context.Context) ([]domain.Assignment, error)
	Review(ctx context.Context, id int, approve bool, feedback string) (*domain.Assignment, error)
}

type AssignmentHandler struct {
	assignmentService Service
}

func New(assignmentService Service) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// Verify godoc
//
//	@Summary		Submit assignment images for verification
//	@Description	Validate the submission, have the images judged, and credit the daily bonus when approved
//	@Tags			Assignments
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.VerifySubmissionRequestDTO	true	"Verification request body"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.VerifySubmissionResponseDTO
//	@Failure		400	{object}	assignmentservice.ValidationError	"Invalid submission"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Task not found"
//	@Failure		409	{object}	utils.Response	"Already approved for this task today"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/assignments/verify [post]
func (h *AssignmentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.VerifySubmissionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	decision, err := h.assignmentService.SubmitForVerification(r.Context(), userID, assignmentservice.Submission{
		TaskID: req.TaskID,
		Title:  req.Title,
		Images: req.Images,
	})
	if err != nil {
		var verr *assignmentservice.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.RespondWithJSON(w, http.StatusBadRequest, verr)
		case errors.Is(err, assignmentservice.ErrTaskNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, assignmentservice.ErrAlreadyApprovedToday):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.VerifySubmissionResponseDTO{
		Approved: decision.Approved,
		Feedback: decision.Reason,
	})
}

// Submit godoc
//
//	@Summary		Submit an assignment by URL
//	@Description	Create a pending assignment reviewed by an administrator later
//	@Tags			Assignments
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.SubmitAssignmentRequestDTO	true	"Submission request body"
//	@Security		BearerAuth
//	@Success		202	{object}	dto.GetAssignmentsResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Task not found"
//	@Failure		409	{object}	utils.Response	"Already submitted for this task today"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/assignments [post]
func (h *AssignmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.SubmitAssignmentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	if req.Title == "" || req.URL == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and url are required")
		return
	}

	assignment, err := h.assignmentService.SubmitURL(r.Context(), userID, taskID, req.Title, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, assignmentservice.ErrTaskNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, assignmentservice.ErrAlreadyApprovedToday),
			errors.Is(err, assignmentservice.ErrAlreadySubmittedToday):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, toDTO(assignment))
}

// GetAssignments godoc
//
//	@Summary		Get assignments list for user
//	@Description	Retrieve the authorized user's submissions, newest first
//	@Tags			Assignments
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.GetAssignmentsResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/assignments [get]
func (h *AssignmentHandler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	assignments, err := h.assignmentService.GetAssignments(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(assignments) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.GetAssignmentsResponseDTO
	for i := range assignments {
		response = append(response, *toDTO(&assignments[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPending godoc
//
//	@Summary		Get pending assignments
//	@Description	List assignments awaiting administrator review, oldest first
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.GetAssignmentsResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/assignments [get]
func (h *AssignmentHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentService.GetPending(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.GetAssignmentsResponseDTO, 0, len(assignments))
	for i := range assignments {
		response = append(response, *toDTO(&assignments[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Review godoc
//
//	@Summary		Review a pending assignment
//	@Description	Approve or reject a pending assignment; approval credits the daily bonus
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int					true	"Assignment ID"
//	@Param			request	body	dto.ReviewRequestDTO	true	"Review request body"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.GetAssignmentsResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		404	{object}	utils.Response	"Assignment not found"
//	@Failure		409	{object}	utils.Response	"Assignment is not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/assignments/{id}/review [post]
func (h *AssignmentHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid assignment id")
		return
	}

	var req dto.ReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Action != "approve" && req.Action != "reject" {
		utils.RespondWithError(w, http.StatusBadRequest, "Action must be approve or reject")
		return
	}

	assignment, err := h.assignmentService.Review(r.Context(), id, req.Action == "approve", req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, assignmentservice.ErrAssignmentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, assignmentservice.ErrNotPending),
			errors.Is(err, assignmentservice.ErrAlreadyApprovedToday):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(assignment))
}

func toDTO(a *domain.Assignment) *dto.GetAssignmentsResponseDTO {
	return &dto.GetAssignmentsResponseDTO{
		ID:        a.ID,
		TaskID:    a.TaskID.String(),
		Title:     a.Title,
		URLs:      a.URLs,
		Status:    a.Status,
		Feedback:  a.Feedback,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
