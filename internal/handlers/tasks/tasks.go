package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/dto"
	"github.com/taskvest/taskvest/internal/service/taskservice"
	"github.com/taskvest/taskvest/pkg/utils"
)

type Service interface {
	CreateTask(ctx context.Context, title, url string) (*domain.Task, error)
	GetTasks(ctx context.Context) ([]domain.Task, error)
}

type TaskHandler struct {
	taskService Service
}

func New(taskService Service) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// GetTasks godoc
//
//	@Summary		Get reference tasks
//	@Description	List the assignment topics users can submit against
//	@Tags			Tasks
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.TaskResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/tasks [get]
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.GetTasks(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.TaskResponseDTO, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, toDTO(&task))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CreateTask godoc
//
//	@Summary		Create a reference task
//	@Description	Add a new assignment topic
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreateTaskRequestDTO	true	"Task request body"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.TaskResponseDTO
//	@Failure		400	{object}	utils.Response	"Title is required"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/tasks [post]
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, taskservice.ErrEmptyTitle):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(task))
}

func toDTO(task *domain.Task) dto.TaskResponseDTO {
	return dto.TaskResponseDTO{
		ID:        task.ID.String(),
		Title:     task.Title,
		URL:       task.URL,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
	}
}
