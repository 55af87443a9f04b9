package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/dto"
	"github.com/taskvest/taskvest/internal/service/planservice"
	"github.com/taskvest/taskvest/pkg/utils"
)

type Service interface {
	CreatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	GetPlans(ctx context.Context) ([]domain.Plan, error)
}

type PlanHandler struct {
	planService Service
}

func New(planService Service) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// GetPlans godoc
//
//	@Summary		Get investment plans
//	@Description	List plans ordered by investment amount
//	@Tags			Plans
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.PlanResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/plans [get]
func (h *PlanHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planService.GetPlans(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.PlanResponseDTO, 0, len(plans))
	for _, plan := range plans {
		response = append(response, toDTO(&plan))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CreatePlan godoc
//
//	@Summary		Create an investment plan
//	@Description	Add a new plan available for purchase
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreatePlanRequestDTO	true	"Plan request body"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.PlanResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid plan parameters"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		409	{object}	utils.Response	"Plan already exists"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/plans [post]
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	plan, err := h.planService.CreatePlan(r.Context(), &domain.Plan{
		Name:             req.Name,
		Investment:       req.Investment,
		DailyEarning:     req.DailyEarning,
		PeriodDays:       req.PeriodDays,
		TotalReturn:      req.TotalReturn,
		ReferralBonus:    req.ReferralBonus,
		DailyAssignments: req.DailyAssignments,
	})
	if err != nil {
		switch {
		case errors.Is(err, planservice.ErrInvalidPlan):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, planservice.ErrPlanExists):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(plan))
}

func toDTO(plan *domain.Plan) dto.PlanResponseDTO {
	return dto.PlanResponseDTO{
		ID:               plan.ID,
		Name:             plan.Name,
		Investment:       plan.Investment,
		DailyEarning:     plan.DailyEarning,
		PeriodDays:       plan.PeriodDays,
		TotalReturn:      plan.TotalReturn,
		ReferralBonus:    plan.ReferralBonus,
		DailyAssignments: plan.DailyAssignments,
	}
}
