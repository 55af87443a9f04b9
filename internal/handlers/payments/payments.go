package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/dto"
	"github.com/taskvest/taskvest/internal/service/paymentservice"
	"github.com/taskvest/taskvest/pkg/auth"
	"github.com/taskvest/taskvest/pkg/utils"
)

type Service interface {
	CreatePayment(ctx context.Context, userID, planID int, paymentUID string) (*domain.Payment, error)
	GetPayments(ctx context.Context, userID int) ([]domain.Payment, error)
	GetByStatus(ctx context.Context, status string) ([]domain.Payment, error)
	Review(ctx context.Context, id int, approve bool) (*domain.Payment, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePayment godoc
//
//	@Summary		Submit a plan payment
//	@Description	Record a pending payment for a plan purchase
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreatePaymentRequestDTO	true	"Payment request body"
//	@Security		BearerAuth
//	@Success		202	{object}	dto.PaymentResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Plan not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreatePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaymentUID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payment uid is required")
		return
	}

	payment, err := h.paymentService.CreatePayment(r.Context(), userID, req.PlanID, req.PaymentUID)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrPlanNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, toDTO(payment))
}

// GetPayments godoc
//
//	@Summary		Get payment history for user
//	@Description	Retrieve the authorized user's payments, newest first
//	@Tags			Payments
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.PaymentResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [get]
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	payments, err := h.paymentService.GetPayments(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(payments) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.PaymentResponseDTO
	for i := range payments {
		response = append(response, toDTO(&payments[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetByStatus godoc
//
//	@Summary		Get payments by status
//	@Description	List payments in the given status, oldest first
//	@Tags			Admin
//	@Produce		json
//	@Param			status	query	string	false	"Payment status"	default(pending)
//	@Security		BearerAuth
//	@Success		200	{array}		dto.PaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments [get]
func (h *PaymentHandler) GetByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = paymentservice.StatusPending
	}

	payments, err := h.paymentService.GetByStatus(r.Context(), status)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.PaymentResponseDTO, 0, len(payments))
	for i := range payments {
		response = append(response, toDTO(&payments[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Review godoc
//
//	@Summary		Review a pending payment
//	@Description	Approve or reject a pending payment; approval activates the plan and credits the referrer
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int					true	"Payment ID"
//	@Param			request	body	dto.ReviewRequestDTO	true	"Review request body"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.PaymentResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		404	{object}	utils.Response	"Payment not found"
//	@Failure		409	{object}	utils.Response	"Payment is not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments/{id}/review [post]
func (h *PaymentHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment id")
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

	payment, err := h.paymentService.Review(r.Context(), id, req.Action == "approve")
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrPaymentNotFound),
			errors.Is(err, paymentservice.ErrPlanNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrNotPending):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(payment))
}

func toDTO(p *domain.Payment) dto.PaymentResponseDTO {
	return dto.PaymentResponseDTO{
		ID:         p.ID,
		PlanID:     p.PlanID,
		PaymentUID: p.PaymentUID,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}
