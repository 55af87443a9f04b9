package withdrawals

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
	"github.com/taskvest/taskvest/internal/service/withdrawalservice"
	"github.com/taskvest/taskvest/pkg/auth"
	"github.com/taskvest/taskvest/pkg/utils"
	"github.com/taskvest/taskvest/pkg/validate"
)

type Service interface {
	CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	GetByStatus(ctx context.Context, status string) ([]domain.Withdrawal, error)
	Review(ctx context.Context, id int, approve bool) (*domain.Withdrawal, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Create a pending withdrawal request against the current balance
//	@Tags			Withdrawals
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreateWithdrawalRequestDTO	true	"Withdrawal request body"
//	@Security		BearerAuth
//	@Success		202	{object}	dto.WithdrawalResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient balance"
//	@Failure		422	{object}	utils.Response	"Invalid account number"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *WithdrawalHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateWithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BankName == "" || req.HolderName == "" || req.AccountNumber == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Bank name, holder name and account number are required")
		return
	}
	if !validate.IsAccountNumber(req.AccountNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid account number")
		return
	}

	withdrawal, err := h.withdrawalService.CreateWithdrawal(r.Context(), &domain.Withdrawal{
		UserID:        userID,
		Amount:        req.Amount,
		BankName:      req.BankName,
		HolderName:    req.HolderName,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, toDTO(withdrawal))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawal history for user
//	@Description	Retrieve the authorized user's withdrawal requests, newest first
//	@Tags			Withdrawals
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.withdrawalService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.WithdrawalResponseDTO
	for i := range withdrawals {
		response = append(response, toDTO(&withdrawals[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetByStatus godoc
//
//	@Summary		Get withdrawals by status
//	@Description	List withdrawal requests in the given status, oldest first
//	@Tags			Admin
//	@Produce		json
//	@Param			status	query	string	false	"Withdrawal status"	default(pending)
//	@Security		BearerAuth
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals [get]
func (h *WithdrawalHandler) GetByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = withdrawalservice.StatusPending
	}

	withdrawals, err := h.withdrawalService.GetByStatus(r.Context(), status)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, 0, len(withdrawals))
	for i := range withdrawals {
		response = append(response, toDTO(&withdrawals[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Review godoc
//
//	@Summary		Review a pending withdrawal
//	@Description	Approve or reject a pending withdrawal; approval debits the user's balance
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int					true	"Withdrawal ID"
//	@Param			request	body	dto.ReviewRequestDTO	true	"Review request body"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.WithdrawalResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient balance"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		404	{object}	utils.Response	"Withdrawal not found"
//	@Failure		409	{object}	utils.Response	"Withdrawal is not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/review [post]
func (h *WithdrawalHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid withdrawal id")
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

	withdrawal, err := h.withdrawalService.Review(r.Context(), id, req.Action == "approve")
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrWithdrawalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, withdrawalservice.ErrNotPending):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(withdrawal))
}

func toDTO(wd *domain.Withdrawal) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:            wd.ID,
		Amount:        wd.Amount,
		BankName:      wd.BankName,
		HolderName:    wd.HolderName,
		AccountNumber: wd.AccountNumber,
		Status:        wd.Status,
		CreatedAt:     wd.CreatedAt.Format(time.RFC3339),
	}
}
