package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/taskvest/taskvest/internal/domain"
	"github.com/taskvest/taskvest/internal/dto"
	"github.com/taskvest/taskvest/internal/service/profileservice"
	"github.com/taskvest/taskvest/pkg/auth"
	"github.com/taskvest/taskvest/pkg/utils"
)

type Service interface {
	GetProfile(ctx context.Context, userID int) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID int, name, avatarURL *string) (*domain.Profile, error)
}

type ProfileHandler struct {
	profileService Service
}

func New(profileService Service) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile godoc
//
//	@Summary		Get user profile
//	@Description	Retrieve the authorized user's profile with balance and earnings counters
//	@Tags			Profile
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ProfileResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Profile not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, profileservice.ErrProfileNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(profile))
}

// UpdateProfile godoc
//
//	@Summary		Update user profile
//	@Description	Change the display name and avatar; other fields are read only
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.UpdateProfileRequestDTO	true	"Profile update body"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ProfileResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Profile not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/profile [patch]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.UpdateProfileRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), userID, req.Name, req.AvatarURL)
	if err != nil {
		switch {
		case errors.Is(err, profileservice.ErrProfileNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(profile))
}

func toDTO(p *domain.Profile) dto.ProfileResponseDTO {
	resp := dto.ProfileResponseDTO{
		Name:           p.Name,
		AvatarURL:      p.AvatarURL,
		PlanID:         p.PlanID,
		CurrentBalance: p.CurrentBalance,
		TodayEarning:   p.TodayEarning,
		TotalEarning:   p.TotalEarning,
		ReferralBonus:  p.ReferralBonus,
		ReferralCount:  p.ReferralCount,
		ReferralCode:   p.ReferralCode,
	}
	if p.PlanStart != nil {
		resp.PlanStart = p.PlanStart.Format(time.RFC3339)
	}
	if p.PlanEnd != nil {
		resp.PlanEnd = p.PlanEnd.Format(time.RFC3339)
	}
	return resp
}
