package dto

type ProfileResponseDTO struct {
	Name           string  `json:"name"`
	AvatarURL      string  `json:"avatar_url,omitempty"`
	PlanID         *int    `json:"plan_id,omitempty"`
	PlanStart      string  `json:"plan_start,omitempty"`
	PlanEnd        string  `json:"plan_end,omitempty"`
	CurrentBalance float64 `json:"current_balance"`
	TodayEarning   float64 `json:"today_earning"`
	TotalEarning   float64 `json:"total_earning"`
	ReferralBonus  float64 `json:"referral_bonus"`
	ReferralCount  int     `json:"referral_count"`
	ReferralCode   string  `json:"referral_code"`
}

// Pointer fields distinguish "not sent" (keep the stored value) from an
// explicit empty string (clear it).
type UpdateProfileRequestDTO struct {
	Name      *string `json:"name,omitempty" example:"John Doe"`
	AvatarURL *string `json:"avatar_url,omitempty" example:"https://example.com/avatar.png"`
}
