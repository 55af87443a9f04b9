package dto

type CreatePlanRequestDTO struct {
	Name             string  `json:"name" example:"Standard Plan"`
	Investment       float64 `json:"investment" example:"50000"`
	DailyEarning     float64 `json:"daily_earning" example:"2000"`
	PeriodDays       int     `json:"period_days" example:"90"`
	TotalReturn      float64 `json:"total_return" example:"180000"`
	ReferralBonus    float64 `json:"referral_bonus" example:"5000"`
	DailyAssignments int     `json:"daily_assignments" example:"1"`
}

type PlanResponseDTO struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Investment       float64 `json:"investment"`
	DailyEarning     float64 `json:"daily_earning"`
	PeriodDays       int     `json:"period_days"`
	TotalReturn      float64 `json:"total_return"`
	ReferralBonus    float64 `json:"referral_bonus"`
	DailyAssignments int     `json:"daily_assignments"`
}
