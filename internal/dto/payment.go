package dto

type CreatePaymentRequestDTO struct {
	PlanID     int    `json:"plan_id" example:"1"`
	PaymentUID string `json:"payment_uid" example:"TRX-20240101-0001"`
}

type PaymentResponseDTO struct {
	ID         int    `json:"id"`
	PlanID     int    `json:"plan_id"`
	PaymentUID string `json:"payment_uid"`
	Status     string `json:"status" example:"pending"`
	CreatedAt  string `json:"created_at"`
}
