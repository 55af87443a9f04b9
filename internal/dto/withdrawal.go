package dto

type CreateWithdrawalRequestDTO struct {
	Amount        float64 `json:"amount" example:"10000"`
	BankName      string  `json:"bank_name" example:"First Bank"`
	HolderName    string  `json:"holder_name" example:"John Doe"`
	AccountNumber string  `json:"account_number" example:"4561261212345467"`
}

type WithdrawalResponseDTO struct {
	ID            int     `json:"id"`
	Amount        float64 `json:"amount"`
	BankName      string  `json:"bank_name"`
	HolderName    string  `json:"holder_name"`
	AccountNumber string  `json:"account_number"`
	Status        string  `json:"status" example:"pending"`
	CreatedAt     string  `json:"created_at"`
}
