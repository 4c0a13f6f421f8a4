package dto

import "time"

type RegisterRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // homeowner / contractor
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type CreateRenovationRequest struct {
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Description *string    `json:"description,omitempty"`
	BudgetMin   *int64     `json:"budget_min,omitempty"`
	BudgetMax   *int64     `json:"budget_max,omitempty"`
	DesiredFrom *time.Time `json:"desired_from,omitempty"`
	DesiredTo   *time.Time `json:"desired_to,omitempty"`
}

type SubmitQuoteRequest struct {
	Amount  int64   `json:"amount"`
	Message *string `json:"message,omitempty"`
}

type CreateContractRequest struct {
	Title           string     `json:"title"`
	ClientName      string     `json:"client_name"`
	ContractorName  string     `json:"contractor_name"`
	ContractorPhone string     `json:"contractor_phone"`
	Location        string     `json:"location"`
	Description     *string    `json:"description,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	TotalAmount     int64      `json:"total_amount"`
	DepositAmount   int64      `json:"deposit_amount"`
	MidAmount       int64      `json:"mid_amount"`
	FinalAmount     int64      `json:"final_amount"`
}

type DepositPaymentRequest struct {
	TrancheType string `json:"tranche_type"` // deposit / mid / final
	Amount      int64  `json:"amount"`
}
