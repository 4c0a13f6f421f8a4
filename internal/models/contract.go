package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract statuses
const (
	ContractStatusPending    = "pending"
	ContractStatusInProgress = "in_progress"
	ContractStatusCompleted  = "completed"
	ContractStatusCancelled  = "cancelled"
)

// Valid contract state transitions: from -> []to
var ValidContractTransitions = map[string][]string{
	ContractStatusPending:    {ContractStatusInProgress, ContractStatusCancelled},
	ContractStatusInProgress: {ContractStatusCompleted, ContractStatusCancelled},
	ContractStatusCompleted:  {},
	ContractStatusCancelled:  {},
}

func IsValidContractTransition(from, to string) bool {
	allowed, ok := ValidContractTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ContractStatusLabels maps contract statuses to the display vocabulary the
// existing pages depend on (Korean primary, English secondary).
var ContractStatusLabels = map[string]StatusLabel{
	ContractStatusPending:    {KO: "대기중", EN: "pending"},
	ContractStatusInProgress: {KO: "진행중", EN: "in progress"},
	ContractStatusCompleted:  {KO: "완료", EN: "completed"},
	ContractStatusCancelled:  {KO: "취소됨", EN: "cancelled"},
}

type StatusLabel struct {
	KO string `json:"ko"`
	EN string `json:"en"`
}

// Contract is a signed renovation agreement between a homeowner and a
// contractor. Monetary terms are immutable after creation; only status moves.
// Amounts are integers in the smallest currency unit (KRW has no subunit).
type Contract struct {
	ID              uuid.UUID  `json:"id"`
	OwnerUserID     uuid.UUID  `json:"owner_user_id"`
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
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TrancheAmount returns the declared amount for a tranche type.
func (c *Contract) TrancheAmount(trancheType string) int64 {
	switch trancheType {
	case TrancheDeposit:
		return c.DepositAmount
	case TrancheMid:
		return c.MidAmount
	case TrancheFinal:
		return c.FinalAmount
	}
	return 0
}

// ValidateNew checks the business-amount and schedule constraints that must
// hold before a contract row is persisted. now is the reference date for the
// start-date check.
func (c *Contract) ValidateNew(now time.Time) error {
	if c.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if c.ContractorName == "" {
		return &ValidationError{Field: "contractor_name", Reason: "is required"}
	}
	for field, amount := range map[string]int64{
		"total_amount":   c.TotalAmount,
		"deposit_amount": c.DepositAmount,
		"mid_amount":     c.MidAmount,
		"final_amount":   c.FinalAmount,
	} {
		if amount < 0 {
			return &ValidationError{Field: field, Reason: "must not be negative"}
		}
	}
	if sum := c.DepositAmount + c.MidAmount + c.FinalAmount; sum != c.TotalAmount {
		return &ValidationError{Field: "total_amount", Reason: "tranche amounts do not sum to total"}
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return &ValidationError{Field: "end_date", Reason: "must not be before start_date"}
	}
	if c.StartDate != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if c.StartDate.Before(today) {
			return &ValidationError{Field: "start_date", Reason: "must not be in the past"}
		}
	}
	return nil
}
