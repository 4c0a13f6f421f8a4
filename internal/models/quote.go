package models

import (
	"time"

	"github.com/google/uuid"
)

// Renovation request statuses
const (
	RequestStatusOpen      = "open"
	RequestStatusClosed    = "closed"
	RequestStatusCancelled = "cancelled"
)

// Quote statuses
const (
	QuoteStatusSubmitted = "submitted"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusDeclined  = "declined"
)

// RenovationRequest is a homeowner's call for quotes: what to renovate,
// where, and within what budget.
type RenovationRequest struct {
	ID          uuid.UUID  `json:"id"`
	OwnerUserID uuid.UUID  `json:"owner_user_id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Description *string    `json:"description,omitempty"`
	BudgetMin   *int64     `json:"budget_min,omitempty"`
	BudgetMax   *int64     `json:"budget_max,omitempty"`
	DesiredFrom *time.Time `json:"desired_from,omitempty"`
	DesiredTo   *time.Time `json:"desired_to,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Quote is a contractor's priced offer against a renovation request.
type Quote struct {
	ID               uuid.UUID `json:"id"`
	RequestID        uuid.UUID `json:"request_id"`
	ContractorUserID uuid.UUID `json:"contractor_user_id"`
	Amount           int64     `json:"amount"`
	Message          *string   `json:"message,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// RenovationCategories is the fixed category list pages pick from.
var RenovationCategories = []string{
	"full_remodel", "kitchen", "bathroom", "living_room", "bedroom",
	"flooring", "wallpaper", "lighting", "balcony", "exterior",
}

func IsValidCategory(c string) bool {
	for _, v := range RenovationCategories {
		if v == c {
			return true
		}
	}
	return false
}
