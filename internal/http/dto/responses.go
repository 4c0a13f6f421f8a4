package dto

import "github.com/renohub/backend/internal/models"

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// StatusVocabularyResponse is the fixed label mapping the pages render
// statuses with.
type StatusVocabularyResponse struct {
	Contract map[string]models.StatusLabel `json:"contract"`
	Payment  map[string]models.StatusLabel `json:"payment"`
}
