package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/renohub/backend/internal/http/dto"
	"github.com/renohub/backend/internal/models"
)

// writeDomainError maps the escrow error taxonomy to HTTP responses. Every
// business-rule violation keeps a distinct code so the pages can show the
// matching corrective message instead of a generic failure.
func writeDomainError(c *fiber.Ctx, err error) error {
	var (
		validationErr *models.ValidationError
		authErr       *models.AuthorizationError
		stateErr      *models.InvalidStateError
		transitionErr *models.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error(), Code: "validation_error"})
	case errors.As(err, &authErr):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error(), Code: "authorization_error"})
	case errors.Is(err, models.ErrDuplicateTranche):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error(), Code: "duplicate_tranche"})
	case errors.Is(err, models.ErrOrderViolation):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error(), Code: "order_violation"})
	case errors.Is(err, models.ErrAmountMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error(), Code: "amount_mismatch"})
	case errors.Is(err, models.ErrIncompleteSchedule):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error(), Code: "incomplete_schedule"})
	case errors.As(err, &stateErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error(), Code: "invalid_state"})
	case errors.As(err, &transitionErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error(), Code: "invalid_transition"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "not found", Code: "not_found"})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
}
