package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/renohub/backend/internal/http/dto"
	"github.com/renohub/backend/internal/middleware"
	"github.com/renohub/backend/internal/services"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	escrowService *services.EscrowService
	log           *zap.Logger
}

func NewPaymentHandler(escrowService *services.EscrowService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{escrowService: escrowService, log: log}
}

func (h *PaymentHandler) DepositPayment(c *fiber.Ctx) error {
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	var req dto.DepositPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.TrancheType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "tranche_type is required (deposit, mid, final)"})
	}

	actorID := middleware.GetUserID(c)
	payment, err := h.escrowService.DepositPayment(c.Context(), actorID, contractID, req.TrancheType, req.Amount)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: payment})
}

func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	actorID := middleware.GetUserID(c)
	payments, err := h.escrowService.ListPayments(c.Context(), actorID, contractID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: payments})
}

func (h *PaymentHandler) RequestApproval(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid payment id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.escrowService.RequestApproval(c.Context(), actorID, paymentID); err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *PaymentHandler) ApprovePayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid payment id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.escrowService.ApprovePayment(c.Context(), actorID, paymentID); err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *PaymentHandler) RejectApproval(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid payment id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.escrowService.RejectApproval(c.Context(), actorID, paymentID); err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *PaymentHandler) RefundPayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid payment id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.escrowService.Refund(c.Context(), actorID, paymentID); err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
