package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/renohub/backend/internal/http/dto"
	"github.com/renohub/backend/internal/middleware"
	"github.com/renohub/backend/internal/repositories"
	"github.com/renohub/backend/internal/services"
	"go.uber.org/zap"
)

type RequestHandler struct {
	quoteService *services.QuoteService
	log          *zap.Logger
}

func NewRequestHandler(quoteService *services.QuoteService, log *zap.Logger) *RequestHandler {
	return &RequestHandler{quoteService: quoteService, log: log}
}

func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	var req dto.CreateRenovationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	actorID := middleware.GetUserID(c)
	created, err := h.quoteService.CreateRequest(c.Context(), actorID, services.CreateRequestInput{
		Title:       req.Title,
		Category:    req.Category,
		Location:    req.Location,
		Description: req.Description,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		DesiredFrom: req.DesiredFrom,
		DesiredTo:   req.DesiredTo,
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: created})
}

func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	filter := repositories.RequestFilter{}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if c.Query("mine") == "true" {
		actorID := middleware.GetUserID(c)
		filter.OwnerUserID = &actorID
	}

	requests, err := h.quoteService.ListRequests(c.Context(), filter)
	if err != nil {
		h.log.Error("list requests failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: requests})
}

func (h *RequestHandler) GetRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request id"})
	}

	request, err := h.quoteService.GetRequest(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "request not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: request})
}

func (h *RequestHandler) CloseRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.quoteService.CloseRequest(c.Context(), actorID, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *RequestHandler) SubmitQuote(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request id"})
	}

	var req dto.SubmitQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	actorID := middleware.GetUserID(c)
	quote, err := h.quoteService.SubmitQuote(c.Context(), actorID, requestID, req.Amount, req.Message)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: quote})
}

func (h *RequestHandler) ListQuotes(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request id"})
	}

	actorID := middleware.GetUserID(c)
	quotes, err := h.quoteService.ListQuotes(c.Context(), actorID, requestID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: quotes})
}

func (h *RequestHandler) AcceptQuote(c *fiber.Ctx) error {
	quoteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid quote id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.quoteService.AcceptQuote(c.Context(), actorID, quoteID); err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *RequestHandler) DeclineQuote(c *fiber.Ctx) error {
	quoteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid quote id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.quoteService.DeclineQuote(c.Context(), actorID, quoteID); err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
