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

type ContractHandler struct {
	contractService *services.ContractService
	log             *zap.Logger
}

func NewContractHandler(contractService *services.ContractService, log *zap.Logger) *ContractHandler {
	return &ContractHandler{contractService: contractService, log: log}
}

func (h *ContractHandler) CreateContract(c *fiber.Ctx) error {
	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	actorID := middleware.GetUserID(c)
	contract, err := h.contractService.CreateContract(c.Context(), actorID, services.CreateContractInput{
		Title:           req.Title,
		ClientName:      req.ClientName,
		ContractorName:  req.ContractorName,
		ContractorPhone: req.ContractorPhone,
		Location:        req.Location,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TotalAmount:     req.TotalAmount,
		DepositAmount:   req.DepositAmount,
		MidAmount:       req.MidAmount,
		FinalAmount:     req.FinalAmount,
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: contract})
}

func (h *ContractHandler) ListContracts(c *fiber.Ctx) error {
	filter := repositories.ContractFilter{}
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

	actorID := middleware.GetUserID(c)
	contracts, err := h.contractService.ListContracts(c.Context(), actorID, filter)
	if err != nil {
		h.log.Error("list contracts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: contracts})
}

func (h *ContractHandler) GetContract(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	actorID := middleware.GetUserID(c)
	contract, err := h.contractService.GetContract(c.Context(), actorID, id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: contract})
}

func (h *ContractHandler) CancelContract(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	actorID := middleware.GetUserID(c)
	if err := h.contractService.CancelContract(c.Context(), actorID, id); err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ContractHandler) GetContractEvents(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid contract id"})
	}

	logs, err := h.contractService.GetContractEvents(c.Context(), id)
	if err != nil {
		h.log.Error("get contract events failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}
