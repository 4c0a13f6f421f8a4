package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/renohub/backend/internal/http/dto"
	"github.com/renohub/backend/internal/models"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// GetStatuses exposes the fixed status label vocabulary the pages render.
func (h *MetaHandler) GetStatuses(c *fiber.Ctx) error {
	return c.JSON(dto.StatusVocabularyResponse{
		Contract: models.ContractStatusLabels,
		Payment:  models.PaymentStatusLabels,
	})
}

func (h *MetaHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: models.RenovationCategories})
}
