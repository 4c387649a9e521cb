package handlers

import (
	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetConfig returns the public store configuration as a typed key/value map.
func (h *SettingsHandler) GetConfig(c *fiber.Ctx) error {
	settings, err := h.settingsService.All()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch configuration",
		})
	}

	return c.JSON(settings)
}

type setSettingRequest struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// SetKey creates or updates one setting (admin only).
func (h *SettingsHandler) SetKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: key",
		})
	}

	var req setSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: value",
		})
	}

	if err := h.settingsService.Set(key, req.Value, req.Type); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save setting",
		})
	}

	return c.JSON(fiber.Map{"key": key, "saved": true})
}

// DeleteKey removes one setting (admin only).
func (h *SettingsHandler) DeleteKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: key",
		})
	}

	if err := h.settingsService.Delete(key); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete setting",
		})
	}

	return c.JSON(fiber.Map{"key": key, "deleted": true})
}
