package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/elitestore/storefront/internal/config"
	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	paymentService *services.PaymentService
	cfg            *config.Config
}

func NewWebhookHandler(paymentService *services.PaymentService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService, cfg: cfg}
}

// HandlePayment receives payment provider events. The shared secret in the
// Authorization header is compared in constant time.
func (h *WebhookHandler) HandlePayment(c *fiber.Ctx) error {
	if h.cfg.PaymentWebhookSecret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.cfg.PaymentWebhookSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var webhook dto.PaymentWebhook
	if err := c.BodyParser(&webhook); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	if err := h.paymentService.HandleWebhookEvent(&webhook.Event); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Order not found",
			})
		}
		slog.Error("webhook processing failed", "event_type", webhook.Event.Type, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process webhook event",
		})
	}

	slog.Info("webhook processed", "event_type", webhook.Event.Type, "order_id", webhook.Event.OrderID)
	return c.JSON(fiber.Map{"received": true})
}
