package handlers

import (
	"net/http"
	"testing"

	"github.com/elitestore/storefront/internal/config"
	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"github.com/elitestore/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWebhookApp(t *testing.T, secret string) (*fiber.App, *services.OrderService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	orders := services.NewOrderService(db)
	payments := services.NewPaymentService(db, orders)

	cfg := config.Load()
	cfg.PaymentWebhookSecret = secret

	app := fiber.New()
	app.Post("/api/webhooks/payment", NewWebhookHandler(payments, cfg).HandlePayment)
	return app, orders, db
}

func webhookPayload(orderID string) map[string]interface{} {
	return map[string]interface{}{
		"api_version": "1.0",
		"event": map[string]interface{}{
			"type":           "PAYMENT_COMPLETED",
			"id":             "evt-1",
			"order_id":       orderID,
			"transaction_id": "txn-1",
			"status":         "COMPLETED",
			"email_address":  "jo@example.com",
			"amount":         53.19,
			"currency":       "USD",
			"occurred_at_ms": 1735689600000,
		},
	}
}

func TestWebhookUnconfiguredIs404(t *testing.T) {
	app, _, _ := newWebhookApp(t, "")

	resp := doJSON(t, app, fiber.MethodPost, "/api/webhooks/payment", webhookPayload(uuid.NewString()), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	app, _, _ := newWebhookApp(t, "hook-secret")

	resp := doJSON(t, app, fiber.MethodPost, "/api/webhooks/payment", webhookPayload(uuid.NewString()),
		map[string]string{"Authorization": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/webhooks/payment", webhookPayload(uuid.NewString()), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookAppliesEvent(t *testing.T) {
	app, orders, _ := newWebhookApp(t, "hook-secret")

	order, err := orders.Create(uuid.New(), &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 1, Price: 53.19, Name: "Tee"},
		},
		ShippingAddress: &models.ShippingAddress{Name: "Jo Doe", City: "Springfield", Country: "US"},
		PaymentMethod:   "card",
		Subtotal:        40, Tax: 3.2, Shipping: 9.99, Total: 53.19,
	})
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodPost, "/api/webhooks/payment", webhookPayload(order.ID.String()),
		map[string]string{"Authorization": "hook-secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "processing", got.Status)
	require.NotNil(t, got.PaymentResult)
	assert.Equal(t, "txn-1", got.PaymentResult.Data().ID)
}

func TestWebhookUnknownOrderIs404(t *testing.T) {
	app, _, _ := newWebhookApp(t, "hook-secret")

	resp := doJSON(t, app, fiber.MethodPost, "/api/webhooks/payment", webhookPayload(uuid.NewString()),
		map[string]string{"Authorization": "hook-secret"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
