package handlers

import (
	"net/http"
	"testing"

	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"github.com/elitestore/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderApp(t *testing.T, userID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	h := NewOrderHandler(services.NewOrderService(db), services.NewUserService(db))

	app := fiber.New()
	app.Use(asUser(userID))
	app.Post("/api/orders", h.Create)
	app.Get("/api/orders", h.ListMine)
	app.Get("/api/orders/:id", h.Get)
	app.Put("/api/admin/orders/:id/status", h.UpdateStatus)
	return app, db
}

func orderPayload() map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": uuid.NewString(), "quantity": 2, "price": 20, "name": "Tee"},
		},
		"shippingAddress": map[string]interface{}{
			"name": "Jo Doe", "street": "1 Main St", "city": "Springfield",
			"state": "IL", "zipCode": "62701", "country": "US", "phone": "555-0100",
		},
		"paymentMethod": "card",
		"subtotal":      40,
		"tax":           3.2,
		"shipping":      9.99,
		"total":         53.19,
	}
}

func TestOrderCreate(t *testing.T) {
	userID := uuid.New()
	app, _ := newOrderApp(t, userID)

	resp := doJSON(t, app, fiber.MethodPost, "/api/orders", orderPayload(), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, "pending", order.Status)
	assert.Len(t, order.Items, 1)
}

func TestOrderCreateEmptyItems(t *testing.T) {
	app, db := newOrderApp(t, uuid.New())

	payload := orderPayload()
	payload["items"] = []map[string]interface{}{}

	resp := doJSON(t, app, fiber.MethodPost, "/api/orders", payload, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Missing required field: items", body.Message)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestOrderCreateMissingAddress(t *testing.T) {
	app, _ := newOrderApp(t, uuid.New())

	payload := orderPayload()
	delete(payload, "shippingAddress")

	resp := doJSON(t, app, fiber.MethodPost, "/api/orders", payload, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Missing required field: shippingAddress", body.Message)
}

func TestOrderGetOwnership(t *testing.T) {
	owner := uuid.New()
	app, db := newOrderApp(t, owner)

	resp := doJSON(t, app, fiber.MethodPost, "/api/orders", orderPayload(), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	// The owner can read it.
	resp = doJSON(t, app, fiber.MethodGet, "/api/orders/"+order.ID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	h := NewOrderHandler(services.NewOrderService(db), services.NewUserService(db))

	// A different non-admin user cannot.
	stranger := uuid.New()
	require.NoError(t, db.Create(&models.User{ID: stranger, Name: "S", Email: "s@example.com", Role: "user"}).Error)
	strangerApp := fiber.New()
	strangerApp.Use(asUser(stranger))
	strangerApp.Get("/api/orders/:id", h.Get)

	resp = doJSON(t, strangerApp, fiber.MethodGet, "/api/orders/"+order.ID.String(), nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// An admin can read anyone's order.
	admin := uuid.New()
	require.NoError(t, db.Create(&models.User{ID: admin, Name: "A", Email: "a@example.com", Role: "admin"}).Error)
	adminApp := fiber.New()
	adminApp.Use(asUser(admin))
	adminApp.Get("/api/orders/:id", h.Get)

	resp = doJSON(t, adminApp, fiber.MethodGet, "/api/orders/"+order.ID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOrderListMine(t *testing.T) {
	userID := uuid.New()
	app, db := newOrderApp(t, userID)

	resp := doJSON(t, app, fiber.MethodPost, "/api/orders", orderPayload(), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Another user's order must not show up.
	other := models.Order{ID: uuid.New(), UserID: uuid.New(), PaymentMethod: "card", Total: 10}
	require.NoError(t, db.Create(&other).Error)

	resp = doJSON(t, app, fiber.MethodGet, "/api/orders", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.OrderListResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Orders, 1)
	assert.Equal(t, userID, body.Orders[0].UserID)
}

func TestOrderUpdateStatus(t *testing.T) {
	app, _ := newOrderApp(t, uuid.New())

	resp := doJSON(t, app, fiber.MethodPost, "/api/orders", orderPayload(), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	resp = doJSON(t, app, fiber.MethodPut, "/api/admin/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "shipped", "trackingNumber": "TRACK-1"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Order
	decodeBody(t, resp, &updated)
	assert.Equal(t, "shipped", updated.Status)
	require.NotNil(t, updated.TrackingNumber)
	assert.Equal(t, "TRACK-1", *updated.TrackingNumber)

	resp = doJSON(t, app, fiber.MethodPut, "/api/admin/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "vaporized"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/admin/orders/"+order.ID.String()+"/status",
		map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/admin/orders/"+uuid.NewString()+"/status",
		map[string]string{"status": "shipped"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
