package dto

import (
	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest      `json:"items"`
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	Subtotal        float64                 `json:"subtotal"`
	Tax             float64                 `json:"tax"`
	Shipping        float64                 `json:"shipping"`
	Total           float64                 `json:"total"`
	Notes           string                  `json:"notes"`
}

// MissingField returns the first absent required field. An empty items
// array is treated as missing: an order with nothing in it is invalid even
// though the key is technically present.
func (r *CreateOrderRequest) MissingField() string {
	switch {
	case len(r.Items) == 0:
		return "items"
	case r.ShippingAddress == nil:
		return "shippingAddress"
	case r.PaymentMethod == "":
		return "paymentMethod"
	case r.Subtotal == 0:
		return "subtotal"
	case r.Tax == 0:
		return "tax"
	case r.Shipping == 0:
		return "shipping"
	case r.Total == 0:
		return "total"
	}
	return ""
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
}

type OrderListResponse struct {
	Orders     []models.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}
