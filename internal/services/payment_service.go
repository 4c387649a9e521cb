package services

import (
	"fmt"
	"time"

	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService applies payment provider webhook events to orders.
type PaymentService struct {
	db     *gorm.DB
	orders *OrderService
}

func NewPaymentService(db *gorm.DB, orders *OrderService) *PaymentService {
	return &PaymentService{db: db, orders: orders}
}

// HandleWebhookEvent routes one provider event. Unknown event types are
// acknowledged and ignored so the provider does not retry them forever.
func (s *PaymentService) HandleWebhookEvent(event *dto.PaymentEvent) error {
	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return fmt.Errorf("invalid order id in webhook event: %w", err)
	}

	result := models.PaymentResult{
		ID:           event.TransactionID,
		Status:       event.Status,
		UpdateTime:   msToTime(event.OccurredAtMs).UTC().Format(time.RFC3339),
		EmailAddress: event.EmailAddress,
	}

	switch event.Type {
	case "PAYMENT_COMPLETED":
		return s.orders.RecordPaymentResult(orderID, result, models.OrderStatusProcessing)
	case "PAYMENT_FAILED":
		return s.orders.RecordPaymentResult(orderID, result, "")
	case "REFUNDED":
		return s.orders.RecordPaymentResult(orderID, result, models.OrderStatusCancelled)
	default:
		return nil
	}
}

func msToTime(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond))
}
