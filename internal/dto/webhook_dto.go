package dto

// PaymentWebhook is the payment provider's event envelope.
type PaymentWebhook struct {
	APIVersion string       `json:"api_version"`
	Event      PaymentEvent `json:"event"`
}

// PaymentEvent describes one payment state change for an order.
type PaymentEvent struct {
	Type          string  `json:"type"` // PAYMENT_COMPLETED, PAYMENT_FAILED, REFUNDED
	ID            string  `json:"id"`
	OrderID       string  `json:"order_id"`
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	EmailAddress  string  `json:"email_address"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	OccurredAtMs  int64   `json:"occurred_at_ms"`
}
