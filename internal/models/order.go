package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order status values. Transition legality is deliberately not enforced;
// admins may set any status in any order (e.g. to correct mistakes).
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known status values.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is the destination snapshot stored on the order.
type ShippingAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// PaymentResult records the payment provider's outcome for an order.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// OrderItem freezes the purchased product's name, image and price at the
// time of purchase. It is never joined back to the live product.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Image     string    `gorm:"size:500" json:"image"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Order is a purchase snapshot owned by exactly one user. Line items are
// immutable after creation; only status, tracking number and payment result
// change afterwards.
type Order struct {
	ID              uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                            `gorm:"type:uuid;not null;index" json:"userId"`
	Items           []OrderItem                          `gorm:"foreignKey:OrderID" json:"items"`
	ShippingAddress datatypes.JSONType[ShippingAddress]  `json:"shippingAddress"`
	PaymentMethod   string                               `gorm:"size:50;not null" json:"paymentMethod"`
	PaymentResult   *datatypes.JSONType[PaymentResult]   `json:"paymentResult,omitempty"`
	Subtotal        float64                              `gorm:"not null" json:"subtotal"`
	Tax             float64                              `gorm:"not null" json:"tax"`
	Shipping        float64                              `gorm:"not null" json:"shipping"`
	Total           float64                              `gorm:"not null" json:"total"`
	Status          string                               `gorm:"size:20;default:'pending';index" json:"status"`
	TrackingNumber  *string                              `gorm:"size:100" json:"trackingNumber,omitempty"`
	Notes           string                               `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time                            `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time                            `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
