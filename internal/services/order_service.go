package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Create snapshots the order for the given user. Line items freeze the
// product name, image and price as submitted; status always starts pending.
func (s *OrderService) Create(userID uuid.UUID, req *dto.CreateOrderRequest) (*models.Order, error) {
	order := models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		ShippingAddress: datatypes.NewJSONType(*req.ShippingAddress),
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		Shipping:        req.Shipping,
		Total:           req.Total,
		Status:          models.OrderStatusPending,
		Notes:           req.Notes,
	}

	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      item.Name,
			Image:     item.Image,
		})
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(userID uuid.UUID, opts ListOptions) ([]models.Order, error) {
	opts.Normalize()

	var orders []models.Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order(opts.orderClause()).
		Offset(opts.Skip).
		Limit(opts.Limit).
		Find(&orders).Error
	return orders, err
}

// ListAll returns every order, optionally filtered by status. Admin use.
func (s *OrderService) ListAll(status string, opts ListOptions) ([]models.Order, error) {
	opts.Normalize()

	query := s.db.Preload("Items")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.Order(opts.orderClause()).
		Offset(opts.Skip).
		Limit(opts.Limit).
		Find(&orders).Error
	return orders, err
}

func (s *OrderService) GetByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus sets the order status and, when given, the tracking number.
// Any known status may follow any other; transition legality is not
// enforced so admins can correct mistakes.
func (s *OrderService) UpdateStatus(id uuid.UUID, status, trackingNumber string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}

	result := s.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}

	return s.GetByID(id)
}

// RecordPaymentResult stores the provider's outcome on the order.
func (s *OrderService) RecordPaymentResult(id uuid.UUID, result models.PaymentResult, status string) error {
	updates := map[string]interface{}{
		"payment_result": datatypes.NewJSONType(result),
		"updated_at":     time.Now(),
	}
	if status != "" {
		updates["status"] = status
	}

	res := s.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
