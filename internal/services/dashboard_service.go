package services

import (
	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats computes the admin dashboard headline numbers: user and product
// counts plus a single aggregate pass over orders.
func (s *DashboardService) Stats() (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	var agg struct {
		TotalOrders       int64   `gorm:"column:total_orders"`
		TotalRevenue      float64 `gorm:"column:total_revenue"`
		AverageOrderValue float64 `gorm:"column:average_order_value"`
	}
	err := s.db.Model(&models.Order{}).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total), 0) AS total_revenue, COALESCE(AVG(total), 0) AS average_order_value").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	stats.TotalOrders = agg.TotalOrders
	stats.TotalRevenue = agg.TotalRevenue
	stats.AverageOrderValue = agg.AverageOrderValue
	return stats, nil
}

// RecentOrders returns the newest orders across all users.
func (s *DashboardService) RecentOrders(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 10
	}

	var orders []models.Order
	err := s.db.Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// TopProducts groups order line items by product, sums quantity and revenue,
// and returns the top sellers by quantity. The product name comes from the
// line-item snapshot, so renamed or deleted products still report correctly.
func (s *DashboardService) TopProducts(limit int) ([]dto.TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	var top []dto.TopProduct
	err := s.db.Model(&models.OrderItem{}).
		Select("product_id, MAX(name) AS product_name, SUM(quantity) AS total_sold, SUM(quantity * price) AS total_revenue").
		Group("product_id").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}
