package dto

import (
	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
)

// DashboardStats is computed in one pass over the orders table plus two
// row counts.
type DashboardStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	TotalProducts     int64   `json:"totalProducts"`
	TotalOrders       int64   `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// TopProduct is one row of the best-sellers aggregation over order line
// items. ProductName is a snapshot carried from the line items, not a live
// join to the catalog.
type TopProduct struct {
	ProductID    uuid.UUID `json:"productId"`
	ProductName  string    `json:"productName"`
	TotalSold    int64     `json:"totalSold"`
	TotalRevenue float64   `json:"totalRevenue"`
}

type DashboardResponse struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []models.Order `json:"recentOrders"`
	TopProducts  []TopProduct   `json:"topProducts"`
}
