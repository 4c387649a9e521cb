package handlers

import (
	"strconv"

	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns the admin dashboard payload: headline stats, the newest
// orders, and the best sellers.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	if limit < 1 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	stats, err := h.dashboardService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch dashboard data",
		})
	}

	recentOrders, err := h.dashboardService.RecentOrders(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch dashboard data",
		})
	}

	topProducts, err := h.dashboardService.TopProducts(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch dashboard data",
		})
	}

	return c.JSON(dto.DashboardResponse{
		Stats:        *stats,
		RecentOrders: recentOrders,
		TopProducts:  topProducts,
	})
}
