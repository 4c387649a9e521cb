package handlers

import (
	"errors"
	"strconv"

	"github.com/elitestore/storefront/internal/auth"
	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService *services.OrderService
	userService  *services.UserService
}

func NewOrderHandler(orderService *services.OrderService, userService *services.UserService) *OrderHandler {
	return &OrderHandler{orderService: orderService, userService: userService}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if field := req.MissingField(); field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: " + field,
		})
	}

	order, err := h.orderService.Create(userID, &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create order",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListMine returns the caller's own orders, newest first.
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	orders, err := h.orderService.ListByUser(userID, services.ListOptions{
		Limit: limit,
		Skip:  (page - 1) * limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch orders",
		})
	}

	return c.JSON(dto.OrderListResponse{
		Orders: orders,
		Pagination: dto.Pagination{
			Page:    page,
			Limit:   limit,
			HasMore: len(orders) == limit,
		},
	})
}

// Get returns one order. Only the owner or an admin may read it.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid order ID",
		})
	}

	order, err := h.orderService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch order",
		})
	}

	if order.UserID != userID && !h.isAdmin(userID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Access denied",
		})
	}

	return c.JSON(order)
}

// ListAll is the admin order index, optionally filtered by status.
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	orders, err := h.orderService.ListAll(c.Query("status"), services.ListOptions{
		Limit: limit,
		Skip:  (page - 1) * limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch orders",
		})
	}

	return c.JSON(dto.OrderListResponse{
		Orders: orders,
		Pagination: dto.Pagination{
			Page:    page,
			Limit:   limit,
			HasMore: len(orders) == limit,
		},
	})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid order ID",
		})
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: status",
		})
	}

	order, err := h.orderService.UpdateStatus(id, req.Status, req.TrackingNumber)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update order",
		})
	}

	return c.JSON(order)
}

func (h *OrderHandler) isAdmin(userID uuid.UUID) bool {
	user, err := h.userService.GetByID(userID)
	return err == nil && user.Role == "admin"
}
