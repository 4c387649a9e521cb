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

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product ID",
		})
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	review, err := h.reviewService.Create(userID, productID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Product not found",
			})
		}
		if errors.Is(err, services.ErrInvalidRating) || errors.Is(err, services.ErrCommentRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product ID",
		})
	}

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

	reviews, err := h.reviewService.ListByProduct(productID, services.ListOptions{
		Limit: limit,
		Skip:  (page - 1) * limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reviews",
		})
	}

	return c.JSON(dto.ReviewListResponse{
		Reviews: reviews,
		Pagination: dto.Pagination{
			Page:    page,
			Limit:   limit,
			HasMore: len(reviews) == limit,
		},
	})
}

// MarkHelpful is idempotent per user: marking twice changes nothing.
func (h *ReviewHandler) MarkHelpful(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid review ID",
		})
	}

	review, err := h.reviewService.MarkHelpful(reviewID, userID)
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Review not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mark review helpful",
		})
	}

	return c.JSON(review)
}

// Delete removes a review (admin moderation) and refreshes the product's
// rating aggregate.
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid review ID",
		})
	}

	if err := h.reviewService.Delete(reviewID); err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Review not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete review",
		})
	}

	return c.JSON(fiber.Map{"message": "Review deleted successfully"})
}
