package services

import (
	"errors"
	"fmt"

	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentRequired = errors.New("comment is required")
)

type ReviewService struct {
	db       *gorm.DB
	products *ProductService
}

func NewReviewService(db *gorm.DB, products *ProductService) *ReviewService {
	return &ReviewService{db: db, products: products}
}

// Create inserts the review and then recomputes the parent product's rating
// aggregate. The two writes are not transactional: a crash in between leaves
// the stored rating stale until the next review touches it.
func (s *ReviewService) Create(userID, productID uuid.UUID, req *dto.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if req.Comment == "" {
		return nil, ErrCommentRequired
	}

	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}

	// Reviews from users with a delivered order for this product count as
	// verified purchases.
	var purchases int64
	err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status = ?",
			userID, productID, models.OrderStatusDelivered).
		Count(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase history: %w", err)
	}

	review := models.Review{
		ID:           uuid.New(),
		UserID:       userID,
		ProductID:    productID,
		Rating:       req.Rating,
		Title:        req.Title,
		Comment:      req.Comment,
		Verified:     purchases > 0,
		HelpfulUsers: datatypes.NewJSONSlice([]uuid.UUID{}),
	}

	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.products.UpdateRating(productID); err != nil {
		return nil, fmt.Errorf("failed to update product rating: %w", err)
	}

	return &review, nil
}

// ListByProduct returns the product's reviews, newest first.
func (s *ReviewService) ListByProduct(productID uuid.UUID, opts ListOptions) ([]models.Review, error) {
	opts.Normalize()

	var reviews []models.Review
	err := s.db.Where("product_id = ?", productID).
		Order(opts.orderClause()).
		Offset(opts.Skip).
		Limit(opts.Limit).
		Find(&reviews).Error
	return reviews, err
}

// MarkHelpful records that the user found the review helpful. Each user
// counts at most once; repeated calls are no-ops.
func (s *ReviewService) MarkHelpful(reviewID, userID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	for _, voter := range review.HelpfulUsers {
		if voter == userID {
			return &review, nil
		}
	}

	voters := append([]uuid.UUID(review.HelpfulUsers), userID)
	updates := map[string]interface{}{
		"helpful_users": datatypes.NewJSONSlice(voters),
		"helpful_count": len(voters),
	}
	if err := s.db.Model(&review).Updates(updates).Error; err != nil {
		return nil, err
	}

	review.HelpfulUsers = datatypes.NewJSONSlice(voters)
	review.HelpfulCount = len(voters)
	return &review, nil
}

// Delete removes a review (moderation) and recomputes the product rating.
func (s *ReviewService) Delete(reviewID uuid.UUID) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrReviewNotFound
		}
		return err
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return err
	}

	return s.products.UpdateRating(review.ProductID)
}
