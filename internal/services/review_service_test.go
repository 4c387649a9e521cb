package services

import (
	"testing"

	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewFixture(t *testing.T) (*gorm.DB, *ProductService, *ReviewService, *models.Product) {
	t.Helper()

	db := newTestDB(t)
	products := NewProductService(db)
	reviews := NewReviewService(db, products)
	product := createTestProduct(t, products, "SKU-R", nil)
	return db, products, reviews, product
}

func TestReviewCreateValidation(t *testing.T) {
	_, _, reviews, product := newReviewFixture(t)
	userID := uuid.New()

	_, err := reviews.Create(userID, product.ID, &dto.CreateReviewRequest{Rating: 0, Comment: "ok"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = reviews.Create(userID, product.ID, &dto.CreateReviewRequest{Rating: 6, Comment: "ok"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = reviews.Create(userID, product.ID, &dto.CreateReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrCommentRequired)

	_, err = reviews.Create(userID, uuid.New(), &dto.CreateReviewRequest{Rating: 4, Comment: "ok"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReviewCreateUpdatesProductRating(t *testing.T) {
	_, products, reviews, product := newReviewFixture(t)

	_, err := reviews.Create(uuid.New(), product.ID, &dto.CreateReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = reviews.Create(uuid.New(), product.ID, &dto.CreateReviewRequest{Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	got, err := products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.Rating.Average)
	assert.Equal(t, 2, got.Rating.Count)
}

func TestReviewVerifiedPurchase(t *testing.T) {
	db, _, reviews, product := newReviewFixture(t)

	buyer := uuid.New()
	browser := uuid.New()

	order := models.Order{
		ID:            uuid.New(),
		UserID:        buyer,
		PaymentMethod: "card",
		Total:         49.99,
		Status:        models.OrderStatusDelivered,
		Items: []models.OrderItem{{
			ID: uuid.New(), ProductID: product.ID, Quantity: 1, Price: 49.99, Name: product.Name,
		}},
	}
	require.NoError(t, db.Create(&order).Error)

	// An undelivered order does not verify.
	pending := models.Order{
		ID:            uuid.New(),
		UserID:        browser,
		PaymentMethod: "card",
		Total:         49.99,
		Status:        models.OrderStatusPending,
		Items: []models.OrderItem{{
			ID: uuid.New(), ProductID: product.ID, Quantity: 1, Price: 49.99, Name: product.Name,
		}},
	}
	require.NoError(t, db.Create(&pending).Error)

	verified, err := reviews.Create(buyer, product.ID, &dto.CreateReviewRequest{Rating: 5, Comment: "fits well"})
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	unverified, err := reviews.Create(browser, product.ID, &dto.CreateReviewRequest{Rating: 3, Comment: "looks ok"})
	require.NoError(t, err)
	assert.False(t, unverified.Verified)
}

func TestReviewCreateReportsPurchaseCheckFailure(t *testing.T) {
	db, _, reviews, product := newReviewFixture(t)

	require.NoError(t, db.Migrator().DropTable(&models.OrderItem{}))

	_, err := reviews.Create(uuid.New(), product.ID, &dto.CreateReviewRequest{Rating: 4, Comment: "ok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check purchase history")
}

func TestReviewMarkHelpfulIdempotent(t *testing.T) {
	_, _, reviews, product := newReviewFixture(t)

	review, err := reviews.Create(uuid.New(), product.ID, &dto.CreateReviewRequest{Rating: 4, Comment: "ok"})
	require.NoError(t, err)

	voter := uuid.New()
	got, err := reviews.MarkHelpful(review.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, 1, got.HelpfulCount)

	// Same voter again is a no-op.
	got, err = reviews.MarkHelpful(review.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, 1, got.HelpfulCount)

	got, err = reviews.MarkHelpful(review.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, got.HelpfulCount)
	assert.Len(t, []uuid.UUID(got.HelpfulUsers), 2)

	_, err = reviews.MarkHelpful(uuid.New(), voter)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewDeleteRecomputesRating(t *testing.T) {
	_, products, reviews, product := newReviewFixture(t)

	first, err := reviews.Create(uuid.New(), product.ID, &dto.CreateReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = reviews.Create(uuid.New(), product.ID, &dto.CreateReviewRequest{Rating: 1, Comment: "bad"})
	require.NoError(t, err)

	require.NoError(t, reviews.Delete(first.ID))

	got, err := products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Rating.Average)
	assert.Equal(t, 1, got.Rating.Count)

	assert.ErrorIs(t, reviews.Delete(first.ID), ErrReviewNotFound)
}

func TestReviewListByProduct(t *testing.T) {
	_, _, reviews, product := newReviewFixture(t)

	for i := 0; i < 3; i++ {
		_, err := reviews.Create(uuid.New(), product.ID, &dto.CreateReviewRequest{Rating: 4, Comment: "ok"})
		require.NoError(t, err)
	}

	got, err := reviews.ListByProduct(product.ID, ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	rest, err := reviews.ListByProduct(product.ID, ListOptions{Limit: 2, Skip: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	none, err := reviews.ListByProduct(uuid.New(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, none)
}
