package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUTaken        = errors.New("sku already in use")
)

// ListOptions are the structured pagination/sort parameters accepted by the
// list queries. SortField must be one of the whitelisted API names; anything
// else falls back to newest-first.
type ListOptions struct {
	Limit     int
	Skip      int
	SortField string
	SortDesc  bool
}

// Normalize applies the default page size. No upper bound is enforced here;
// handlers cap the limit before calling in.
func (o *ListOptions) Normalize() {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Skip < 0 {
		o.Skip = 0
	}
}

// sortColumns whitelists API sort names against real columns so arbitrary
// input never reaches the ORDER BY clause.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
	"stock":     "stock",
	"rating":    "rating_average",
}

func (o *ListOptions) orderClause() string {
	col, ok := sortColumns[o.SortField]
	if !ok {
		return "created_at DESC"
	}
	if o.SortDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

// ProductFilter narrows the catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Status   string
	Featured *bool
}

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// Create stores a new catalog entry with defaults applied. The rating
// aggregate always starts at zero regardless of the payload.
func (s *ProductService) Create(req *dto.CreateProductRequest) (*models.Product, error) {
	var existing models.Product
	if err := s.db.Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
		return nil, ErrSKUTaken
	}

	status := req.Status
	if status == "" {
		status = models.ProductStatusActive
	}

	product := models.Product{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Category:       req.Category,
		Brand:          req.Brand,
		Images:         orEmpty(req.Images),
		Stock:          req.Stock,
		SKU:            req.SKU,
		Rating:         models.Rating{},
		Specifications: orEmpty(req.Specifications),
		Tags:           orEmpty(req.Tags),
		Featured:       req.Featured,
		Status:         status,
	}
	if req.SEO != nil {
		product.SEO = datatypes.NewJSONType(*req.SEO)
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}

	return &product, nil
}

func orEmpty[T any](in []T) datatypes.JSONSlice[T] {
	if in == nil {
		in = []T{}
	}
	return datatypes.NewJSONSlice(in)
}

// List returns up to opts.Limit products matching the filter, ordered per
// opts (default newest first), offset by opts.Skip.
func (s *ProductService) List(filter ProductFilter, opts ListOptions) ([]models.Product, error) {
	opts.Normalize()

	query := s.db.Model(&models.Product{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	var products []models.Product
	err := query.Order(opts.orderClause()).
		Offset(opts.Skip).
		Limit(opts.Limit).
		Find(&products).Error
	return products, err
}

// Search matches the query case-insensitively against name, description and
// tags. Results come back in natural database order; there is no ranking.
func (s *ProductService) Search(query string, opts ListOptions) ([]models.Product, error) {
	opts.Normalize()
	pattern := "%" + strings.ToLower(query) + "%"

	var products []models.Product
	err := s.db.
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?",
			pattern, pattern, pattern).
		Offset(opts.Skip).
		Limit(opts.Limit).
		Find(&products).Error
	return products, err
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) GetBySKU(sku string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("sku = ?", sku).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Update applies the provided fields and stamps updatedAt. The rating
// aggregate cannot be written through here.
func (s *ProductService) Update(id uuid.UUID, req *dto.UpdateProductRequest) (*models.Product, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Images != nil {
		updates["images"] = datatypes.NewJSONSlice(*req.Images)
	}
	if req.Specifications != nil {
		updates["specifications"] = datatypes.NewJSONSlice(*req.Specifications)
	}
	if req.Tags != nil {
		updates["tags"] = datatypes.NewJSONSlice(*req.Tags)
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.SEO != nil {
		updates["seo"] = datatypes.NewJSONType(*req.SEO)
	}

	if err := s.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

func (s *ProductService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// UpdateRating recomputes the product's rating aggregate from the reviews
// table and overwrites the stored values unconditionally. The average is
// rounded to one decimal place; with no reviews both fields reset to zero.
// This runs as a follow-up to review writes and is not atomic with them.
func (s *ProductService) UpdateRating(productID uuid.UUID) error {
	var agg struct {
		AvgRating   float64 `gorm:"column:avg_rating"`
		ReviewCount int64   `gorm:"column:review_count"`
	}

	err := s.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS review_count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return s.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating_average": math.Round(agg.AvgRating*10) / 10,
			"rating_count":   agg.ReviewCount,
			"updated_at":     time.Now(),
		}).Error
}
