package dto

import "github.com/elitestore/storefront/internal/models"

// CreateProductRequest mirrors the storefront admin form. Required fields
// use the storefront's presence semantics: empty strings and zero numbers
// both count as missing.
type CreateProductRequest struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          float64                `json:"price"`
	OriginalPrice  float64                `json:"originalPrice"`
	Category       string                 `json:"category"`
	Brand          string                 `json:"brand"`
	SKU            string                 `json:"sku"`
	Stock          int                    `json:"stock"`
	Images         []models.ProductImage  `json:"images"`
	Specifications []models.Specification `json:"specifications"`
	Tags           []string               `json:"tags"`
	Featured       bool                   `json:"featured"`
	Status         string                 `json:"status"`
	SEO            *models.SEO            `json:"seo"`
}

// MissingField returns the name of the first required field that is absent,
// or "" when the payload is complete.
func (r *CreateProductRequest) MissingField() string {
	switch {
	case r.Name == "":
		return "name"
	case r.Description == "":
		return "description"
	case r.Price == 0:
		return "price"
	case r.OriginalPrice == 0:
		return "originalPrice"
	case r.Category == "":
		return "category"
	case r.Brand == "":
		return "brand"
	case r.SKU == "":
		return "sku"
	case r.Stock == 0:
		return "stock"
	}
	return ""
}

// UpdateProductRequest uses pointers so omitted fields are left untouched.
// Rating is absent on purpose: it is derived from reviews only.
type UpdateProductRequest struct {
	Name           *string                 `json:"name"`
	Description    *string                 `json:"description"`
	Price          *float64                `json:"price"`
	OriginalPrice  *float64                `json:"originalPrice"`
	Category       *string                 `json:"category"`
	Brand          *string                 `json:"brand"`
	Stock          *int                    `json:"stock"`
	Images         *[]models.ProductImage  `json:"images"`
	Specifications *[]models.Specification `json:"specifications"`
	Tags           *[]string               `json:"tags"`
	Featured       *bool                   `json:"featured"`
	Status         *string                 `json:"status"`
	SEO            *models.SEO             `json:"seo"`
}

type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}
