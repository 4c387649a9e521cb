package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product status values.
const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out-of-stock"
)

// ProductImage is one catalog image with its alt text.
type ProductImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Specification is a single name/value product attribute.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SEO holds optional search-engine metadata.
type SEO struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Rating is the derived review aggregate. It is recomputed from the reviews
// table whenever a review is created or removed and must never be written
// from request payloads.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Product is a catalog entry. SKU is the unique business key.
type Product struct {
	ID             uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string                                 `gorm:"size:255;not null" json:"name"`
	Description    string                                 `gorm:"type:text;not null" json:"description"`
	Price          float64                                `gorm:"not null" json:"price"`
	OriginalPrice  float64                                `gorm:"not null" json:"originalPrice"`
	Category       string                                 `gorm:"size:100;not null;index" json:"category"`
	Brand          string                                 `gorm:"size:100;not null" json:"brand"`
	Images         datatypes.JSONSlice[ProductImage]      `json:"images"`
	Stock          int                                    `gorm:"not null" json:"stock"`
	SKU            string                                 `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Rating         Rating                                 `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	Specifications datatypes.JSONSlice[Specification]     `json:"specifications"`
	Tags           datatypes.JSONSlice[string]            `json:"tags"`
	Featured       bool                                   `gorm:"default:false;index" json:"featured"`
	Status         string                                 `gorm:"size:20;default:'active';index" json:"status"`
	SEO            datatypes.JSONType[SEO]                `json:"seo"`
	CreatedAt      time.Time                              `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time                              `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt                         `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
