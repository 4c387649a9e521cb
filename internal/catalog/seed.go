// Package catalog loads the YAML seed file used to bootstrap an empty
// product table.
package catalog

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedProduct is one catalog entry as written in the seed file.
type SeedProduct struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Price         float64  `yaml:"price"`
	OriginalPrice float64  `yaml:"originalPrice"`
	Category      string   `yaml:"category"`
	Brand         string   `yaml:"brand"`
	SKU           string   `yaml:"sku"`
	Stock         int      `yaml:"stock"`
	Tags          []string `yaml:"tags"`
	Featured      bool     `yaml:"featured"`
	Images        []struct {
		URL string `yaml:"url"`
		Alt string `yaml:"alt"`
	} `yaml:"images"`
}

type seedFile struct {
	Products []SeedProduct `yaml:"products"`
}

// LoadFile parses a YAML seed file.
func LoadFile(path string) ([]SeedProduct, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog seed: %w", err)
	}
	return Parse(raw)
}

// Parse decodes seed YAML and rejects entries missing the required fields.
func Parse(raw []byte) ([]SeedProduct, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	for i, p := range file.Products {
		if p.Name == "" || p.SKU == "" || p.Price == 0 {
			return nil, fmt.Errorf("catalog seed entry %d: name, sku and price are required", i)
		}
	}
	return file.Products, nil
}

// Seed inserts the seed products when the catalog is empty. An already
// populated catalog is left alone.
func Seed(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("catalog already populated, skipping seed", "products", count)
		return nil
	}

	seeds, err := LoadFile(path)
	if err != nil {
		return err
	}

	for _, seed := range seeds {
		images := make([]models.ProductImage, 0, len(seed.Images))
		for _, img := range seed.Images {
			images = append(images, models.ProductImage{URL: img.URL, Alt: img.Alt})
		}
		tags := seed.Tags
		if tags == nil {
			tags = []string{}
		}

		product := models.Product{
			ID:            uuid.New(),
			Name:          seed.Name,
			Description:   seed.Description,
			Price:         seed.Price,
			OriginalPrice: seed.OriginalPrice,
			Category:      seed.Category,
			Brand:         seed.Brand,
			SKU:           seed.SKU,
			Stock:         seed.Stock,
			Images:        datatypes.NewJSONSlice(images),
			Tags:          datatypes.NewJSONSlice(tags),
			Featured:      seed.Featured,
			Status:        models.ProductStatusActive,
		}
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", seed.SKU, err)
		}
	}

	slog.Info("catalog seeded", "products", len(seeds))
	return nil
}
