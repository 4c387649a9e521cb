package services

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/elitestore/storefront/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// defaultSettings are seeded at startup when missing. Existing values are
// never overwritten.
var defaultSettings = []models.Setting{
	{Key: "store_name", Value: "EliteStore", Type: "string"},
	{Key: "currency", Value: "USD", Type: "string"},
	{Key: "tax_rate", Value: "0.08", Type: "string"},
	{Key: "shipping_fee", Value: "9.99", Type: "string"},
	{Key: "free_shipping_threshold", Value: "75", Type: "int"},
	{Key: "maintenance_mode", Value: "false", Type: "bool"},
	{Key: "featured_banner", Value: "{}", Type: "json"},
}

// SeedDefaults inserts any missing default settings.
func (s *SettingsService) SeedDefaults() {
	for _, def := range defaultSettings {
		var existing models.Setting
		if err := s.db.Where("key = ?", def.Key).First(&existing).Error; err == nil {
			continue
		}
		def.ID = uuid.New()
		if err := s.db.Create(&def).Error; err != nil {
			slog.Error("failed to seed setting", "key", def.Key, "error", err)
		}
	}
}

// All returns every setting decoded according to its declared type.
func (s *SettingsService) All() (map[string]interface{}, error) {
	var settings []models.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, err
	}

	result := make(map[string]interface{}, len(settings))
	for _, setting := range settings {
		result[setting.Key] = decodeSetting(setting)
	}
	return result, nil
}

func decodeSetting(setting models.Setting) interface{} {
	switch setting.Type {
	case "bool":
		v, _ := strconv.ParseBool(setting.Value)
		return v
	case "int":
		v, _ := strconv.Atoi(setting.Value)
		return v
	case "json":
		var v interface{}
		if err := json.Unmarshal([]byte(setting.Value), &v); err != nil {
			return setting.Value
		}
		return v
	default:
		return setting.Value
	}
}

// Set creates or updates one setting.
func (s *SettingsService) Set(key, value, valueType string) error {
	if valueType == "" {
		valueType = "string"
	}

	var existing models.Setting
	if err := s.db.Where("key = ?", key).First(&existing).Error; err == nil {
		return s.db.Model(&existing).Updates(map[string]interface{}{
			"value":      value,
			"type":       valueType,
			"updated_at": time.Now(),
		}).Error
	}

	return s.db.Create(&models.Setting{
		ID:    uuid.New(),
		Key:   key,
		Value: value,
		Type:  valueType,
	}).Error
}

// Delete removes one setting by key.
func (s *SettingsService) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&models.Setting{}).Error
}
