package services

import (
	"testing"

	"github.com/elitestore/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsSeedDefaults(t *testing.T) {
	db := newTestDB(t)
	s := NewSettingsService(db)

	s.SeedDefaults()

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, "EliteStore", all["store_name"])
	assert.Equal(t, "USD", all["currency"])
	assert.Equal(t, false, all["maintenance_mode"])
	assert.Equal(t, 75, all["free_shipping_threshold"])

	// Seeding again never overwrites an edited value.
	require.NoError(t, s.Set("store_name", "MyStore", "string"))
	s.SeedDefaults()

	all, err = s.All()
	require.NoError(t, err)
	assert.Equal(t, "MyStore", all["store_name"])

	var count int64
	db.Model(&models.Setting{}).Count(&count)
	assert.Equal(t, int64(len(all)), count)
}

func TestSettingsTypedDecoding(t *testing.T) {
	s := NewSettingsService(newTestDB(t))

	require.NoError(t, s.Set("flag", "true", "bool"))
	require.NoError(t, s.Set("limit", "42", "int"))
	require.NoError(t, s.Set("banner", `{"text":"Sale","active":true}`, "json"))
	require.NoError(t, s.Set("motd", "hello", ""))

	all, err := s.All()
	require.NoError(t, err)

	assert.Equal(t, true, all["flag"])
	assert.Equal(t, 42, all["limit"])
	assert.Equal(t, "hello", all["motd"])

	banner, ok := all["banner"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Sale", banner["text"])
	assert.Equal(t, true, banner["active"])
}

func TestSettingsInvalidJSONFallsBackToRaw(t *testing.T) {
	s := NewSettingsService(newTestDB(t))

	require.NoError(t, s.Set("broken", "{not json", "json"))

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, "{not json", all["broken"])
}

func TestSettingsSetUpdatesExisting(t *testing.T) {
	s := NewSettingsService(newTestDB(t))

	require.NoError(t, s.Set("tax_rate", "0.08", "string"))
	require.NoError(t, s.Set("tax_rate", "19", "int"))

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, 19, all["tax_rate"])
	assert.Len(t, all, 1)
}

func TestSettingsDelete(t *testing.T) {
	s := NewSettingsService(newTestDB(t))

	require.NoError(t, s.Set("temp", "x", "string"))
	require.NoError(t, s.Delete("temp"))

	all, err := s.All()
	require.NoError(t, err)
	assert.NotContains(t, all, "temp")

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete("temp"))
}
