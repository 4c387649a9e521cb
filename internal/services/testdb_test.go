package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/elitestore/storefront/internal/config"
	"github.com/elitestore/storefront/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. The shared-cache
// DSN keeps gorm's connection pool pointed at the same database instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Setting{},
		&models.SystemLog{},
	))

	return db
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.JWTSecret = "test-secret"
	return cfg
}
