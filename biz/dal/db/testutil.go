package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate all tables
	if err := db.AutoMigrate(
		&model.Asset{},
		&model.Component{},
	); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestAsset creates a test asset with default values
func CreateTestAsset(t *testing.T, db *gorm.DB, name string) *model.Asset {
	t.Helper()
	dao := NewAssetDAO()
	asset := &model.Asset{
		Name:     name,
		Category: "electronics",
		Location: "office",
	}
	if err := dao.Create(context.Background(), db, asset); err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestComponent creates a test component attached to the given parents
func CreateTestComponent(t *testing.T, db *gorm.DB, assetID string, parentSubID *string, name string) *model.Component {
	t.Helper()
	dao := NewComponentDAO()
	component := &model.Component{
		ParentID:    assetID,
		ParentSubID: parentSubID,
		Name:        name,
		Quantity:    1,
	}
	if err := dao.Create(context.Background(), db, component); err != nil {
		t.Fatalf("Failed to create test component: %v", err)
	}
	return component
}
