package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/yi-nology/asset_harbor/biz/dal/model"

	"gorm.io/gorm"
)

// AssetDAO handles CRUD operations for assets.
type AssetDAO struct{}

func NewAssetDAO() *AssetDAO { return &AssetDAO{} }

func (dao *AssetDAO) Create(ctx context.Context, db *gorm.DB, asset *model.Asset) error {
	if asset == nil {
		return nil
	}
	if asset.AssetID == "" {
		asset.AssetID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(asset).Error
}

// Update replaces the full record identified by asset_id. The numeric
// primary key and created_at of the stored row are always carried over,
// so edits never rewrite creation history.
func (dao *AssetDAO) Update(ctx context.Context, db *gorm.DB, asset *model.Asset) error {
	if asset == nil {
		return nil
	}
	var existing model.Asset
	if err := db.WithContext(ctx).Where("asset_id = ?", asset.AssetID).First(&existing).Error; err != nil {
		return err
	}
	asset.ID = existing.ID
	asset.CreatedAt = existing.CreatedAt
	return db.WithContext(ctx).Save(asset).Error
}

// DeleteByAssetID hard-deletes the asset row. Deleting an id that no
// longer exists is a successful no-op.
func (dao *AssetDAO) DeleteByAssetID(ctx context.Context, db *gorm.DB, assetID string) error {
	return db.WithContext(ctx).Unscoped().Where("asset_id = ?", assetID).Delete(&model.Asset{}).Error
}

func (dao *AssetDAO) GetByAssetID(ctx context.Context, db *gorm.DB, assetID string) (*model.Asset, error) {
	var asset model.Asset
	if err := db.WithContext(ctx).Where("asset_id = ?", assetID).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (dao *AssetDAO) List(ctx context.Context, db *gorm.DB) ([]model.Asset, error) {
	var assets []model.Asset
	if err := db.WithContext(ctx).
		Order("created_at DESC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (dao *AssetDAO) ListByCategory(ctx context.Context, db *gorm.DB, category string) ([]model.Asset, error) {
	var assets []model.Asset
	if err := db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}
