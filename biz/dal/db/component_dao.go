package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/yi-nology/asset_harbor/biz/dal/model"

	"gorm.io/gorm"
)

// ComponentDAO handles CRUD operations for components.
type ComponentDAO struct{}

func NewComponentDAO() *ComponentDAO { return &ComponentDAO{} }

func (dao *ComponentDAO) Create(ctx context.Context, db *gorm.DB, component *model.Component) error {
	if component == nil {
		return nil
	}
	if component.ComponentID == "" {
		component.ComponentID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(component).Error
}

// Update replaces the full record identified by component_id, carrying
// over the stored primary key and created_at.
func (dao *ComponentDAO) Update(ctx context.Context, db *gorm.DB, component *model.Component) error {
	if component == nil {
		return nil
	}
	var existing model.Component
	if err := db.WithContext(ctx).Where("component_id = ?", component.ComponentID).First(&existing).Error; err != nil {
		return err
	}
	component.ID = existing.ID
	component.CreatedAt = existing.CreatedAt
	return db.WithContext(ctx).Save(component).Error
}

// DeleteByComponentID hard-deletes a single component row. Unknown ids
// delete zero rows and succeed.
func (dao *ComponentDAO) DeleteByComponentID(ctx context.Context, db *gorm.DB, componentID string) error {
	return db.WithContext(ctx).Unscoped().Where("component_id = ?", componentID).Delete(&model.Component{}).Error
}

// DeleteByComponentIDs hard-deletes a batch of component rows in one
// statement, used by cascading deletes.
func (dao *ComponentDAO) DeleteByComponentIDs(ctx context.Context, db *gorm.DB, componentIDs []string) error {
	if len(componentIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Unscoped().Where("component_id IN ?", componentIDs).Delete(&model.Component{}).Error
}

func (dao *ComponentDAO) GetByComponentID(ctx context.Context, db *gorm.DB, componentID string) (*model.Component, error) {
	var component model.Component
	if err := db.WithContext(ctx).Where("component_id = ?", componentID).First(&component).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

// ListByAsset returns every component of the asset, nested ones included.
func (dao *ComponentDAO) ListByAsset(ctx context.Context, db *gorm.DB, assetID string) ([]model.Component, error) {
	var components []model.Component
	if err := db.WithContext(ctx).
		Where("parent_id = ?", assetID).
		Order("created_at ASC").
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// ListTopLevel returns the components that hang directly off the asset.
func (dao *ComponentDAO) ListTopLevel(ctx context.Context, db *gorm.DB, assetID string) ([]model.Component, error) {
	var components []model.Component
	if err := db.WithContext(ctx).
		Where("parent_id = ? AND (parent_sub_id IS NULL OR parent_sub_id = '')", assetID).
		Order("created_at ASC").
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// ListChildren returns the components nested directly under another component.
func (dao *ComponentDAO) ListChildren(ctx context.Context, db *gorm.DB, parentSubID string) ([]model.Component, error) {
	var components []model.Component
	if err := db.WithContext(ctx).
		Where("parent_sub_id = ?", parentSubID).
		Order("created_at ASC").
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

func (dao *ComponentDAO) ListAll(ctx context.Context, db *gorm.DB) ([]model.Component, error) {
	var components []model.Component
	if err := db.WithContext(ctx).
		Order("created_at ASC").
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}
