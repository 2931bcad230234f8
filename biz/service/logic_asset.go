package service

import (
	"context"
	"errors"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"gorm.io/gorm"
)

// --------------------- Asset Operations ---------------------

func (l *Logic) CreateAsset(ctx context.Context, asset *model.Asset) error {
	return l.assetDAO.Create(ctx, l.db, asset)
}

func (l *Logic) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	if err := l.assetDAO.Update(ctx, l.db, asset); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssetNotFound
		}
		return err
	}
	return nil
}

// DeleteAsset removes the asset row plus its first-level component rows.
// Components nested deeper than one level are deliberately left behind;
// that matches the persisted-storage contract, inconsistent as it is
// with the component-side cascade.
func (l *Logic) DeleteAsset(ctx context.Context, assetID string) error {
	topLevel, err := l.componentDAO.ListTopLevel(ctx, l.db, assetID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(topLevel))
	for _, c := range topLevel {
		ids = append(ids, c.ComponentID)
	}
	if err := l.componentDAO.DeleteByComponentIDs(ctx, l.db, ids); err != nil {
		return err
	}
	return l.assetDAO.DeleteByAssetID(ctx, l.db, assetID)
}

func (l *Logic) GetAsset(ctx context.Context, assetID string) (*model.Asset, error) {
	asset, err := l.assetDAO.GetByAssetID(ctx, l.db, assetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	return asset, err
}

func (l *Logic) ListAssets(ctx context.Context) ([]model.Asset, error) {
	return l.assetDAO.List(ctx, l.db)
}

func (l *Logic) ListAssetsByCategory(ctx context.Context, category string) ([]model.Asset, error) {
	return l.assetDAO.ListByCategory(ctx, l.db, category)
}
