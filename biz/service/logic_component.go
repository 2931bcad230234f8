package service

import (
	"context"
	"errors"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"gorm.io/gorm"
)

// --------------------- Component Operations ---------------------

func (l *Logic) CreateComponent(ctx context.Context, component *model.Component) error {
	return l.componentDAO.Create(ctx, l.db, component)
}

func (l *Logic) UpdateComponent(ctx context.Context, component *model.Component) error {
	if err := l.componentDAO.Update(ctx, l.db, component); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComponentNotFound
		}
		return err
	}
	return nil
}

// DeleteComponentCascade removes the component and its full descendant
// set, resolved over an in-memory snapshot of the owning asset's
// components. It returns every component that was removed, the root
// first, so the caller can clean up their stored files.
func (l *Logic) DeleteComponentCascade(ctx context.Context, componentID string) ([]model.Component, error) {
	root, err := l.componentDAO.GetByComponentID(ctx, l.db, componentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// deleting a component that is already gone is a no-op
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	siblings, err := l.componentDAO.ListByAsset(ctx, l.db, root.ParentID)
	if err != nil {
		return nil, err
	}

	resolver := NewDescendantResolver(siblings)
	descendants := resolver.Descendants(componentID)

	removed := make([]model.Component, 0, len(descendants)+1)
	removed = append(removed, *root)
	ids := make([]string, 0, len(descendants)+1)
	ids = append(ids, componentID)
	for _, c := range descendants {
		removed = append(removed, *c)
		ids = append(ids, c.ComponentID)
	}

	if err := l.componentDAO.DeleteByComponentIDs(ctx, l.db, ids); err != nil {
		return nil, err
	}
	return removed, nil
}

func (l *Logic) GetComponent(ctx context.Context, componentID string) (*model.Component, error) {
	component, err := l.componentDAO.GetByComponentID(ctx, l.db, componentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComponentNotFound
	}
	return component, err
}

func (l *Logic) ListComponentsByAsset(ctx context.Context, assetID string) ([]model.Component, error) {
	return l.componentDAO.ListByAsset(ctx, l.db, assetID)
}

func (l *Logic) ListTopLevelComponents(ctx context.Context, assetID string) ([]model.Component, error) {
	return l.componentDAO.ListTopLevel(ctx, l.db, assetID)
}

func (l *Logic) ListComponentChildren(ctx context.Context, componentID string) ([]model.Component, error) {
	return l.componentDAO.ListChildren(ctx, l.db, componentID)
}

func (l *Logic) ListAllComponents(ctx context.Context) ([]model.Component, error) {
	return l.componentDAO.ListAll(ctx, l.db)
}
