package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/biz/model/api"
)

// --------------------- Component operations ---------------------

func (s *Service) GetComponent(ctx context.Context, componentID string) (*api.ComponentView, error) {
	component, err := s.logic.GetComponent(ctx, componentID)
	if err != nil {
		return nil, err
	}
	return componentModelToView(component), nil
}

// ListAssetComponents returns every component of the asset, flat.
func (s *Service) ListAssetComponents(ctx context.Context, assetID string) ([]*api.ComponentView, error) {
	components, err := s.logic.ListComponentsByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return componentSliceToView(components), nil
}

// ListTopLevelComponents returns the components hanging directly off
// the asset.
func (s *Service) ListTopLevelComponents(ctx context.Context, assetID string) ([]*api.ComponentView, error) {
	components, err := s.logic.ListTopLevelComponents(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return componentSliceToView(components), nil
}

// ListComponentChildren returns the components nested directly under
// the given component.
func (s *Service) ListComponentChildren(ctx context.Context, componentID string) ([]*api.ComponentView, error) {
	components, err := s.logic.ListComponentChildren(ctx, componentID)
	if err != nil {
		return nil, err
	}
	return componentSliceToView(components), nil
}

// CreateComponent validates the payload, checks that the parents
// resolve, reconciles staged attachments and persists the component.
func (s *Service) CreateComponent(ctx context.Context, payload *api.ComponentPayload, stagers map[model.AttachmentSlot]*AttachmentStager) (*api.ComponentView, *SaveReport, error) {
	if payload == nil {
		return nil, nil, &ValidationError{Field: "payload", Reason: "required"}
	}
	component, err := payloadToComponent(payload)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validateComponentParents(ctx, component); err != nil {
		return nil, nil, err
	}
	if component.ComponentID == "" {
		component.ComponentID = uuid.NewString()
	}
	if stagers == nil {
		stagers = NewSessionStagers(nil)
	}

	report := s.engine.ReconcileEntity(ctx, component, stagers)

	if err := s.logic.CreateComponent(ctx, component); err != nil {
		s.rollbackUploads(ctx, report)
		return nil, nil, err
	}
	return componentModelToView(component), report, nil
}

// UpdateComponent reconciles staged attachment changes on top of the
// persisted lists and saves the component.
func (s *Service) UpdateComponent(ctx context.Context, payload *api.ComponentPayload, stagers map[model.AttachmentSlot]*AttachmentStager) (*api.ComponentView, *SaveReport, error) {
	if payload.GetComponentID() == "" {
		return nil, nil, &ValidationError{Field: "component_id", Reason: "required"}
	}
	component, err := payloadToComponent(payload)
	if err != nil {
		return nil, nil, err
	}
	if err := s.validateComponentParents(ctx, component); err != nil {
		return nil, nil, err
	}

	existing, err := s.logic.GetComponent(ctx, component.ComponentID)
	if err != nil {
		return nil, nil, err
	}
	for _, slot := range model.Slots {
		component.SetSlot(slot, existing.Slot(slot))
	}

	if stagers == nil {
		stagers = StagersFromIntent(existing, nil,
			removedPaths(payload.RemovedPhotos, payload.RemovedReceipts, payload.RemovedManuals))
	}
	report := s.engine.ReconcileEntity(ctx, component, stagers)

	if err := s.logic.UpdateComponent(ctx, component); err != nil {
		s.rollbackUploads(ctx, report)
		return nil, nil, err
	}
	return componentModelToView(component), report, nil
}

// SaveComponent persists a create-or-update request that carries freshly
// uploaded files. An empty component_id creates, otherwise updates.
func (s *Service) SaveComponent(ctx context.Context, payload *api.ComponentPayload, added map[model.AttachmentSlot][]FileRef) (*api.ComponentView, *SaveReport, error) {
	if payload.GetComponentID() == "" {
		return s.CreateComponent(ctx, payload, StagersFromIntent(nil, added, nil))
	}
	existing, err := s.logic.GetComponent(ctx, payload.GetComponentID())
	if err != nil {
		return nil, nil, err
	}
	stagers := StagersFromIntent(existing, added,
		removedPaths(payload.RemovedPhotos, payload.RemovedReceipts, payload.RemovedManuals))
	return s.UpdateComponent(ctx, payload, stagers)
}

// DeleteComponent removes the component, everything nested beneath it,
// and the stored files of the whole subtree. Deleting an id that no
// longer exists is a successful no-op.
func (s *Service) DeleteComponent(ctx context.Context, componentID string) (*SaveReport, error) {
	report := &SaveReport{}

	removed, err := s.logic.DeleteComponentCascade(ctx, componentID)
	if err != nil {
		return nil, err
	}
	for i := range removed {
		s.deleteStoredFiles(ctx, removed[i].AllAttachments(), report)
	}
	return report, nil
}

// validateComponentParents rejects a component whose asset is missing,
// whose sub-parent is missing or belongs to a different asset, or which
// references itself. Deeper cycles through descendants are not detected
// here; the descendant traversal tolerates them with its visited set.
func (s *Service) validateComponentParents(ctx context.Context, component *model.Component) error {
	if _, err := s.logic.GetAsset(ctx, component.ParentID); err != nil {
		return &ValidationError{Field: "parent_id", Reason: "asset does not exist"}
	}
	if component.ParentSubID == nil {
		return nil
	}
	if *component.ParentSubID == component.ComponentID && component.ComponentID != "" {
		return &ValidationError{Field: "parent_sub_id", Reason: "component cannot be its own parent"}
	}
	parent, err := s.logic.GetComponent(ctx, *component.ParentSubID)
	if err != nil {
		return &ValidationError{Field: "parent_sub_id", Reason: "parent component does not exist"}
	}
	if parent.ParentID != component.ParentID {
		return &ValidationError{Field: "parent_sub_id", Reason: "parent component belongs to a different asset"}
	}
	return nil
}
