package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/biz/model/api"
)

// --------------------- Asset operations ---------------------

func (s *Service) ListAssets(ctx context.Context, category string) ([]*api.AssetView, error) {
	var (
		assets []model.Asset
		err    error
	)
	if category != "" {
		assets, err = s.logic.ListAssetsByCategory(ctx, category)
	} else {
		assets, err = s.logic.ListAssets(ctx)
	}
	if err != nil {
		return nil, err
	}
	return assetSliceToView(assets), nil
}

func (s *Service) GetAsset(ctx context.Context, assetID string) (*api.AssetView, error) {
	asset, err := s.logic.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return assetModelToView(asset), nil
}

// CreateAsset validates the payload, reconciles the staged attachments
// and persists the new asset. Validation fails before any upload is
// issued; a failed database insert rolls the uploaded objects back.
func (s *Service) CreateAsset(ctx context.Context, payload *api.AssetPayload, stagers map[model.AttachmentSlot]*AttachmentStager) (*api.AssetView, *SaveReport, error) {
	if payload == nil {
		return nil, nil, &ValidationError{Field: "payload", Reason: "required"}
	}
	asset, err := payloadToAsset(payload)
	if err != nil {
		return nil, nil, err
	}
	if asset.AssetID == "" {
		asset.AssetID = uuid.NewString()
	}
	if stagers == nil {
		stagers = NewSessionStagers(nil)
	}

	report := s.engine.ReconcileEntity(ctx, asset, stagers)

	if err := s.logic.CreateAsset(ctx, asset); err != nil {
		s.rollbackUploads(ctx, report)
		return nil, nil, err
	}
	return assetModelToView(asset), report, nil
}

// UpdateAsset reconciles staged attachment changes on top of the
// persisted lists and saves the entity. created_at of the stored row is
// preserved by the DAO; updated_at is refreshed.
func (s *Service) UpdateAsset(ctx context.Context, payload *api.AssetPayload, stagers map[model.AttachmentSlot]*AttachmentStager) (*api.AssetView, *SaveReport, error) {
	if payload.GetAssetID() == "" {
		return nil, nil, &ValidationError{Field: "asset_id", Reason: "required"}
	}
	asset, err := payloadToAsset(payload)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.logic.GetAsset(ctx, asset.AssetID)
	if err != nil {
		return nil, nil, err
	}
	for _, slot := range model.Slots {
		asset.SetSlot(slot, existing.Slot(slot))
	}

	if stagers == nil {
		stagers = StagersFromIntent(existing, nil,
			removedPaths(payload.RemovedPhotos, payload.RemovedReceipts, payload.RemovedManuals))
	}
	report := s.engine.ReconcileEntity(ctx, asset, stagers)

	if err := s.logic.UpdateAsset(ctx, asset); err != nil {
		s.rollbackUploads(ctx, report)
		return nil, nil, err
	}
	return assetModelToView(asset), report, nil
}

// DeleteAsset removes the asset, its first-level components and their
// stored files. Nested components below the first level are not
// cascaded here; only component deletion walks the full subtree.
// Deleting an id that no longer exists is a successful no-op.
func (s *Service) DeleteAsset(ctx context.Context, assetID string) (*SaveReport, error) {
	report := &SaveReport{}

	asset, err := s.logic.GetAsset(ctx, assetID)
	if errors.Is(err, ErrAssetNotFound) {
		return report, nil
	}
	if err != nil {
		return nil, err
	}

	topLevel, err := s.logic.ListTopLevelComponents(ctx, assetID)
	if err != nil {
		return nil, err
	}

	s.deleteStoredFiles(ctx, asset.AllAttachments(), report)
	for i := range topLevel {
		s.deleteStoredFiles(ctx, topLevel[i].AllAttachments(), report)
	}

	if err := s.logic.DeleteAsset(ctx, assetID); err != nil {
		return report, err
	}
	return report, nil
}

// deleteStoredFiles issues one idempotent delete per attachment and
// records failures without stopping; an orphaned object is acceptable,
// a blocked delete flow is not.
func (s *Service) deleteStoredFiles(ctx context.Context, attachments []model.Attachment, report *SaveReport) {
	store := s.engine.store
	for _, att := range attachments {
		if att.Path == "" {
			continue
		}
		if err := store.DeleteAttachmentFile(ctx, att.Path); err != nil {
			report.FailedDeletes = append(report.FailedDeletes, DeleteFailure{
				Path:   att.Path,
				Reason: err.Error(),
			})
		}
	}
}

// rollbackUploads best-effort deletes the objects a failed save already
// uploaded, mirroring the upload rollback on database errors.
func (s *Service) rollbackUploads(ctx context.Context, report *SaveReport) {
	if report == nil {
		return
	}
	for _, att := range report.Uploaded {
		_ = s.engine.store.DeleteAttachmentFile(ctx, att.Path)
	}
}

// SaveAsset persists a create-or-update request that carries freshly
// uploaded files. An empty asset_id creates, otherwise updates.
func (s *Service) SaveAsset(ctx context.Context, payload *api.AssetPayload, added map[model.AttachmentSlot][]FileRef) (*api.AssetView, *SaveReport, error) {
	if payload.GetAssetID() == "" {
		return s.CreateAsset(ctx, payload, StagersFromIntent(nil, added, nil))
	}
	existing, err := s.logic.GetAsset(ctx, payload.GetAssetID())
	if err != nil {
		return nil, nil, err
	}
	stagers := StagersFromIntent(existing, added,
		removedPaths(payload.RemovedPhotos, payload.RemovedReceipts, payload.RemovedManuals))
	return s.UpdateAsset(ctx, payload, stagers)
}

// StagersFromIntent builds per-slot stagers from an edit request:
// Existing markers seeded from the persisted entity, newly added files,
// and removal intents referencing stored paths.
func StagersFromIntent(existing model.AttachmentCarrier, added map[model.AttachmentSlot][]FileRef, removed map[model.AttachmentSlot][]string) map[model.AttachmentSlot]*AttachmentStager {
	stagers := NewSessionStagers(existing)
	for slot, files := range added {
		stager := stagers[slot]
		if stager == nil {
			continue
		}
		for _, file := range files {
			stager.AddFile(file)
		}
	}
	for slot, paths := range removed {
		stager := stagers[slot]
		if stager == nil {
			continue
		}
		for _, path := range paths {
			stager.RemoveByPath(path)
		}
	}
	return stagers
}
