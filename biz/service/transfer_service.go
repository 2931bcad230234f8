package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/biz/model/api"
	"github.com/yi-nology/asset_harbor/biz/model/transfer"
)

const bundleFilePrefix = "files/"

// --------------------- Export/Import operations ---------------------

// ExportBundle writes the whole inventory into a zip bundle: a
// manifest.json with the asset/component tree plus every stored
// attachment under files/<path>. Objects missing from storage are
// skipped so a stale reference cannot block the export.
func (s *Service) ExportBundle(ctx context.Context) ([]byte, string, error) {
	store, err := s.BuildTreeStore(ctx)
	if err != nil {
		return nil, "", err
	}

	manifest := &transfer.Manifest{
		Version:    transfer.ManifestVersion,
		ExportedAt: time.Now().Unix(),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, asset := range store.Assets() {
		entry := &transfer.ManifestAsset{Asset: assetModelToView(asset)}
		components, err := s.logic.ListComponentsByAsset(ctx, asset.AssetID)
		if err != nil {
			return nil, "", err
		}
		entry.Components = componentSliceToView(components)
		manifest.Assets = append(manifest.Assets, entry)

		s.writeBundleFiles(ctx, zw, asset.AllAttachments())
		for i := range components {
			s.writeBundleFiles(ctx, zw, components[i].AllAttachments())
		}
	}

	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, "", err
	}
	w, err := zw.Create("manifest.json")
	if err != nil {
		return nil, "", err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, "", err
	}
	if err := zw.Close(); err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("asset_harbor_export_%s.zip", time.Now().Format("20060102_150405"))
	return buf.Bytes(), name, nil
}

func (s *Service) writeBundleFiles(ctx context.Context, zw *zip.Writer, attachments []model.Attachment) {
	for _, att := range attachments {
		if att.Path == "" {
			continue
		}
		reader, err := s.objects.GetObject(ctx, att.Path)
		if err != nil {
			log.Printf("[Export] skip missing object %s: %v", att.Path, err)
			continue
		}
		w, err := zw.Create(bundleFilePrefix + att.Path)
		if err == nil {
			_, err = io.Copy(w, reader)
		}
		_ = reader.Close()
		if err != nil {
			log.Printf("[Export] write object %s: %v", att.Path, err)
		}
	}
}

// ImportBundle restores a bundle produced by ExportBundle. Every entity
// gets a fresh id; attachments present in the bundle are re-uploaded to
// storage, missing ones are dropped and reported in the summary.
func (s *Service) ImportBundle(ctx context.Context, data []byte) (*transfer.ImportSummary, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}

	var manifest *transfer.Manifest
	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open bundle entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read bundle entry %s: %w", f.Name, err)
		}
		switch {
		case f.Name == "manifest.json":
			manifest = &transfer.Manifest{}
			if err := json.Unmarshal(content, manifest); err != nil {
				return nil, fmt.Errorf("decode manifest: %w", err)
			}
		case len(f.Name) > len(bundleFilePrefix) && f.Name[:len(bundleFilePrefix)] == bundleFilePrefix:
			files[f.Name[len(bundleFilePrefix):]] = content
		}
	}
	if manifest == nil {
		return nil, errors.New("bundle has no manifest.json")
	}

	summary := &transfer.ImportSummary{}
	store := s.engine.store

	for _, entry := range manifest.Assets {
		if entry == nil || entry.Asset == nil {
			continue
		}
		asset, err := viewToAsset(entry.Asset)
		if err != nil {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("asset %q: %v", entry.Asset.Name, err))
			continue
		}
		oldAssetID := entry.Asset.AssetID
		asset.AssetID = uuid.NewString()
		s.restoreAttachments(ctx, store, asset, assetSlots(entry.Asset), files, summary)

		if err := s.logic.CreateAsset(ctx, asset); err != nil {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("asset %q: %v", asset.Name, err))
			continue
		}
		summary.Assets++

		idMap := map[string]string{oldAssetID: asset.AssetID}
		s.importComponents(ctx, entry.Components, asset.AssetID, idMap, files, summary)
	}

	return summary, nil
}

// importComponents restores a flat component list, remapping ids while
// keeping the parent/child shape. Parents are inserted before children
// by looping until no progress is made; components whose sub-parent
// never resolves (broken manifest) are skipped.
func (s *Service) importComponents(ctx context.Context, views []*api.ComponentView, assetID string, idMap map[string]string, files map[string][]byte, summary *transfer.ImportSummary) {
	store := s.engine.store
	pending := make([]*api.ComponentView, 0, len(views))
	pending = append(pending, views...)

	for len(pending) > 0 {
		progressed := false
		var next []*api.ComponentView
		for _, view := range pending {
			if view == nil {
				continue
			}
			if view.ParentSubID != "" {
				if _, ok := idMap[view.ParentSubID]; !ok {
					next = append(next, view)
					continue
				}
			}
			component := viewToComponent(view)
			component.ParentID = assetID
			oldID := view.ComponentID
			component.ComponentID = uuid.NewString()
			if view.ParentSubID != "" {
				mapped := idMap[view.ParentSubID]
				component.ParentSubID = &mapped
			}
			s.restoreAttachments(ctx, store, component, componentSlots(view), files, summary)

			if err := s.logic.CreateComponent(ctx, component); err != nil {
				summary.Skipped = append(summary.Skipped, fmt.Sprintf("component %q: %v", component.Name, err))
				progressed = true
				continue
			}
			idMap[oldID] = component.ComponentID
			summary.Components++
			progressed = true
		}
		if !progressed {
			for _, view := range next {
				summary.Skipped = append(summary.Skipped, fmt.Sprintf("component %q: unresolved parent %s", view.Name, view.ParentSubID))
			}
			break
		}
		pending = next
	}
}

// restoreAttachments re-uploads the carrier's bundle files and rewrites
// its slots with the new storage paths.
func (s *Service) restoreAttachments(ctx context.Context, store AttachmentStore, carrier model.AttachmentCarrier, slots map[model.AttachmentSlot][]api.AttachmentView, files map[string][]byte, summary *transfer.ImportSummary) {
	for slot, views := range slots {
		restored := make([]model.Attachment, 0, len(views))
		for _, view := range views {
			content, ok := files[view.Path]
			if !ok {
				summary.Skipped = append(summary.Skipped, fmt.Sprintf("file %s: not in bundle", view.Path))
				continue
			}
			att, err := store.UploadAttachment(ctx, FileRef{
				Name:         view.OriginalName,
				Size:         int64(len(content)),
				LastModified: view.LastModified,
				MimeType:     view.MimeType,
				Data:         content,
			}, slot, carrier.OwnerID())
			if err != nil {
				summary.Skipped = append(summary.Skipped, fmt.Sprintf("file %s: %v", view.Path, err))
				continue
			}
			restored = append(restored, att)
			summary.Files++
		}
		carrier.SetSlot(slot, restored)
	}
}

func viewToAsset(view *api.AssetView) (*model.Asset, error) {
	payload := &api.AssetPayload{
		Name:          view.Name,
		Category:      view.Category,
		Brand:         view.Brand,
		ModelNumber:   view.ModelNumber,
		SerialNumber:  view.SerialNumber,
		Location:      view.Location,
		PurchaseDate:  view.PurchaseDate,
		PurchasePrice: view.PurchasePrice,
		Remark:        view.Remark,
		Warranties:    view.Warranties,
	}
	return payloadToAsset(payload)
}

func viewToComponent(view *api.ComponentView) *model.Component {
	quantity := view.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	return &model.Component{
		Name:     view.Name,
		Quantity: quantity,
		Remark:   view.Remark,
	}
}

func assetSlots(view *api.AssetView) map[model.AttachmentSlot][]api.AttachmentView {
	return map[model.AttachmentSlot][]api.AttachmentView{
		model.SlotPhoto:   view.Photos,
		model.SlotReceipt: view.Receipts,
		model.SlotManual:  view.Manuals,
	}
}

func componentSlots(view *api.ComponentView) map[model.AttachmentSlot][]api.AttachmentView {
	return map[model.AttachmentSlot][]api.AttachmentView{
		model.SlotPhoto:   view.Photos,
		model.SlotReceipt: view.Receipts,
		model.SlotManual:  view.Manuals,
	}
}
