package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/biz/model/api"
)

func addedPhotos(refs ...FileRef) map[model.AttachmentSlot][]FileRef {
	return map[model.AttachmentSlot][]FileRef{model.SlotPhoto: refs}
}

func photoRef(name string) FileRef {
	return FileRef{Name: name, Size: int64(len(name)), LastModified: 1, MimeType: "image/jpeg", Data: []byte(name)}
}

func TestCreateAssetWithFiles(t *testing.T) {
	svc, objects, _ := newTestService(t)
	ctx := context.Background()

	view, report, err := svc.SaveAsset(ctx, &api.AssetPayload{
		Name:     "Workstation",
		Category: "electronics",
	}, addedPhotos(photoRef("front.jpg")))
	if err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}
	if report.Partial() {
		t.Fatalf("unexpected failures: %+v", report)
	}
	if view.AssetID == "" {
		t.Fatalf("asset id should be generated")
	}
	if len(view.Photos) != 1 {
		t.Fatalf("photos = %+v", view.Photos)
	}
	if view.PhotoPath != view.Photos[0].Path {
		t.Fatalf("photo_path mirror = %q, want %q", view.PhotoPath, view.Photos[0].Path)
	}
	if !strings.HasPrefix(view.Photos[0].URL, "/api/v1/files/") {
		t.Fatalf("attachment URL = %q", view.Photos[0].URL)
	}
	if objects.count() != 1 {
		t.Fatalf("expected 1 stored object, got %d", objects.count())
	}

	fetched, err := svc.GetAsset(ctx, view.AssetID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if len(fetched.Photos) != 1 || fetched.PhotoPath != view.PhotoPath {
		t.Fatalf("persisted asset = %+v", fetched)
	}
}

func TestCreateAssetValidation(t *testing.T) {
	svc, objects, _ := newTestService(t)

	_, _, err := svc.SaveAsset(context.Background(), &api.AssetPayload{Name: "  "}, nil)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// validation fails before any upload happens
	_, _, err = svc.SaveAsset(context.Background(), &api.AssetPayload{
		Name:         "x",
		PurchaseDate: "not-a-date",
	}, addedPhotos(photoRef("p.jpg")))
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if objects.count() != 0 {
		t.Fatalf("no object may be uploaded for a rejected save, got %d", objects.count())
	}
}

func TestUpdateAssetReplacesAttachment(t *testing.T) {
	svc, objects, _ := newTestService(t)
	ctx := context.Background()

	created, _, err := svc.SaveAsset(ctx, &api.AssetPayload{Name: "Camera"},
		addedPhotos(photoRef("old.jpg")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldPath := created.Photos[0].Path

	updated, report, err := svc.SaveAsset(ctx, &api.AssetPayload{
		AssetID:       created.AssetID,
		Name:          "Camera",
		RemovedPhotos: []string{oldPath},
	}, addedPhotos(photoRef("new.jpg")))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if report.Partial() {
		t.Fatalf("unexpected failures: %+v", report)
	}
	if len(updated.Photos) != 1 || updated.Photos[0].OriginalName != "new.jpg" {
		t.Fatalf("photos after update = %+v", updated.Photos)
	}
	if updated.PhotoPath != updated.Photos[0].Path {
		t.Fatalf("mirror not refreshed: %q", updated.PhotoPath)
	}
	if objects.has(oldPath) {
		t.Fatalf("removed attachment object should be deleted")
	}
	if !objects.has(updated.Photos[0].Path) {
		t.Fatalf("new attachment object missing")
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("created_at changed on update: %d -> %d", created.CreatedAt, updated.CreatedAt)
	}
}

func TestUpdateAssetMissing(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, _, err := svc.SaveAsset(context.Background(), &api.AssetPayload{
		AssetID: "no-such-asset",
		Name:    "Ghost",
	}, nil)
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestDeleteAssetRemovesOnlyFirstLevel(t *testing.T) {
	svc, objects, _ := newTestService(t)
	ctx := context.Background()

	asset, _, err := svc.SaveAsset(ctx, &api.AssetPayload{Name: "NAS"},
		addedPhotos(photoRef("nas.jpg")))
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}
	top, _, err := svc.SaveComponent(ctx, &api.ComponentPayload{
		ParentID: asset.AssetID, Name: "drive bay",
	}, addedPhotos(photoRef("bay.jpg")))
	if err != nil {
		t.Fatalf("create top-level component: %v", err)
	}
	nested, _, err := svc.SaveComponent(ctx, &api.ComponentPayload{
		ParentID: asset.AssetID, ParentSubID: top.ComponentID, Name: "disk",
	}, addedPhotos(photoRef("disk.jpg")))
	if err != nil {
		t.Fatalf("create nested component: %v", err)
	}

	report, err := svc.DeleteAsset(ctx, asset.AssetID)
	if err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if report.Partial() {
		t.Fatalf("unexpected failures: %+v", report)
	}

	if _, err := svc.GetAsset(ctx, asset.AssetID); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("asset should be gone, got %v", err)
	}
	if _, err := svc.GetComponent(ctx, top.ComponentID); !errors.Is(err, ErrComponentNotFound) {
		t.Fatalf("first-level component should be gone, got %v", err)
	}
	// the nested component survives an asset delete; only the component
	// cascade walks the full subtree
	survivor, err := svc.GetComponent(ctx, nested.ComponentID)
	if err != nil {
		t.Fatalf("nested component should survive, got %v", err)
	}
	if survivor.Name != "disk" {
		t.Fatalf("unexpected survivor: %+v", survivor)
	}
	if objects.has(asset.Photos[0].Path) || objects.has(top.Photos[0].Path) {
		t.Fatalf("asset and first-level files should be deleted")
	}
	if !objects.has(nested.Photos[0].Path) {
		t.Fatalf("nested component file must be retained")
	}
}

func TestDeleteAssetMissingNoOp(t *testing.T) {
	svc, _, _ := newTestService(t)
	report, err := svc.DeleteAsset(context.Background(), "never-existed")
	if err != nil {
		t.Fatalf("deleting a missing asset must be a no-op, got %v", err)
	}
	if report == nil || report.Partial() {
		t.Fatalf("expected an empty report, got %+v", report)
	}
}

func TestListAssetsByCategory(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, p := range []*api.AssetPayload{
		{Name: "TV", Category: "electronics"},
		{Name: "Router", Category: "electronics"},
		{Name: "Desk", Category: "furniture"},
	} {
		if _, _, err := svc.SaveAsset(ctx, p, nil); err != nil {
			t.Fatalf("create %s: %v", p.Name, err)
		}
	}

	all, err := svc.ListAssets(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("ListAssets = %d assets, err %v", len(all), err)
	}
	electronics, err := svc.ListAssets(ctx, "electronics")
	if err != nil || len(electronics) != 2 {
		t.Fatalf("ListAssets(electronics) = %d assets, err %v", len(electronics), err)
	}
}
