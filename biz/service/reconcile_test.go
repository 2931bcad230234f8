package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
)

// fakeAttachmentStore records calls and can be told to fail for given
// file names or paths.
type fakeAttachmentStore struct {
	mu          sync.Mutex
	uploads     []string
	deletes     []string
	failUploads map[string]bool
	failDeletes map[string]bool
}

func newFakeStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{
		failUploads: make(map[string]bool),
		failDeletes: make(map[string]bool),
	}
}

func (f *fakeAttachmentStore) UploadAttachment(ctx context.Context, file FileRef, slot model.AttachmentSlot, ownerID string) (model.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUploads[file.Name] {
		return model.Attachment{}, errors.New("upload failed")
	}
	f.uploads = append(f.uploads, file.Name)
	return model.Attachment{
		Path:         fmt.Sprintf("%s/%s/%s", ownerID, slot, file.Name),
		OriginalName: file.Name,
		Size:         file.Size,
		MimeType:     file.MimeType,
		LastModified: file.LastModified,
	}, nil
}

func (f *fakeAttachmentStore) DeleteAttachmentFile(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDeletes[path] {
		return errors.New("delete failed")
	}
	f.deletes = append(f.deletes, path)
	return nil
}

func TestReconcileSlotRemoveExistingAddNew(t *testing.T) {
	// session opened on [P1], the user removed P1 and added N1
	store := newFakeStore()
	engine := NewReconciliationEngine(store)

	persisted := []model.Attachment{{Path: "a1/photo/P1", OriginalName: "P1"}}
	stager := NewAttachmentStager(model.SlotPhoto)
	stager.SeedFromSlot(persisted)
	stager.RemoveByPath("a1/photo/P1")
	stager.AddFile(FileRef{Name: "N1", Size: 3, LastModified: 9, Data: []byte("n1")})

	final, report := engine.ReconcileSlot(context.Background(), "a1", stager, persisted)

	if len(final) != 1 || final[0].OriginalName != "N1" {
		t.Fatalf("final list = %+v, want just the uploaded N1", final)
	}
	if len(store.uploads) != 1 || store.uploads[0] != "N1" {
		t.Fatalf("uploads = %v, want [N1]", store.uploads)
	}
	if len(store.deletes) != 1 || store.deletes[0] != "a1/photo/P1" {
		t.Fatalf("deletes = %v, want [a1/photo/P1]", store.deletes)
	}
	if report.Partial() {
		t.Fatalf("unexpected failures: %+v", report)
	}
}

func TestReconcileSlotKeepsSurvivorsFirst(t *testing.T) {
	store := newFakeStore()
	engine := NewReconciliationEngine(store)

	persisted := []model.Attachment{
		{Path: "a1/photo/P1", OriginalName: "P1"},
		{Path: "a1/photo/P2", OriginalName: "P2"},
	}
	stager := NewAttachmentStager(model.SlotPhoto)
	stager.SeedFromSlot(persisted)
	stager.AddFile(FileRef{Name: "N1", Size: 1, LastModified: 1, Data: []byte("a")})
	stager.AddFile(FileRef{Name: "N2", Size: 2, LastModified: 2, Data: []byte("b")})

	final, _ := engine.ReconcileSlot(context.Background(), "a1", stager, persisted)

	want := []string{"P1", "P2", "N1", "N2"}
	if len(final) != len(want) {
		t.Fatalf("final = %+v, want %v", final, want)
	}
	for i, name := range want {
		if final[i].OriginalName != name {
			t.Fatalf("final[%d] = %s, want %s", i, final[i].OriginalName, name)
		}
	}
}

func TestReconcileSlotPartialUploadFailure(t *testing.T) {
	store := newFakeStore()
	store.failUploads["bad"] = true
	engine := NewReconciliationEngine(store)

	stager := NewAttachmentStager(model.SlotPhoto)
	stager.AddFile(FileRef{Name: "good", Size: 1, LastModified: 1, Data: []byte("g")})
	stager.AddFile(FileRef{Name: "bad", Size: 2, LastModified: 2, Data: []byte("b")})

	final, report := engine.ReconcileSlot(context.Background(), "a1", stager, nil)

	if len(final) != 1 || final[0].OriginalName != "good" {
		t.Fatalf("final = %+v, want just good", final)
	}
	if len(report.FailedUploads) != 1 || report.FailedUploads[0].Name != "bad" {
		t.Fatalf("failed uploads = %+v", report.FailedUploads)
	}
	if !report.Partial() {
		t.Fatalf("report should be partial")
	}
}

func TestReconcileSlotDeleteFailureStillDropsPath(t *testing.T) {
	store := newFakeStore()
	store.failDeletes["a1/photo/P1"] = true
	engine := NewReconciliationEngine(store)

	persisted := []model.Attachment{{Path: "a1/photo/P1", OriginalName: "P1"}}
	stager := NewAttachmentStager(model.SlotPhoto)
	stager.SeedFromSlot(persisted)
	stager.RemoveByPath("a1/photo/P1")

	final, report := engine.ReconcileSlot(context.Background(), "a1", stager, persisted)

	if len(final) != 0 {
		t.Fatalf("path must be dropped from the list even when the physical delete fails, got %+v", final)
	}
	if len(report.FailedDeletes) != 1 || report.FailedDeletes[0].Path != "a1/photo/P1" {
		t.Fatalf("failed deletes = %+v", report.FailedDeletes)
	}
}

func TestReconcileEntityUpdatesMirrors(t *testing.T) {
	store := newFakeStore()
	engine := NewReconciliationEngine(store)

	asset := &model.Asset{AssetID: "a1"}
	asset.SetSlot(model.SlotPhoto, []model.Attachment{{Path: "a1/photo/P1", OriginalName: "P1"}})

	stagers := NewSessionStagers(asset)
	stagers[model.SlotPhoto].RemoveByPath("a1/photo/P1")
	stagers[model.SlotPhoto].AddFile(FileRef{Name: "N1", Size: 1, LastModified: 1, Data: []byte("n")})
	stagers[model.SlotReceipt].AddFile(FileRef{Name: "R1", Size: 1, LastModified: 1, Data: []byte("r")})

	report := engine.ReconcileEntity(context.Background(), asset, stagers)

	if report.Partial() {
		t.Fatalf("unexpected failures: %+v", report)
	}
	if len(asset.Photos) != 1 || asset.Photos[0].OriginalName != "N1" {
		t.Fatalf("photos = %+v", asset.Photos)
	}
	if asset.PhotoPath != asset.Photos[0].Path {
		t.Fatalf("photo_path mirror = %q, want %q", asset.PhotoPath, asset.Photos[0].Path)
	}
	if asset.ReceiptPath != asset.Receipts[0].Path {
		t.Fatalf("receipt_path mirror = %q, want %q", asset.ReceiptPath, asset.Receipts[0].Path)
	}
	if asset.ManualPath != "" {
		t.Fatalf("manual_path should stay empty, got %q", asset.ManualPath)
	}
}
