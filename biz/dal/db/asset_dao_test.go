package db

import (
	"context"
	"testing"
	"time"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"gorm.io/gorm"
)

func TestAssetDAO_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewAssetDAO()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		asset := &model.Asset{
			Name:     "Workstation",
			Category: "electronics",
			Brand:    "Lenovo",
		}

		err := dao.Create(ctx, db, asset)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if asset.ID == 0 {
			t.Error("Expected ID to be set after creation")
		}
		if asset.AssetID == "" {
			t.Error("Expected asset_id to be generated")
		}

		found, err := dao.GetByAssetID(ctx, db, asset.AssetID)
		if err != nil {
			t.Fatalf("GetByAssetID failed: %v", err)
		}
		if found.Name != "Workstation" {
			t.Errorf("Expected name 'Workstation', got '%s'", found.Name)
		}
	})

	t.Run("NilEntity", func(t *testing.T) {
		if err := dao.Create(ctx, db, nil); err != nil {
			t.Errorf("Create(nil) should be a no-op, got %v", err)
		}
	})

	t.Run("KeepsProvidedID", func(t *testing.T) {
		asset := &model.Asset{AssetID: "fixed-id", Name: "Camera"}
		if err := dao.Create(ctx, db, asset); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if asset.AssetID != "fixed-id" {
			t.Errorf("Expected asset_id to stay 'fixed-id', got %s", asset.AssetID)
		}
	})
}

func TestAssetDAO_Update(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewAssetDAO()
	ctx := context.Background()

	t.Run("PreservesCreatedAt", func(t *testing.T) {
		asset := CreateTestAsset(t, db, "Monitor")
		created := asset.CreatedAt

		time.Sleep(10 * time.Millisecond)

		updated := &model.Asset{
			AssetID:  asset.AssetID,
			Name:     "Monitor 27",
			Category: "electronics",
		}
		if err := dao.Update(ctx, db, updated); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		found, err := dao.GetByAssetID(ctx, db, asset.AssetID)
		if err != nil {
			t.Fatalf("GetByAssetID failed: %v", err)
		}
		if found.Name != "Monitor 27" {
			t.Errorf("Expected updated name, got '%s'", found.Name)
		}
		if !found.CreatedAt.Equal(created) {
			t.Errorf("Expected created_at preserved, got %v vs %v", found.CreatedAt, created)
		}
		if !found.UpdatedAt.After(created) {
			t.Errorf("Expected updated_at refreshed, got %v", found.UpdatedAt)
		}
	})

	t.Run("ClearsDroppedFields", func(t *testing.T) {
		asset := CreateTestAsset(t, db, "Printer")
		asset.Remark = "noisy"
		if err := dao.Update(ctx, db, asset); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		cleared := &model.Asset{AssetID: asset.AssetID, Name: "Printer"}
		if err := dao.Update(ctx, db, cleared); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		found, err := dao.GetByAssetID(ctx, db, asset.AssetID)
		if err != nil {
			t.Fatalf("GetByAssetID failed: %v", err)
		}
		if found.Remark != "" {
			t.Errorf("Expected remark cleared, got '%s'", found.Remark)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := dao.Update(ctx, db, &model.Asset{AssetID: "missing", Name: "x"})
		if err != gorm.ErrRecordNotFound {
			t.Errorf("Expected ErrRecordNotFound, got %v", err)
		}
	})
}

func TestAssetDAO_AttachmentColumns(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewAssetDAO()
	ctx := context.Background()

	asset := &model.Asset{Name: "Fridge"}
	asset.SetSlot(model.SlotPhoto, []model.Attachment{
		{Path: "a/photo/1/front.jpg", OriginalName: "front.jpg", Size: 1024, MimeType: "image/jpeg"},
		{Path: "a/photo/2/back.jpg", OriginalName: "back.jpg", Size: 2048, MimeType: "image/jpeg"},
	})
	if err := dao.Create(ctx, db, asset); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := dao.GetByAssetID(ctx, db, asset.AssetID)
	if err != nil {
		t.Fatalf("GetByAssetID failed: %v", err)
	}
	if len(found.Photos) != 2 {
		t.Fatalf("Expected 2 photos, got %d", len(found.Photos))
	}
	if found.Photos[0].OriginalName != "front.jpg" {
		t.Errorf("Expected ordered list, got %s first", found.Photos[0].OriginalName)
	}
	if found.PhotoPath != "a/photo/1/front.jpg" {
		t.Errorf("Expected legacy photo_path mirror, got %s", found.PhotoPath)
	}
}

func TestAssetDAO_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewAssetDAO()
	ctx := context.Background()

	t.Run("RemovesRow", func(t *testing.T) {
		asset := CreateTestAsset(t, db, "Router")
		if err := dao.DeleteByAssetID(ctx, db, asset.AssetID); err != nil {
			t.Fatalf("DeleteByAssetID failed: %v", err)
		}
		if _, err := dao.GetByAssetID(ctx, db, asset.AssetID); err != gorm.ErrRecordNotFound {
			t.Errorf("Expected ErrRecordNotFound after delete, got %v", err)
		}
	})

	t.Run("UnknownIDIsNoop", func(t *testing.T) {
		if err := dao.DeleteByAssetID(ctx, db, "never-existed"); err != nil {
			t.Errorf("Expected silent no-op, got %v", err)
		}
	})
}
