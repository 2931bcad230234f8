package main

import (
	"context"
	"flag"
	"log"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/pkg/config"
	"github.com/yi-nology/asset_harbor/pkg/database"
	"gorm.io/gorm"
)

// Backfills the singular photo_path/receipt_path/manual_path columns
// from the JSON attachment lists for rows written before the mirrors
// were maintained on every save.
//
// Usage: go run script/backfill_legacy_paths.go -config=./config.yaml

var configPath = flag.String("config", "config.yaml", "path to config.yaml")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx := context.Background()
	if err := backfillAssets(ctx, db); err != nil {
		log.Fatalf("backfill assets: %v", err)
	}
	if err := backfillComponents(ctx, db); err != nil {
		log.Fatalf("backfill components: %v", err)
	}
	log.Println("backfill complete")
}

func backfillAssets(ctx context.Context, db *gorm.DB) error {
	var assets []model.Asset
	if err := db.WithContext(ctx).Find(&assets).Error; err != nil {
		return err
	}

	updated := 0
	for i := range assets {
		asset := &assets[i]
		if !refreshMirrors(asset) {
			continue
		}
		if err := db.WithContext(ctx).Model(&model.Asset{}).
			Where("id = ?", asset.ID).
			Updates(map[string]any{
				"photo_path":   asset.PhotoPath,
				"receipt_path": asset.ReceiptPath,
				"manual_path":  asset.ManualPath,
			}).Error; err != nil {
			return err
		}
		updated++
	}
	log.Printf("assets: %d of %d rows updated", updated, len(assets))
	return nil
}

func backfillComponents(ctx context.Context, db *gorm.DB) error {
	var components []model.Component
	if err := db.WithContext(ctx).Find(&components).Error; err != nil {
		return err
	}

	updated := 0
	for i := range components {
		component := &components[i]
		if !refreshMirrors(component) {
			continue
		}
		if err := db.WithContext(ctx).Model(&model.Component{}).
			Where("id = ?", component.ID).
			Updates(map[string]any{
				"photo_path":   component.PhotoPath,
				"receipt_path": component.ReceiptPath,
				"manual_path":  component.ManualPath,
			}).Error; err != nil {
			return err
		}
		updated++
	}
	log.Printf("components: %d of %d rows updated", updated, len(components))
	return nil
}

// refreshMirrors re-derives the singular path columns from the lists and
// reports whether anything changed.
func refreshMirrors(carrier model.AttachmentCarrier) bool {
	changed := false
	for _, slot := range model.Slots {
		list := carrier.Slot(slot)
		before := primaryOf(carrier, slot)
		carrier.SetSlot(slot, list)
		if primaryOf(carrier, slot) != before {
			changed = true
		}
	}
	return changed
}

func primaryOf(carrier model.AttachmentCarrier, slot model.AttachmentSlot) string {
	switch c := carrier.(type) {
	case *model.Asset:
		switch slot {
		case model.SlotPhoto:
			return c.PhotoPath
		case model.SlotReceipt:
			return c.ReceiptPath
		case model.SlotManual:
			return c.ManualPath
		}
	case *model.Component:
		switch slot {
		case model.SlotPhoto:
			return c.PhotoPath
		case model.SlotReceipt:
			return c.ReceiptPath
		case model.SlotManual:
			return c.ManualPath
		}
	}
	return ""
}
