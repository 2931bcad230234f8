package model

import (
	"time"

	"gorm.io/gorm"
)

// Asset is a top-level tracked item. Attachment lists are stored as JSON
// columns; the singular *_path columns mirror the first list entry for
// consumers that predate multi-file slots.
type Asset struct {
	ID        uint           `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	AssetID       string     `gorm:"column:asset_id;uniqueIndex:idx_asset_id" json:"asset_id,omitempty"`
	Name          string     `gorm:"column:name" json:"name,omitempty"`
	Category      string     `gorm:"column:category;index:idx_asset_category" json:"category,omitempty"`
	Brand         string     `gorm:"column:brand" json:"brand,omitempty"`
	ModelNumber   string     `gorm:"column:model_number" json:"model_number,omitempty"`
	SerialNumber  string     `gorm:"column:serial_number" json:"serial_number,omitempty"`
	Location      string     `gorm:"column:location" json:"location,omitempty"`
	PurchaseDate  *time.Time `gorm:"column:purchase_date" json:"purchase_date,omitempty"`
	PurchasePrice float64    `gorm:"column:purchase_price" json:"purchase_price,omitempty"`
	Remark        string     `gorm:"column:remark;type:varchar(512)" json:"remark,omitempty"`

	Warranties []Warranty `gorm:"column:warranties;serializer:json;type:text" json:"warranties,omitempty"`

	Photos   []Attachment `gorm:"column:photos;serializer:json;type:text" json:"photos,omitempty"`
	Receipts []Attachment `gorm:"column:receipts;serializer:json;type:text" json:"receipts,omitempty"`
	Manuals  []Attachment `gorm:"column:manuals;serializer:json;type:text" json:"manuals,omitempty"`

	PhotoPath   string `gorm:"column:photo_path;type:text" json:"photo_path,omitempty"`
	ReceiptPath string `gorm:"column:receipt_path;type:text" json:"receipt_path,omitempty"`
	ManualPath  string `gorm:"column:manual_path;type:text" json:"manual_path,omitempty"`
}

// TableName overrides gorm to use asset table.
func (Asset) TableName() string {
	return "asset"
}

// OwnerID returns the business key used for storage paths.
func (a *Asset) OwnerID() string {
	return a.AssetID
}

// Slot returns the attachment list for the given slot.
func (a *Asset) Slot(slot AttachmentSlot) []Attachment {
	switch slot {
	case SlotPhoto:
		return a.Photos
	case SlotReceipt:
		return a.Receipts
	case SlotManual:
		return a.Manuals
	}
	return nil
}

// SetSlot replaces the attachment list for the given slot and mirrors
// its first entry into the legacy singular path column.
func (a *Asset) SetSlot(slot AttachmentSlot, list []Attachment) {
	switch slot {
	case SlotPhoto:
		a.Photos = list
		a.PhotoPath = PrimaryPath(list)
	case SlotReceipt:
		a.Receipts = list
		a.ReceiptPath = PrimaryPath(list)
	case SlotManual:
		a.Manuals = list
		a.ManualPath = PrimaryPath(list)
	}
}

// AllAttachments returns every attachment across the three slots.
func (a *Asset) AllAttachments() []Attachment {
	out := make([]Attachment, 0, len(a.Photos)+len(a.Receipts)+len(a.Manuals))
	out = append(out, a.Photos...)
	out = append(out, a.Receipts...)
	out = append(out, a.Manuals...)
	return out
}
