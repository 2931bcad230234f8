package model

import (
	"time"

	"gorm.io/gorm"
)

// Component is a part attached to an asset or nested under another
// component. ParentID always carries the owning asset id; ParentSubID,
// when set, references another component of the same asset.
type Component struct {
	ID        uint           `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ComponentID string  `gorm:"column:component_id;uniqueIndex:idx_component_id" json:"component_id,omitempty"`
	ParentID    string  `gorm:"column:parent_id;index:idx_component_parent" json:"parent_id,omitempty"`
	ParentSubID *string `gorm:"column:parent_sub_id;index:idx_component_parent_sub" json:"parent_sub_id,omitempty"`
	Name        string  `gorm:"column:name" json:"name,omitempty"`
	Quantity    int     `gorm:"column:quantity;default:1" json:"quantity,omitempty"`
	Remark      string  `gorm:"column:remark;type:varchar(512)" json:"remark,omitempty"`

	Photos   []Attachment `gorm:"column:photos;serializer:json;type:text" json:"photos,omitempty"`
	Receipts []Attachment `gorm:"column:receipts;serializer:json;type:text" json:"receipts,omitempty"`
	Manuals  []Attachment `gorm:"column:manuals;serializer:json;type:text" json:"manuals,omitempty"`

	PhotoPath   string `gorm:"column:photo_path;type:text" json:"photo_path,omitempty"`
	ReceiptPath string `gorm:"column:receipt_path;type:text" json:"receipt_path,omitempty"`
	ManualPath  string `gorm:"column:manual_path;type:text" json:"manual_path,omitempty"`
}

// TableName overrides gorm to use component table.
func (Component) TableName() string {
	return "component"
}

// OwnerID returns the business key used for storage paths.
func (c *Component) OwnerID() string {
	return c.ComponentID
}

// TopLevel reports whether the component hangs directly off its asset.
func (c *Component) TopLevel() bool {
	return c.ParentSubID == nil || *c.ParentSubID == ""
}

// Slot returns the attachment list for the given slot.
func (c *Component) Slot(slot AttachmentSlot) []Attachment {
	switch slot {
	case SlotPhoto:
		return c.Photos
	case SlotReceipt:
		return c.Receipts
	case SlotManual:
		return c.Manuals
	}
	return nil
}

// SetSlot replaces the attachment list for the given slot and mirrors
// its first entry into the legacy singular path column.
func (c *Component) SetSlot(slot AttachmentSlot, list []Attachment) {
	switch slot {
	case SlotPhoto:
		c.Photos = list
		c.PhotoPath = PrimaryPath(list)
	case SlotReceipt:
		c.Receipts = list
		c.ReceiptPath = PrimaryPath(list)
	case SlotManual:
		c.Manuals = list
		c.ManualPath = PrimaryPath(list)
	}
}

// AllAttachments returns every attachment across the three slots.
func (c *Component) AllAttachments() []Attachment {
	out := make([]Attachment, 0, len(c.Photos)+len(c.Receipts)+len(c.Manuals))
	out = append(out, c.Photos...)
	out = append(out, c.Receipts...)
	out = append(out, c.Manuals...)
	return out
}
