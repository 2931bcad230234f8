package model

// AttachmentSlot names one of the three per-entity attachment lists.
type AttachmentSlot string

const (
	SlotPhoto   AttachmentSlot = "photo"
	SlotReceipt AttachmentSlot = "receipt"
	SlotManual  AttachmentSlot = "manual"
)

// Slots lists every attachment slot in canonical order.
var Slots = []AttachmentSlot{SlotPhoto, SlotReceipt, SlotManual}

// Valid reports whether the slot is one of photo/receipt/manual.
func (s AttachmentSlot) Valid() bool {
	switch s {
	case SlotPhoto, SlotReceipt, SlotManual:
		return true
	}
	return false
}

// Attachment describes one stored file referenced by an asset or component.
type Attachment struct {
	Path         string `json:"path"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	LastModified int64  `json:"last_modified"`
}

// Warranty is one warranty record attached to an asset.
type Warranty struct {
	Provider  string `json:"provider"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// PrimaryPath returns the path of the first attachment, or "" when the
// list is empty. Older consumers read this instead of the full list.
func PrimaryPath(list []Attachment) string {
	if len(list) == 0 {
		return ""
	}
	return list[0].Path
}

// AttachmentCarrier is implemented by entities that own the three
// attachment slots. SetSlot must keep the legacy singular path field in
// sync with the head of the list.
type AttachmentCarrier interface {
	OwnerID() string
	Slot(slot AttachmentSlot) []Attachment
	SetSlot(slot AttachmentSlot, list []Attachment)
}
