// Package api provides API request/response models for the inventory service.
package api

// AttachmentView is the wire form of one stored file reference.
type AttachmentView struct {
	Path         string `json:"path"`
	OriginalName string `json:"original_name,omitempty"`
	Size         int64  `json:"size,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	LastModified int64  `json:"last_modified,omitempty"`
	URL          string `json:"url,omitempty"`
}

// WarrantyView is the wire form of one warranty record.
type WarrantyView struct {
	Provider  string `json:"provider"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// AssetPayload is the editable part of an asset, sent as the "payload"
// field of a multipart save request. Removed* carry the stored paths of
// existing attachments the user detached this session.
type AssetPayload struct {
	AssetID       string         `json:"asset_id,omitempty"`
	Name          string         `json:"name"`
	Category      string         `json:"category,omitempty"`
	Brand         string         `json:"brand,omitempty"`
	ModelNumber   string         `json:"model_number,omitempty"`
	SerialNumber  string         `json:"serial_number,omitempty"`
	Location      string         `json:"location,omitempty"`
	PurchaseDate  string         `json:"purchase_date,omitempty"`
	PurchasePrice float64        `json:"purchase_price,omitempty"`
	Remark        string         `json:"remark,omitempty"`
	Warranties    []WarrantyView `json:"warranties,omitempty"`

	RemovedPhotos   []string `json:"removed_photos,omitempty"`
	RemovedReceipts []string `json:"removed_receipts,omitempty"`
	RemovedManuals  []string `json:"removed_manuals,omitempty"`
}

func (x *AssetPayload) GetAssetID() string {
	if x != nil {
		return x.AssetID
	}
	return ""
}

func (x *AssetPayload) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

// ComponentPayload is the editable part of a component.
type ComponentPayload struct {
	ComponentID string `json:"component_id,omitempty"`
	ParentID    string `json:"parent_id"`
	ParentSubID string `json:"parent_sub_id,omitempty"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity,omitempty"`
	Remark      string `json:"remark,omitempty"`

	RemovedPhotos   []string `json:"removed_photos,omitempty"`
	RemovedReceipts []string `json:"removed_receipts,omitempty"`
	RemovedManuals  []string `json:"removed_manuals,omitempty"`
}

func (x *ComponentPayload) GetComponentID() string {
	if x != nil {
		return x.ComponentID
	}
	return ""
}

func (x *ComponentPayload) GetParentID() string {
	if x != nil {
		return x.ParentID
	}
	return ""
}

func (x *ComponentPayload) GetParentSubID() string {
	if x != nil {
		return x.ParentSubID
	}
	return ""
}

func (x *ComponentPayload) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

// AssetView is the wire form of an asset.
type AssetView struct {
	AssetID       string           `json:"asset_id"`
	Name          string           `json:"name"`
	Category      string           `json:"category,omitempty"`
	Brand         string           `json:"brand,omitempty"`
	ModelNumber   string           `json:"model_number,omitempty"`
	SerialNumber  string           `json:"serial_number,omitempty"`
	Location      string           `json:"location,omitempty"`
	PurchaseDate  string           `json:"purchase_date,omitempty"`
	PurchasePrice float64          `json:"purchase_price,omitempty"`
	Remark        string           `json:"remark,omitempty"`
	Warranties    []WarrantyView   `json:"warranties,omitempty"`
	Photos        []AttachmentView `json:"photos,omitempty"`
	Receipts      []AttachmentView `json:"receipts,omitempty"`
	Manuals       []AttachmentView `json:"manuals,omitempty"`
	PhotoPath     string           `json:"photo_path,omitempty"`
	ReceiptPath   string           `json:"receipt_path,omitempty"`
	ManualPath    string           `json:"manual_path,omitempty"`
	CreatedAt     int64            `json:"created_at,omitempty"`
	UpdatedAt     int64            `json:"updated_at,omitempty"`
}

// ComponentView is the wire form of a component.
type ComponentView struct {
	ComponentID string           `json:"component_id"`
	ParentID    string           `json:"parent_id"`
	ParentSubID string           `json:"parent_sub_id,omitempty"`
	Name        string           `json:"name"`
	Quantity    int              `json:"quantity,omitempty"`
	Remark      string           `json:"remark,omitempty"`
	Photos      []AttachmentView `json:"photos,omitempty"`
	Receipts    []AttachmentView `json:"receipts,omitempty"`
	Manuals     []AttachmentView `json:"manuals,omitempty"`
	PhotoPath   string           `json:"photo_path,omitempty"`
	ReceiptPath string           `json:"receipt_path,omitempty"`
	ManualPath  string           `json:"manual_path,omitempty"`
	CreatedAt   int64            `json:"created_at,omitempty"`
	UpdatedAt   int64            `json:"updated_at,omitempty"`
}

// ComponentTreeNode is a component with its children resolved, used by
// the nested tree endpoint.
type ComponentTreeNode struct {
	Component *ComponentView       `json:"component"`
	Children  []*ComponentTreeNode `json:"children,omitempty"`
}

// AssetTree is an asset with its full component hierarchy.
type AssetTree struct {
	Asset      *AssetView           `json:"asset"`
	Components []*ComponentTreeNode `json:"components,omitempty"`
}
