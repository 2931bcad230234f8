package service

import (
	"strings"
	"time"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/biz/model/api"
	"github.com/yi-nology/asset_harbor/pkg/storage"

	"gorm.io/gorm"
)

const fileURLPrefix = "/api/v1/files/"

// Service orchestrates inventory and attachment operations using Logic
// and the object storage collaborator.
type Service struct {
	logic   *Logic
	objects storage.Storage
	engine  *ReconciliationEngine
}

func NewService(db *gorm.DB, objects storage.Storage) *Service {
	return &Service{
		logic:   NewLogic(db),
		objects: objects,
		engine:  NewReconciliationEngine(NewAttachmentStore(objects)),
	}
}

// Engine exposes the reconciliation engine, mainly for handlers that
// build their own stagers.
func (s *Service) Engine() *ReconciliationEngine {
	return s.engine
}

// --------------------- Model conversion helpers ---------------------

func attachmentToView(att model.Attachment) api.AttachmentView {
	return api.AttachmentView{
		Path:         att.Path,
		OriginalName: att.OriginalName,
		Size:         att.Size,
		MimeType:     att.MimeType,
		LastModified: att.LastModified,
		URL:          fileURLPrefix + att.Path,
	}
}

func attachmentsToView(list []model.Attachment) []api.AttachmentView {
	if len(list) == 0 {
		return nil
	}
	out := make([]api.AttachmentView, 0, len(list))
	for _, att := range list {
		out = append(out, attachmentToView(att))
	}
	return out
}

func warrantiesToView(list []model.Warranty) []api.WarrantyView {
	if len(list) == 0 {
		return nil
	}
	out := make([]api.WarrantyView, 0, len(list))
	for _, w := range list {
		out = append(out, api.WarrantyView{Provider: w.Provider, ExpiresAt: w.ExpiresAt, Notes: w.Notes})
	}
	return out
}

func warrantiesToModel(list []api.WarrantyView) []model.Warranty {
	if len(list) == 0 {
		return nil
	}
	out := make([]model.Warranty, 0, len(list))
	for _, w := range list {
		out = append(out, model.Warranty{Provider: w.Provider, ExpiresAt: w.ExpiresAt, Notes: w.Notes})
	}
	return out
}

func assetModelToView(asset *model.Asset) *api.AssetView {
	if asset == nil {
		return nil
	}
	view := &api.AssetView{
		AssetID:       asset.AssetID,
		Name:          asset.Name,
		Category:      asset.Category,
		Brand:         asset.Brand,
		ModelNumber:   asset.ModelNumber,
		SerialNumber:  asset.SerialNumber,
		Location:      asset.Location,
		PurchasePrice: asset.PurchasePrice,
		Remark:        asset.Remark,
		Warranties:    warrantiesToView(asset.Warranties),
		Photos:        attachmentsToView(asset.Photos),
		Receipts:      attachmentsToView(asset.Receipts),
		Manuals:       attachmentsToView(asset.Manuals),
		PhotoPath:     asset.PhotoPath,
		ReceiptPath:   asset.ReceiptPath,
		ManualPath:    asset.ManualPath,
		CreatedAt:     asset.CreatedAt.Unix(),
		UpdatedAt:     asset.UpdatedAt.Unix(),
	}
	if asset.PurchaseDate != nil {
		view.PurchaseDate = asset.PurchaseDate.Format("2006-01-02")
	}
	return view
}

func assetSliceToView(assets []model.Asset) []*api.AssetView {
	list := make([]*api.AssetView, 0, len(assets))
	for i := range assets {
		list = append(list, assetModelToView(&assets[i]))
	}
	return list
}

func componentModelToView(component *model.Component) *api.ComponentView {
	if component == nil {
		return nil
	}
	view := &api.ComponentView{
		ComponentID: component.ComponentID,
		ParentID:    component.ParentID,
		Name:        component.Name,
		Quantity:    component.Quantity,
		Remark:      component.Remark,
		Photos:      attachmentsToView(component.Photos),
		Receipts:    attachmentsToView(component.Receipts),
		Manuals:     attachmentsToView(component.Manuals),
		PhotoPath:   component.PhotoPath,
		ReceiptPath: component.ReceiptPath,
		ManualPath:  component.ManualPath,
		CreatedAt:   component.CreatedAt.Unix(),
		UpdatedAt:   component.UpdatedAt.Unix(),
	}
	if component.ParentSubID != nil {
		view.ParentSubID = *component.ParentSubID
	}
	return view
}

func componentSliceToView(components []model.Component) []*api.ComponentView {
	list := make([]*api.ComponentView, 0, len(components))
	for i := range components {
		list = append(list, componentModelToView(&components[i]))
	}
	return list
}

func payloadToAsset(payload *api.AssetPayload) (*model.Asset, error) {
	name := strings.TrimSpace(payload.GetName())
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	asset := &model.Asset{
		AssetID:       payload.AssetID,
		Name:          name,
		Category:      strings.TrimSpace(payload.Category),
		Brand:         strings.TrimSpace(payload.Brand),
		ModelNumber:   strings.TrimSpace(payload.ModelNumber),
		SerialNumber:  strings.TrimSpace(payload.SerialNumber),
		Location:      strings.TrimSpace(payload.Location),
		PurchasePrice: payload.PurchasePrice,
		Remark:        payload.Remark,
		Warranties:    warrantiesToModel(payload.Warranties),
	}
	if raw := strings.TrimSpace(payload.PurchaseDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, &ValidationError{Field: "purchase_date", Reason: "expected YYYY-MM-DD"}
		}
		asset.PurchaseDate = &parsed
	}
	return asset, nil
}

func payloadToComponent(payload *api.ComponentPayload) (*model.Component, error) {
	name := strings.TrimSpace(payload.GetName())
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(payload.GetParentID()) == "" {
		return nil, &ValidationError{Field: "parent_id", Reason: "required"}
	}
	component := &model.Component{
		ComponentID: payload.ComponentID,
		ParentID:    strings.TrimSpace(payload.ParentID),
		Name:        name,
		Quantity:    payload.Quantity,
		Remark:      payload.Remark,
	}
	if component.Quantity <= 0 {
		component.Quantity = 1
	}
	if sub := strings.TrimSpace(payload.GetParentSubID()); sub != "" {
		component.ParentSubID = &sub
	}
	return component, nil
}

// removedPaths maps the per-slot removal lists of a payload.
func removedPaths(photos, receipts, manuals []string) map[model.AttachmentSlot][]string {
	return map[model.AttachmentSlot][]string{
		model.SlotPhoto:   photos,
		model.SlotReceipt: receipts,
		model.SlotManual:  manuals,
	}
}
