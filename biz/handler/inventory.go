package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/biz/model/api"
	"github.com/yi-nology/asset_harbor/biz/service"
	"github.com/yi-nology/asset_harbor/pkg/common"
	"github.com/yi-nology/asset_harbor/pkg/validator"
)

// slotFormFields maps attachment slots onto multipart field names.
var slotFormFields = map[model.AttachmentSlot]string{
	model.SlotPhoto:   "photos",
	model.SlotReceipt: "receipts",
	model.SlotManual:  "manuals",
}

// InventoryHandler exposes the asset and component endpoints.
type InventoryHandler struct {
	service *service.Service
	uploads *validator.UploadConfig
}

func NewInventoryHandler(svc *service.Service, uploads *validator.UploadConfig) *InventoryHandler {
	if uploads == nil {
		uploads = validator.DefaultUploadConfig()
	}
	return &InventoryHandler{service: svc, uploads: uploads}
}

// --------------------- Asset endpoints ---------------------

// ListAssets returns all assets, optionally filtered by category.
func (h *InventoryHandler) ListAssets(ctx context.Context, c *app.RequestContext) {
	assets, err := h.service.ListAssets(enrichContext(ctx, c), c.Query("category"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Data: map[string]any{"assets": assets},
	})
}

func (h *InventoryHandler) GetAsset(ctx context.Context, c *app.RequestContext) {
	asset, err := h.service.GetAsset(enrichContext(ctx, c), c.Param("assetID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Data: map[string]any{"asset": asset},
	})
}

// GetAssetTree returns one asset with its nested component hierarchy.
func (h *InventoryHandler) GetAssetTree(ctx context.Context, c *app.RequestContext) {
	tree, err := h.service.GetAssetTree(enrichContext(ctx, c), c.Param("assetID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Data: map[string]any{"tree": tree},
	})
}

// CreateAsset accepts a multipart request: a "payload" JSON field plus
// optional photos/receipts/manuals file fields.
func (h *InventoryHandler) CreateAsset(ctx context.Context, c *app.RequestContext) {
	payload := &api.AssetPayload{}
	if err := h.decodePayload(c, payload); err != nil {
		writeBadRequest(c, err)
		return
	}
	payload.AssetID = ""

	added, err := h.collectUploads(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}

	asset, report, err := h.service.SaveAsset(enrichContext(ctx, c), payload, added)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeSaveResult(c, map[string]any{"asset": asset}, report)
}

// UpdateAsset mirrors CreateAsset with the id taken from the path.
func (h *InventoryHandler) UpdateAsset(ctx context.Context, c *app.RequestContext) {
	payload := &api.AssetPayload{}
	if err := h.decodePayload(c, payload); err != nil {
		writeBadRequest(c, err)
		return
	}
	payload.AssetID = c.Param("assetID")

	added, err := h.collectUploads(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}

	asset, report, err := h.service.SaveAsset(enrichContext(ctx, c), payload, added)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeSaveResult(c, map[string]any{"asset": asset}, report)
}

// DeleteAsset removes the asset and its first-level components.
func (h *InventoryHandler) DeleteAsset(ctx context.Context, c *app.RequestContext) {
	report, err := h.service.DeleteAsset(enrichContext(ctx, c), c.Param("assetID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeSaveResult(c, nil, report)
}

// --------------------- Component endpoints ---------------------

func (h *InventoryHandler) GetComponent(ctx context.Context, c *app.RequestContext) {
	component, err := h.service.GetComponent(enrichContext(ctx, c), c.Param("componentID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Data: map[string]any{"component": component},
	})
}

// ListAssetComponents returns every component of an asset, flat.
func (h *InventoryHandler) ListAssetComponents(ctx context.Context, c *app.RequestContext) {
	components, err := h.service.ListAssetComponents(enrichContext(ctx, c), c.Param("assetID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Data: map[string]any{"components": components},
	})
}

// ListTopLevelComponents returns the components hanging directly off an
// asset.
func (h *InventoryHandler) ListTopLevelComponents(ctx context.Context, c *app.RequestContext) {
	components, err := h.service.ListTopLevelComponents(enrichContext(ctx, c), c.Param("assetID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Data: map[string]any{"components": components},
	})
}

// ListComponentChildren returns the components nested directly under
// the given component.
func (h *InventoryHandler) ListComponentChildren(ctx context.Context, c *app.RequestContext) {
	components, err := h.service.ListComponentChildren(enrichContext(ctx, c), c.Param("componentID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Data: map[string]any{"components": components},
	})
}

func (h *InventoryHandler) CreateComponent(ctx context.Context, c *app.RequestContext) {
	payload := &api.ComponentPayload{}
	if err := h.decodePayload(c, payload); err != nil {
		writeBadRequest(c, err)
		return
	}
	payload.ComponentID = ""

	added, err := h.collectUploads(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}

	component, report, err := h.service.SaveComponent(enrichContext(ctx, c), payload, added)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeSaveResult(c, map[string]any{"component": component}, report)
}

func (h *InventoryHandler) UpdateComponent(ctx context.Context, c *app.RequestContext) {
	payload := &api.ComponentPayload{}
	if err := h.decodePayload(c, payload); err != nil {
		writeBadRequest(c, err)
		return
	}
	payload.ComponentID = c.Param("componentID")

	added, err := h.collectUploads(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}

	component, report, err := h.service.SaveComponent(enrichContext(ctx, c), payload, added)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeSaveResult(c, map[string]any{"component": component}, report)
}

// DeleteComponent removes the component and its whole subtree.
func (h *InventoryHandler) DeleteComponent(ctx context.Context, c *app.RequestContext) {
	report, err := h.service.DeleteComponent(enrichContext(ctx, c), c.Param("componentID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeSaveResult(c, nil, report)
}

// --------------------- Request plumbing ---------------------

// decodePayload reads the "payload" multipart field, falling back to the
// raw body for plain JSON requests.
func (h *InventoryHandler) decodePayload(c *app.RequestContext, out any) error {
	raw := c.FormValue("payload")
	if len(raw) == 0 {
		raw = c.Request.Body()
	}
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// collectUploads reads and validates the per-slot file fields.
func (h *InventoryHandler) collectUploads(c *app.RequestContext) (map[model.AttachmentSlot][]service.FileRef, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Plain JSON request without files.
		return nil, nil
	}

	added := make(map[model.AttachmentSlot][]service.FileRef)
	for slot, field := range slotFormFields {
		for _, fh := range form.File[field] {
			ref, err := h.readUpload(fh)
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", field, fh.Filename, err)
			}
			added[slot] = append(added[slot], ref)
		}
	}
	return added, nil
}

func (h *InventoryHandler) readUpload(fh *multipart.FileHeader) (service.FileRef, error) {
	file, err := fh.Open()
	if err != nil {
		return service.FileRef{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return service.FileRef{}, err
	}
	if err := h.uploads.Validate(int64(len(data)), fh.Header.Get("Content-Type"), data); err != nil {
		return service.FileRef{}, err
	}

	return service.FileRef{
		Name:     fh.Filename,
		Size:     int64(len(data)),
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// writeSaveResult reports the saved entity together with any partial
// upload or delete failures. The save itself succeeded; the report tells
// the client what needs attention.
func writeSaveResult(c *app.RequestContext, data map[string]any, report *service.SaveReport) {
	if data == nil {
		data = map[string]any{}
	}
	if report != nil && report.Partial() {
		data["failed_uploads"] = report.FailedUploads
		data["failed_deletes"] = report.FailedDeletes
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Data: data,
	})
}
