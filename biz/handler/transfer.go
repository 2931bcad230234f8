package handler

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/asset_harbor/biz/model/transfer"
	"github.com/yi-nology/asset_harbor/biz/service"
)

// TransferHandler exposes the export and import endpoints.
type TransferHandler struct {
	service *service.Service
}

func NewTransferHandler(svc *service.Service) *TransferHandler {
	return &TransferHandler{service: svc}
}

// ExportBundle streams a zip of the full inventory with attachments.
// @router /api/v1/export [GET]
func (h *TransferHandler) ExportBundle(ctx context.Context, c *app.RequestContext) {
	data, name, err := h.service.ExportBundle(enrichContext(ctx, c))
	if err != nil {
		writeInternalError(c, err)
		return
	}
	if name == "" {
		name = "asset_harbor_export.zip"
	}
	c.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(consts.StatusOK, "application/zip", data)
}

// ImportBundle restores a previously exported zip bundle.
// @router /api/v1/import [POST]
func (h *TransferHandler) ImportBundle(ctx context.Context, c *app.RequestContext) {
	fileHeader, err := c.FormFile("bundle")
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeInternalError(c, err)
		return
	}

	summary, err := h.service.ImportBundle(enrichContext(ctx, c), data)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	c.JSON(consts.StatusOK, &transfer.ImportResponse{
		Code: int32(consts.StatusOK),
		Msg:  "success",
		Data: summary,
	})
}
