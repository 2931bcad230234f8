package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/asset_harbor/pkg/storage"
)

// FileHandler streams stored attachment objects back to clients.
type FileHandler struct {
	objects storage.Storage
}

func NewFileHandler(objects storage.Storage) *FileHandler {
	return &FileHandler{objects: objects}
}

// GetFile serves one stored object by its full key.
// @router /api/v1/files/*filepath [GET]
func (h *FileHandler) GetFile(ctx context.Context, c *app.RequestContext) {
	key := strings.TrimPrefix(c.Param("filepath"), "/")
	if key == "" || strings.Contains(key, "..") {
		writeBadRequest(c, errors.New("invalid file path"))
		return
	}

	reader, err := h.objects.GetObject(enrichContext(ctx, c), key)
	if err != nil {
		writeNotFound(c, err)
		return
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		writeInternalError(c, err)
		return
	}

	contentType := http.DetectContentType(content)
	c.Response.Header.Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", path.Base(key)))
	c.Data(consts.StatusOK, contentType, content)
}
