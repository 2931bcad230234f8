package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/pkg/storage"
)

// objectAttachmentStore adapts the generic object storage to the
// attachment contract the reconciliation engine consumes.
type objectAttachmentStore struct {
	objects storage.Storage
}

// NewAttachmentStore wraps an object storage backend as an AttachmentStore.
func NewAttachmentStore(objects storage.Storage) AttachmentStore {
	return &objectAttachmentStore{objects: objects}
}

// UploadAttachment stores the file under a fresh key and returns the
// attachment record to persist. Keys are never reused, so a retried
// upload creates a new object rather than overwriting.
func (s *objectAttachmentStore) UploadAttachment(ctx context.Context, file FileRef, slot model.AttachmentSlot, ownerID string) (model.Attachment, error) {
	if len(file.Data) == 0 {
		return model.Attachment{}, errors.New("file data is empty")
	}
	if ownerID == "" {
		return model.Attachment{}, errors.New("owner id is required")
	}

	name := sanitizeFileName(file.Name)
	key := fmt.Sprintf("%s/%s/%s/%s", ownerID, slot, uuid.NewString(), name)
	contentType := detectContentType(file.MimeType, file.Data)

	if err := s.objects.PutObject(ctx, key, bytes.NewReader(file.Data), contentType, int64(len(file.Data))); err != nil {
		return model.Attachment{}, fmt.Errorf("upload attachment: %w", err)
	}

	return model.Attachment{
		Path:         key,
		OriginalName: file.Name,
		Size:         int64(len(file.Data)),
		MimeType:     contentType,
		LastModified: file.LastModified,
	}, nil
}

// DeleteAttachmentFile removes the stored object. Backends treat a
// missing key as already deleted, which keeps retries idempotent.
func (s *objectAttachmentStore) DeleteAttachmentFile(ctx context.Context, p string) error {
	if p == "" {
		return nil
	}
	return s.objects.DeleteObject(ctx, p)
}

func sanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return "file"
	}
	return base
}

func detectContentType(provided string, data []byte) string {
	if provided != "" {
		return provided
	}
	return http.DetectContentType(data)
}
