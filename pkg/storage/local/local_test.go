package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	key := "owner/photo/abc/test.jpg"
	content := []byte("image bytes")

	if err := s.PutObject(ctx, key, bytes.NewReader(content), "image/jpeg", int64(len(content))); err != nil {
		t.Fatalf("PutObject: %v", err)
	}

	exists, err := s.ObjectExists(ctx, key)
	if err != nil || !exists {
		t.Fatalf("ObjectExists = %v, %v", exists, err)
	}

	reader, err := s.GetObject(ctx, key)
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	got, err := io.ReadAll(reader)
	reader.Close()
	if err != nil || !bytes.Equal(got, content) {
		t.Fatalf("read back %q, err %v", got, err)
	}

	url, err := s.GenerateURL(ctx, key, "test.jpg")
	if err != nil || !strings.HasPrefix(url, "/api/v1/files/") {
		t.Fatalf("GenerateURL = %q, %v", url, err)
	}

	if err := s.DeleteObject(ctx, key); err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}
	exists, _ = s.ObjectExists(ctx, key)
	if exists {
		t.Fatalf("object should be gone")
	}
	// deleting again stays a no-op
	if err := s.DeleteObject(ctx, key); err != nil {
		t.Fatalf("repeated delete must be idempotent, got %v", err)
	}
}

func TestLocalStorageGetMissing(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.GetObject(context.Background(), "nope/missing.bin"); err == nil {
		t.Fatalf("missing object must error")
	}
}
