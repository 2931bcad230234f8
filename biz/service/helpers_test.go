package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/yi-nology/asset_harbor/biz/dal/db"
	"gorm.io/gorm"
)

// memObjectStore is an in-memory storage.Storage used by service tests.
type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: make(map[string][]byte)}
}

func (m *memObjectStore) PutObject(ctx context.Context, key string, data io.Reader, contentType string, size int64) error {
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = content
	return nil
}

func (m *memObjectStore) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (m *memObjectStore) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memObjectStore) ObjectExists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memObjectStore) GenerateURL(ctx context.Context, key string, fileName string) (string, error) {
	return "/api/v1/files/" + key, nil
}

func (m *memObjectStore) Type() string {
	return "mem"
}

func (m *memObjectStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func (m *memObjectStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// newTestService wires a Service against an in-memory database and
// object store.
func newTestService(t *testing.T) (*Service, *memObjectStore, *gorm.DB) {
	t.Helper()
	conn := db.SetupTestDB(t)
	t.Cleanup(func() { db.CleanupTestDB(t, conn) })
	objects := newMemObjectStore()
	return NewService(conn, objects), objects, conn
}
