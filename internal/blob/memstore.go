package blob

import (
	"context"
	"errors"
	"sync"
)

var ErrObjectNotFound = errors.New("object not found")

type memObject struct {
	data        []byte
	contentType string
}

// MemStore keeps blobs in memory. Used in local mode where no object storage
// is configured.
type MemStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

func NewMemStore() *MemStore {
	return &MemStore{objects: make(map[string]memObject)}
}

func (m *MemStore) PutObject(ctx context.Context, key string, data []byte, contentType string) (int64, error) {
	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = memObject{data: cp, contentType: contentType}
	return int64(len(data)), nil
}

func (m *MemStore) GetObject(ctx context.Context, key string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, "", ErrObjectNotFound
	}

	cp := make([]byte, len(obj.data))
	copy(cp, obj.data)
	return cp, obj.contentType, nil
}

// PresignGet is not supported for in-memory blobs; clients fetch through the
// API instead.
func (m *MemStore) PresignGet(ctx context.Context, key string, ttlSeconds int) (string, error) {
	return "", errors.New("presigned URLs are not available in local mode")
}

func (m *MemStore) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	return nil
}
