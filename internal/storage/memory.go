package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Memory is a map-backed Storage for tests and local development.
type Memory struct {
	mu         sync.RWMutex
	objects    map[string][]byte
	publicBase string
}

// NewMemory returns an empty in-memory store whose PublicURL is rooted at publicBase.
func NewMemory(publicBase string) *Memory {
	return &Memory{
		objects:    make(map[string][]byte),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// Upload reads reader fully and stores the bytes under key, overwriting.
func (m *Memory) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read upload %q: %w", key, err)
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return nil
}

// Download returns a reader over the stored bytes, or an error for a missing key.
func (m *Memory) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("get object %q: key does not exist", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the object at key. Deleting a missing key is not an error.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// PublicURL returns the URL the stored object would be served from.
func (m *Memory) PublicURL(key string) string {
	return m.publicBase + "/" + key
}

// Len reports the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
