package avatars

import (
	"context"
	"sync"
)

type object struct {
	contentType string
	data        []byte
}

// MemoryStorage keeps avatars in process memory.
type MemoryStorage struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]object
}

// NewMemoryStorage returns a store whose URLs start with baseURL
// ("memory://avatars" when empty).
func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "memory://avatars"
	}
	return &MemoryStorage{baseURL: baseURL, objects: make(map[string]object)}
}

func (s *MemoryStorage) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = object{contentType: contentType, data: append([]byte(nil), data...)}
	return joinURL(s.baseURL, key), nil
}

// Get returns a stored object and its content type.
func (s *MemoryStorage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), o.data...), o.contentType, true
}

// Len reports the number of stored objects.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
