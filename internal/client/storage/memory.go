package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryRepository struct {
	data map[string]string
}

func (r *memoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *memoryRepository) Set(_ context.Context, key string, value string) error {
	r.data[key] = value
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, key string) error {
	delete(r.data, key)
	return nil
}

func (r *memoryRepository) Keys(_ context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	for k := range r.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// MemoryStore is a process-local Store. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.Mutex
	repo memoryRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{repo: memoryRepository{data: make(map[string]string)}}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Get(ctx, key)
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Set(ctx, key, value)
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, key)
}

func (s *MemoryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Keys(ctx, prefix)
}

// WithTx runs fn on a copy of the data and publishes it only on success.
// fn must use the repo it is given; calling back into s deadlocks.
func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := &memoryRepository{data: make(map[string]string, len(s.repo.data))}
	for k, v := range s.repo.data {
		draft.data[k] = v
	}

	if err := fn(ctx, draft); err != nil {
		return err
	}
	s.repo.data = draft.data
	return nil
}
