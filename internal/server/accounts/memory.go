package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. It is used when no
// database DSN is configured and in tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]*Account)}
}

func (r *MemoryRepository) Create(_ context.Context, a *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(a.Email, "") {
		return nil, ErrEmailTaken
	}

	c := a.clone()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	r.accounts[c.ID] = c

	return c.clone(), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a.clone(), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return a.clone(), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Update(_ context.Context, a *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.accounts[a.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if r.emailTaken(a.Email, a.ID) {
		return ErrEmailTaken
	}

	c := a.clone()
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.accounts[a.ID] = c
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.accounts, id)
	return nil
}

// emailTaken must be called with mu held.
func (r *MemoryRepository) emailTaken(email, exceptID string) bool {
	for id, a := range r.accounts {
		if id != exceptID && a.Email == email {
			return true
		}
	}
	return false
}
