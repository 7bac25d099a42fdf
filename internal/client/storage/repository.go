package storage

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned when a value is larger than the store allows.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Repository is the key/value contract. Get reports absence with ok=false
// and a nil error. Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Store is a Repository that can run several operations atomically.
type Store interface {
	Repository
	WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
