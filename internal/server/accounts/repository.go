package accounts

import "context"

// Repository persists accounts. Lookups of a missing account return
// common.ErrorNotFound; a duplicate email returns ErrEmailTaken.
type Repository interface {
	Create(ctx context.Context, a *Account) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id string) error
}
