package client

import (
	"context"

	"github.com/dmitrijs2005/gophsession/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	// SetToken changes the token attached to subsequent calls. An empty
	// token sends none.
	SetToken(token string)
	Login(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, fields models.ProfileFields) (*models.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	DeleteAccount(ctx context.Context, userID, password string) error
	ResetDemo(ctx context.Context, email string) error
	Upload(ctx context.Context, userID, fileName, contentType string, data []byte) (string, error)
}
