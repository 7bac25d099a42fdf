// Package profile caches the authenticated user record in the durable store
// and validates it together with the token vault at startup.
//
// Hydration is fail-closed: a malformed record, or a record without a token
// (or a token without a record), wipes both and reports no session.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsession/internal/client/models"
	"github.com/dmitrijs2005/gophsession/internal/client/storage"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

// ErrNoSession is returned by operations that need a cached user.
var ErrNoSession = errors.New("no session")

// TokenVault is the part of vault.Vault the cache depends on.
type TokenVault interface {
	Read(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

type Cache struct {
	store  storage.Repository
	vault  TokenVault
	logger logging.Logger
}

func New(store storage.Repository, vault TokenVault, logger logging.Logger) *Cache {
	return &Cache{store: store, vault: vault, logger: logger.With("module", "profile_cache")}
}

// Hydrate rebuilds the session from storage. It returns nil when there is no
// consistent session. Only storage read failures are returned as errors.
func (c *Cache) Hydrate(ctx context.Context) (*models.Session, error) {
	raw, hasUser, err := c.store.Get(ctx, common.UserKey)
	if err != nil {
		return nil, common.Persistence("read user", err)
	}

	token, hasToken, err := c.vault.Read(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case !hasUser && !hasToken:
		return nil, nil
	case hasUser && !hasToken:
		c.failClosed(ctx, "user record without token")
		return nil, nil
	case !hasUser && hasToken:
		c.failClosed(ctx, "token without user record")
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		c.failClosed(ctx, "malformed user record: "+err.Error())
		return nil, nil
	}
	if !user.Valid() {
		c.failClosed(ctx, "incomplete user record")
		return nil, nil
	}

	return &models.Session{User: user, Token: token}, nil
}

func (c *Cache) failClosed(ctx context.Context, reason string) {
	c.logger.Warn(ctx, "discarding stored session", "error", common.ErrCorruptedSession, "reason", reason)
	if err := c.Clear(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear corrupted session", "error", err)
	}
}

// Commit writes session.User to the durable store. The token is owned by
// the vault and is not touched.
func (c *Cache) Commit(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session.User)
	if err != nil {
		return common.Persistence("encode user", err)
	}
	if err := c.store.Set(ctx, common.UserKey, string(data)); err != nil {
		return common.Persistence("write user", err)
	}
	return nil
}

// MergeProfile applies patch onto the cached user, recommits it and returns
// the updated record. Reflecting it into live state is up to the caller.
func (c *Cache) MergeProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	raw, ok, err := c.store.Get(ctx, common.UserKey)
	if err != nil {
		return nil, common.Persistence("read user", err)
	}
	if !ok {
		return nil, ErrNoSession
	}

	var current models.User
	if err := json.Unmarshal([]byte(raw), &current); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCorruptedSession, err)
	}

	updated := patch.Apply(current)
	if err := c.Commit(ctx, &models.Session{User: updated}); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Clear removes the user record and the token. Both are attempted.
func (c *Cache) Clear(ctx context.Context) error {
	var errs []error
	if err := c.store.Delete(ctx, common.UserKey); err != nil {
		errs = append(errs, common.Persistence("delete user", err))
	}
	if err := c.vault.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
