// Package vault holds the session token redundantly in the durable store and
// in the cookie channel, so that either channel alone can re-establish the
// session. Callers see one Write/Read/Clear surface; the read order (durable
// store first, cookie second) stays inside this package.
package vault

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophsession/internal/client/cookies"
	"github.com/dmitrijs2005/gophsession/internal/client/storage"
	"github.com/dmitrijs2005/gophsession/internal/common"
)

const secondsPerDay = 86400

type Vault struct {
	store storage.Repository
	jar   cookies.Jar
}

func New(store storage.Repository, jar cookies.Jar) *Vault {
	return &Vault{store: store, jar: jar}
}

// Write stores token in the durable store (no TTL) and in the cookie channel
// with Max-Age ttlDays days, path "/".
func (v *Vault) Write(ctx context.Context, token string, ttlDays int) error {
	if err := v.store.Set(ctx, common.AuthTokenKey, token); err != nil {
		return common.Persistence("write token", err)
	}

	c := &http.Cookie{
		Name:   common.AuthTokenCookie,
		Value:  token,
		Path:   "/",
		MaxAge: ttlDays * secondsPerDay,
	}
	if err := v.jar.SetCookie(ctx, c); err != nil {
		return common.Persistence("write token cookie", err)
	}
	return nil
}

// Read returns the token from the durable store, falling back to the cookie
// channel. ok is false when neither channel has one. The token is not
// validated in any way.
func (v *Vault) Read(ctx context.Context) (string, bool, error) {
	token, ok, storeErr := v.store.Get(ctx, common.AuthTokenKey)
	if storeErr == nil && ok && token != "" {
		return token, true, nil
	}

	c, ok, cookieErr := v.jar.Cookie(ctx, common.AuthTokenCookie)
	if cookieErr == nil && ok && c.Value != "" {
		return c.Value, true, nil
	}

	if storeErr != nil || cookieErr != nil {
		return "", false, common.Persistence("read token", errors.Join(storeErr, cookieErr))
	}
	return "", false, nil
}

// Clear removes the token from both channels. Both removals are attempted
// even if the first one fails. Clearing an absent token is not an error.
func (v *Vault) Clear(ctx context.Context) error {
	var errs []error
	if err := v.store.Delete(ctx, common.AuthTokenKey); err != nil {
		errs = append(errs, err)
	}
	if err := v.jar.SetCookie(ctx, cookies.Expired(common.AuthTokenCookie, "/")); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return common.Persistence("clear token", errors.Join(errs...))
	}
	return nil
}
