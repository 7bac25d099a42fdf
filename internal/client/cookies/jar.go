// Package cookies implements the cookie channel: a small store of
// attribute-bearing values (expiry, path, same-site, secure) with their own
// lifetime, independent of the durable store.
//
// A cookie is deleted the way a browser deletes one: by writing the same
// name with Max-Age < 0 or an Expires time in the past (see Expired).
package cookies

import (
	"context"
	"net/http"
	"time"
)

// Jar stores cookies by name.
type Jar interface {
	// SetCookie stores c, or removes the cookie named c.Name when c is
	// already expired.
	SetCookie(ctx context.Context, c *http.Cookie) error

	// Cookie returns the live cookie with the given name. ok is false when
	// the cookie is absent or has expired.
	Cookie(ctx context.Context, name string) (c *http.Cookie, ok bool, err error)
}

// Expired returns the deletion form of the cookie name on path.
func Expired(name, path string) *http.Cookie {
	return &http.Cookie{
		Name:    name,
		Value:   "",
		Path:    path,
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	}
}

// lifetime reports how long c should live as of now. persistent is false
// for session cookies that carry neither Max-Age nor Expires; expired is
// true when the cookie must be removed.
func lifetime(c *http.Cookie, now time.Time) (ttl time.Duration, persistent bool, expired bool) {
	switch {
	case c.MaxAge < 0:
		return 0, true, true
	case c.MaxAge > 0:
		return time.Duration(c.MaxAge) * time.Second, true, false
	case !c.Expires.IsZero():
		ttl = c.Expires.Sub(now)
		return ttl, true, ttl <= 0
	default:
		return 0, false, false
	}
}
