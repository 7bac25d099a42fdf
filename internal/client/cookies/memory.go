package cookies

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type memoryEntry struct {
	cookie    http.Cookie
	expiresAt time.Time
}

// MemoryJar keeps cookies for the lifetime of the process.
type MemoryJar struct {
	mu      sync.Mutex
	now     func() time.Time
	cookies map[string]memoryEntry
}

func NewMemoryJar() *MemoryJar {
	return &MemoryJar{now: time.Now, cookies: make(map[string]memoryEntry)}
}

func (j *MemoryJar) SetCookie(_ context.Context, c *http.Cookie) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	ttl, persistent, expired := lifetime(c, now)
	if expired {
		delete(j.cookies, c.Name)
		return nil
	}

	e := memoryEntry{cookie: *c}
	if persistent {
		e.expiresAt = now.Add(ttl)
	}
	j.cookies[c.Name] = e
	return nil
}

func (j *MemoryJar) Cookie(_ context.Context, name string) (*http.Cookie, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	e, ok := j.cookies[name]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !j.now().Before(e.expiresAt) {
		delete(j.cookies, name)
		return nil, false, nil
	}
	c := e.cookie
	return &c, true, nil
}
