package cookies

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisJar persists cookies in Redis, one key per cookie, using the key TTL
// as the cookie expiry. Values are stored in Set-Cookie form so every
// attribute survives the round trip.
type RedisJar struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisJar(client redis.UniversalClient, prefix string) *RedisJar {
	return &RedisJar{client: client, prefix: prefix, now: time.Now}
}

func (j *RedisJar) key(name string) string {
	return j.prefix + ":cookie:" + name
}

func (j *RedisJar) SetCookie(ctx context.Context, c *http.Cookie) error {
	ttl, persistent, expired := lifetime(c, j.now())
	if expired {
		if err := j.client.Del(ctx, j.key(c.Name)).Err(); err != nil {
			return fmt.Errorf("failed to delete cookie %s: %w", c.Name, err)
		}
		return nil
	}

	raw := c.String()
	if raw == "" {
		return fmt.Errorf("invalid cookie %q", c.Name)
	}
	if !persistent {
		ttl = 0
	}
	if err := j.client.Set(ctx, j.key(c.Name), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cookie %s: %w", c.Name, err)
	}
	return nil
}

func (j *RedisJar) Cookie(ctx context.Context, name string) (*http.Cookie, bool, error) {
	raw, err := j.client.Get(ctx, j.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cookie %s: %w", name, err)
	}

	c, err := http.ParseSetCookie(raw)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse cookie %s: %w", name, err)
	}
	return c, true, nil
}

// Close releases the Redis connection pool.
func (j *RedisJar) Close() error {
	return j.client.Close()
}
