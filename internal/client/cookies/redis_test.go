package cookies

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisJar(t *testing.T) (*RedisJar, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	j := NewRedisJar(client, "test")
	t.Cleanup(func() { _ = j.Close() })
	return j, mr
}

func TestRedisJar_RoundTripKeepsAttributes(t *testing.T) {
	j, mr := setupRedisJar(t)
	ctx := context.Background()

	in := &http.Cookie{
		Name:     "appearanceSettings_u1",
		Value:    "eyJ0aGVtZSI6ImRhcmsifQ",
		Path:     "/",
		MaxAge:   365 * 24 * 3600,
		SameSite: http.SameSiteLaxMode,
		Secure:   true,
	}
	require.NoError(t, j.SetCookie(ctx, in))

	out, ok, err := j.Cookie(ctx, "appearanceSettings_u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in.Value, out.Value)
	assert.Equal(t, "/", out.Path)
	assert.Equal(t, in.MaxAge, out.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, out.SameSite)
	assert.True(t, out.Secure)

	assert.Equal(t, 365*24*time.Hour, mr.TTL("test:cookie:appearanceSettings_u1"))
}

func TestRedisJar_ExpiresWithTTL(t *testing.T) {
	j, mr := setupRedisJar(t)
	ctx := context.Background()

	require.NoError(t, j.SetCookie(ctx, &http.Cookie{Name: "authToken", Value: "tok", Path: "/", MaxAge: 7 * 86400}))

	mr.FastForward(7*24*time.Hour + time.Second)

	_, ok, err := j.Cookie(ctx, "authToken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisJar_ExpiredDeletes(t *testing.T) {
	j, mr := setupRedisJar(t)
	ctx := context.Background()

	require.NoError(t, j.SetCookie(ctx, &http.Cookie{Name: "authToken", Value: "tok", MaxAge: 60}))
	require.NoError(t, j.SetCookie(ctx, Expired("authToken", "/")))

	assert.False(t, mr.Exists("test:cookie:authToken"))
	require.NoError(t, j.SetCookie(ctx, Expired("authToken", "/")))
}

func TestRedisJar_ServerDown(t *testing.T) {
	j, mr := setupRedisJar(t)
	mr.Close()

	err := j.SetCookie(context.Background(), &http.Cookie{Name: "a", Value: "b", MaxAge: 1})
	require.ErrorContains(t, err, "failed to set cookie a")

	_, _, err = j.Cookie(context.Background(), "a")
	require.ErrorContains(t, err, "failed to get cookie a")
}
