package vault

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/client/cookies"
	"github.com/dmitrijs2005/gophsession/internal/client/storage"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyStore struct {
	*storage.MemoryStore
	setErr, getErr, delErr error
}

func (f *flakyStore) Set(ctx context.Context, k, v string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, k, v)
}

func (f *flakyStore) Get(ctx context.Context, k string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStore.Get(ctx, k)
}

func (f *flakyStore) Delete(ctx context.Context, k string) error {
	if f.delErr != nil {
		return f.delErr
	}
	return f.MemoryStore.Delete(ctx, k)
}

type flakyJar struct {
	*cookies.MemoryJar
	setCalls int
	setErr   error
}

func (f *flakyJar) SetCookie(ctx context.Context, c *http.Cookie) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryJar.SetCookie(ctx, c)
}

func newVault() (*Vault, *flakyStore, *flakyJar) {
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	jar := &flakyJar{MemoryJar: cookies.NewMemoryJar()}
	return New(store, jar), store, jar
}

func TestWrite_BothChannels(t *testing.T) {
	v, store, jar := newVault()
	ctx := context.Background()

	require.NoError(t, v.Write(ctx, "tok", 7))

	got, ok, err := store.Get(ctx, common.AuthTokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", got)

	c, ok, err := jar.Cookie(ctx, common.AuthTokenCookie)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 7*86400, c.MaxAge)
}

func TestWrite_PropagatesPersistenceError(t *testing.T) {
	v, store, jar := newVault()
	store.setErr = storage.ErrQuotaExceeded

	err := v.Write(context.Background(), "tok", 7)
	require.ErrorIs(t, err, common.ErrPersistence)
	require.ErrorIs(t, err, storage.ErrQuotaExceeded)
	assert.Zero(t, jar.setCalls, "cookie must not be written when the durable write failed")

	store.setErr = nil
	jar.setErr = errors.New("redis down")
	err = v.Write(context.Background(), "tok", 7)
	require.ErrorIs(t, err, common.ErrPersistence)
}

func TestRead_PrefersDurableStore(t *testing.T) {
	v, store, jar := newVault()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, common.AuthTokenKey, "durable"))
	require.NoError(t, jar.SetCookie(ctx, &http.Cookie{Name: common.AuthTokenCookie, Value: "cookie", MaxAge: 60}))

	tok, ok, err := v.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "durable", tok)
}

func TestRead_FallsBackToCookie(t *testing.T) {
	v, _, jar := newVault()
	ctx := context.Background()

	require.NoError(t, jar.SetCookie(ctx, &http.Cookie{Name: common.AuthTokenCookie, Value: "cookie", MaxAge: 60}))

	tok, ok, err := v.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cookie", tok)
}

func TestRead_CookieRescuesBrokenStore(t *testing.T) {
	v, store, jar := newVault()
	ctx := context.Background()
	require.NoError(t, jar.SetCookie(ctx, &http.Cookie{Name: common.AuthTokenCookie, Value: "cookie", MaxAge: 60}))
	store.getErr = errors.New("disk I/O error")

	tok, ok, err := v.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cookie", tok)
}

func TestRead_Absent(t *testing.T) {
	v, store, _ := newVault()

	_, ok, err := v.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	store.getErr = errors.New("disk I/O error")
	_, ok, err = v.Read(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestClear_BothChannelsAndIdempotent(t *testing.T) {
	v, _, _ := newVault()
	ctx := context.Background()

	require.NoError(t, v.Write(ctx, "tok", 7))
	require.NoError(t, v.Clear(ctx))

	_, ok, err := v.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, v.Clear(ctx))
}

func TestClear_AttemptsCookieEvenIfStoreFails(t *testing.T) {
	v, store, jar := newVault()
	ctx := context.Background()
	require.NoError(t, v.Write(ctx, "tok", 7))

	store.delErr = errors.New("locked")
	err := v.Clear(ctx)
	require.ErrorIs(t, err, common.ErrPersistence)

	_, ok, _ := jar.Cookie(ctx, common.AuthTokenCookie)
	assert.False(t, ok, "cookie must be expired regardless of the store failure")
}

func TestNewPlaceholderToken(t *testing.T) {
	tok, err := NewPlaceholderToken("u1", true, 7*24*time.Hour)
	require.NoError(t, err)

	claims := &PlaceholderClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.True(t, claims.Demo)
	assert.NotEmpty(t, claims.ID)

	other, err := NewPlaceholderToken("u1", true, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
