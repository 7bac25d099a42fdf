package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/gophsession/internal/client/cookies"
	"github.com/dmitrijs2005/gophsession/internal/client/models"
	"github.com/dmitrijs2005/gophsession/internal/client/preferences"
	"github.com/dmitrijs2005/gophsession/internal/client/profile"
	"github.com/dmitrijs2005/gophsession/internal/client/storage"
	"github.com/dmitrijs2005/gophsession/internal/client/vault"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

// fakeClient implements client.Client for the gate and account tests.
type fakeClient struct {
	users    map[string]models.User
	password string

	token string
	calls []string

	resetErr  error
	deleteErr error
	uploadURL string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		users: map[string]models.User{
			"demo@example.com": {ID: "demo-1", Name: "Demo User", Email: "demo@example.com", IsDemo: true},
			"ann@example.com":  {ID: "ann-1", Name: "Ann", Email: "ann@example.com"},
		},
		password:  "password123",
		uploadURL: "https://cdn.example.com/avatars/x.png",
	}
}

func (f *fakeClient) Close() error                   { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return nil }
func (f *fakeClient) SetToken(token string)          { f.token = token }

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.User, error) {
	f.calls = append(f.calls, "login")
	u, ok := f.users[email]
	if !ok || password != f.password {
		return nil, common.NewServiceError("Invalid email or password", nil)
	}
	return &u, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, userID string, fields models.ProfileFields) (*models.User, error) {
	f.calls = append(f.calls, "update_profile")
	return &models.User{ID: userID, Name: fields.FirstName + " " + fields.LastName, Email: fields.Email}, nil
}

func (f *fakeClient) ChangePassword(_ context.Context, _, current, next string) error {
	f.calls = append(f.calls, "change_password")
	if current != f.password {
		return common.NewServiceError("Current password is incorrect", nil)
	}
	f.password = next
	return nil
}

func (f *fakeClient) DeleteAccount(context.Context, string, string) error {
	f.calls = append(f.calls, "delete_account")
	return f.deleteErr
}

func (f *fakeClient) ResetDemo(context.Context, string) error {
	f.calls = append(f.calls, "reset_demo")
	return f.resetErr
}

func (f *fakeClient) Upload(context.Context, string, string, string, []byte) (string, error) {
	f.calls = append(f.calls, "upload")
	return f.uploadURL, nil
}

type recordingNavigator struct {
	redirects int
}

func (n *recordingNavigator) RedirectToLogin(context.Context) { n.redirects++ }

// failingJar refuses every write, as a full cookie store would.
type failingJar struct {
	cookies.Jar
}

func (failingJar) SetCookie(context.Context, *http.Cookie) error {
	return errors.New("jar full")
}

type env struct {
	store  *storage.MemoryStore
	jar    cookies.Jar
	client *fakeClient
	nav    *recordingNavigator
	cache  *profile.Cache
	vault  *vault.Vault
	prefs  *preferences.Store
	gate   *Gate
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWith(t, storage.NewMemoryStore(), cookies.NewMemoryJar())
}

func newEnvWith(t *testing.T, store *storage.MemoryStore, jar cookies.Jar) *env {
	t.Helper()
	e := &env{store: store, jar: jar, client: newFakeClient(), nav: &recordingNavigator{}}
	log := nopLogger()
	e.vault = vault.New(store, jar)
	e.cache = profile.New(store, e.vault, log)
	e.prefs = preferences.New(store, jar, log)
	e.gate = NewGate(e.client, e.cache, e.vault, e.prefs, e.nav, log)
	return e
}

// restart builds a fresh gate over the same storage, like a new process.
func (e *env) restart() *Gate {
	log := nopLogger()
	return NewGate(e.client, profile.New(e.store, e.vault, log), e.vault, e.prefs, e.nav, log)
}

func nopLogger() logging.Logger { return logging.Nop() }
