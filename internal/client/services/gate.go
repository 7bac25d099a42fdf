package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/client/client"
	"github.com/dmitrijs2005/gophsession/internal/client/models"
	"github.com/dmitrijs2005/gophsession/internal/client/vault"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

type Status int

const (
	StatusInitializing Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Welcome tells the UI which greeting the last login earned.
type Welcome int

const (
	WelcomeNone Welcome = iota
	WelcomeUser
	WelcomeDemo
)

var (
	// ErrAlreadyAuthenticated is returned by Login when a session is active.
	// Switching users requires a logout first.
	ErrAlreadyAuthenticated = errors.New("already authenticated")

	ErrNotAuthenticated = fmt.Errorf("%w: not authenticated", common.ErrPolicy)
)

// View is anything the gate can protect.
type View func(ctx context.Context) error

// Navigator is told when the user has to be sent to the login view.
type Navigator interface {
	RedirectToLogin(ctx context.Context)
}

type ProfileCache interface {
	Hydrate(ctx context.Context) (*models.Session, error)
	Commit(ctx context.Context, session *models.Session) error
	MergeProfile(ctx context.Context, patch models.UserPatch) (*models.User, error)
	Clear(ctx context.Context) error
}

type TokenWriter interface {
	Write(ctx context.Context, token string, ttlDays int) error
}

type PreferencePurger interface {
	PurgeForUser(ctx context.Context, userID string) error
}

// TokenFunc mints the session token for a freshly logged in user.
type TokenFunc func(userID string, demo bool, ttl time.Duration) (string, error)

type Gate struct {
	client   client.Client
	profiles ProfileCache
	tokens   TokenWriter
	prefs    PreferencePurger
	nav      Navigator
	logger   logging.Logger

	ttlDays  int
	newToken TokenFunc
	loading  View

	// authMu serializes Login, Logout and Reload so the status checked at
	// the start of Login still holds when its writes land.
	authMu sync.Mutex

	mu      sync.Mutex
	status  Status
	session *models.Session
	welcome Welcome
}

type GateOption func(*Gate)

// WithTokenTTLDays sets the cookie lifetime of the session token.
func WithTokenTTLDays(days int) GateOption {
	return func(g *Gate) {
		if days > 0 {
			g.ttlDays = days
		}
	}
}

func WithTokenFunc(f TokenFunc) GateOption {
	return func(g *Gate) {
		g.newToken = f
	}
}

// WithLoadingView sets what Guard shows while the session is unresolved.
func WithLoadingView(v View) GateOption {
	return func(g *Gate) {
		g.loading = v
	}
}

func NewGate(c client.Client, profiles ProfileCache, tokens TokenWriter, prefs PreferencePurger, nav Navigator, logger logging.Logger, opts ...GateOption) *Gate {
	g := &Gate{
		client:   c,
		profiles: profiles,
		tokens:   tokens,
		prefs:    prefs,
		nav:      nav,
		logger:   logger.With("module", "session_gate"),
		ttlDays:  common.DefaultTokenTTLDays,
		newToken: vault.NewPlaceholderToken,
		loading:  func(context.Context) error { return nil },
		status:   StatusInitializing,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Init resolves the session from storage. Only the first call does work;
// later calls return the resolved status. A storage failure resolves to
// Unauthenticated and is returned.
func (g *Gate) Init(ctx context.Context) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusInitializing {
		return g.status, nil
	}

	s, err := g.profiles.Hydrate(ctx)
	if err != nil {
		g.logger.Error(ctx, "session hydration failed", "error", err)
		g.status = StatusUnauthenticated
		return g.status, err
	}
	if s == nil {
		g.status = StatusUnauthenticated
		return g.status, nil
	}

	g.session = s
	g.status = StatusAuthenticated
	g.client.SetToken(s.Token)
	g.logger.Info(ctx, "session restored", "user_id", s.User.ID)
	return g.status, nil
}

func validateCredentials(email, password string) error {
	if email == "" {
		return common.NewValidationError("email", "required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return common.NewValidationError("email", "malformed email address")
	}
	if password == "" {
		return common.NewValidationError("password", "required")
	}
	return nil
}

// Login verifies the credentials with the account service and, on success,
// commits the user record and writes a freshly minted token. A failed token
// write rolls back the user record. On refusal the returned error is a
// *common.ServiceError carrying the service message and nothing is written.
func (g *Gate) Login(ctx context.Context, email, password string) (bool, error) {
	g.authMu.Lock()
	defer g.authMu.Unlock()

	if _, err := g.Init(ctx); err != nil {
		return false, err
	}
	if g.IsAuthenticated() {
		return false, ErrAlreadyAuthenticated
	}
	if err := validateCredentials(email, password); err != nil {
		return false, err
	}

	user, err := g.client.Login(ctx, email, password)
	if err != nil {
		return false, err
	}
	if !user.Valid() {
		return false, common.NewServiceError("", nil)
	}

	token, err := g.newToken(user.ID, user.IsDemo, time.Duration(g.ttlDays)*24*time.Hour)
	if err != nil {
		return false, fmt.Errorf("token generation error: %w", err)
	}

	session := &models.Session{User: *user, Token: token}
	if err := g.profiles.Commit(ctx, session); err != nil {
		return false, err
	}
	if err := g.tokens.Write(ctx, token, g.ttlDays); err != nil {
		if rbErr := g.profiles.Clear(ctx); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = session
	g.status = StatusAuthenticated
	g.welcome = WelcomeUser
	if user.IsDemo {
		g.welcome = WelcomeDemo
	}
	g.client.SetToken(token)

	g.logger.Info(ctx, "logged in", "user_id", user.ID, "demo", user.IsDemo)
	return true, nil
}

// Logout purges the current user's preferences, clears the cached profile
// and the token, and redirects to the login view. The stored session is
// resolved first, so a gate that was never initialized still purges the
// right user. Every step runs; their errors are joined. Calling it again is
// harmless.
func (g *Gate) Logout(ctx context.Context) error {
	g.authMu.Lock()
	defer g.authMu.Unlock()

	var errs []error
	if _, err := g.Init(ctx); err != nil {
		errs = append(errs, fmt.Errorf("resolve session: %w", err))
	}
	userID := g.ActiveUserID()

	if err := g.prefs.PurgeForUser(ctx, userID); err != nil {
		errs = append(errs, fmt.Errorf("purge preferences: %w", err))
	}
	if err := g.profiles.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear profile: %w", err))
	}

	g.reset(StatusUnauthenticated)
	g.logger.Info(ctx, "logged out", "user_id", userID)

	g.nav.RedirectToLogin(ctx)
	return errors.Join(errs...)
}

func (g *Gate) reset(s Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = s
	g.session = nil
	g.welcome = WelcomeNone
	g.client.SetToken("")
}

func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *Gate) IsAuthenticated() bool {
	return g.Status() == StatusAuthenticated
}

// Session returns a copy of the active session, or nil.
func (g *Gate) Session() *models.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return nil
	}
	s := *g.session
	return &s
}

// ActiveUserID is the id preferences are namespaced by; empty without a
// session.
func (g *Gate) ActiveUserID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return ""
	}
	return g.session.User.ID
}

func (g *Gate) Welcome() Welcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.welcome
}

// setUser reflects an updated user record into the live session.
func (g *Gate) setUser(u models.User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session != nil && g.session.User.ID == u.ID {
		g.session.User = u
	}
}

// Guard wraps a protected view. While the session is unresolved the
// loading view runs; without a session the navigator is told to show the
// login view and view is never called.
func (g *Gate) Guard(view View) View {
	return func(ctx context.Context) error {
		switch g.Status() {
		case StatusInitializing:
			return g.loading(ctx)
		case StatusAuthenticated:
			return view(ctx)
		default:
			g.nav.RedirectToLogin(ctx)
			return nil
		}
	}
}

// ResetDemoAccount asks the account service to restore the demo account and
// then reloads the session. It is refused with common.ErrPolicy, without
// any service call, unless the active user is the demo account.
func (g *Gate) ResetDemoAccount(ctx context.Context) error {
	s := g.Session()
	if s == nil || !s.User.IsDemo {
		return fmt.Errorf("%w: reset is only available for the demo account", common.ErrPolicy)
	}

	if err := g.client.ResetDemo(ctx, s.User.Email); err != nil {
		return err
	}
	if err := g.prefs.PurgeForUser(ctx, s.User.ID); err != nil {
		g.logger.Warn(ctx, "demo preferences not purged", "error", err)
	}

	g.logger.Info(ctx, "demo account reset", "user_id", s.User.ID)
	return g.Reload(ctx)
}

// Reload drops the in-memory session and hydrates it again from storage.
func (g *Gate) Reload(ctx context.Context) error {
	g.authMu.Lock()
	defer g.authMu.Unlock()

	g.reset(StatusInitializing)
	_, err := g.Init(ctx)
	return err
}
