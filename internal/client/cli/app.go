package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/client/client"
	"github.com/dmitrijs2005/gophsession/internal/client/config"
	"github.com/dmitrijs2005/gophsession/internal/client/cookies"
	"github.com/dmitrijs2005/gophsession/internal/client/preferences"
	"github.com/dmitrijs2005/gophsession/internal/client/profile"
	"github.com/dmitrijs2005/gophsession/internal/client/services"
	"github.com/dmitrijs2005/gophsession/internal/client/storage"
	"github.com/dmitrijs2005/gophsession/internal/client/vault"
	"github.com/dmitrijs2005/gophsession/internal/logging"
	"github.com/redis/go-redis/v9"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	client  client.Client
	gate    *services.Gate
	account *services.AccountService
	prefs   *preferences.Store
	reader  *bufio.Reader
	out     io.Writer

	closers []io.Closer

	mu            sync.Mutex
	mode          Mode
	loginRequired bool
}

// NewApp opens local storage, connects the cookie jar and the account
// service and assembles the session layer.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	jar, jarCloser, err := newJar(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient, err := client.NewAccountClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config: c,
		logger: logger,
		client: apiClient,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.closers = append(a.closers, apiClient, dbCloser{db})
	if jarCloser != nil {
		a.closers = append(a.closers, jarCloser)
	}
	a.wire(storage.NewSQLiteStore(db), jar)
	return a, nil
}

func newJar(ctx context.Context, c *config.Config) (cookies.Jar, io.Closer, error) {
	if c.RedisAddr == "" {
		return cookies.NewMemoryJar(), nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis connection error: %w", err)
	}
	return cookies.NewRedisJar(rdb, c.CookieKeyPrefix), rdb, nil
}

// wire builds the session layer over store and jar. The App itself is the
// gate's navigator.
func (a *App) wire(store storage.Store, jar cookies.Jar) {
	tokens := vault.New(store, jar)
	cache := profile.New(store, tokens, a.logger)
	a.prefs = preferences.New(store, jar, a.logger, preferences.WithProduction(a.config.Production))
	a.gate = services.NewGate(a.client, cache, tokens, a.prefs, a, a.logger,
		services.WithTokenTTLDays(a.config.TokenTTLDays),
		services.WithLoadingView(func(context.Context) error {
			a.println("Loading session...")
			return nil
		}),
	)
	a.account = services.NewAccountService(a.gate, a.client, cache, a.prefs, a.logger)
}

type dbCloser struct{ db *sql.DB }

func (d dbCloser) Close() error { return d.db.Close() }

func (a *App) Run(ctx context.Context) {
	defer a.close()
	a.Root(ctx)
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

// RedirectToLogin implements services.Navigator. The REPL shows the login
// prompt once the current command returns.
func (a *App) RedirectToLogin(context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loginRequired = true
}

func (a *App) takeRedirect() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := a.loginRequired
	a.loginRequired = false
	return r
}

func (a *App) isLoggedIn() bool {
	return a.gate.IsAuthenticated()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.client.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
