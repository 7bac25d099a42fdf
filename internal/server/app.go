// Package server wires the account server: storage backends, the account
// service with its demo seed, and the gRPC endpoint with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophsession/internal/logging"
	"github.com/dmitrijs2005/gophsession/internal/server/accounts"
	"github.com/dmitrijs2005/gophsession/internal/server/avatars"
	"github.com/dmitrijs2005/gophsession/internal/server/config"

	gs "github.com/dmitrijs2005/gophsession/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	accounts *accounts.Service
	closers  []func() error
}

func newLogger(c *config.Config) logging.Logger {
	if c.LogJSON {
		return logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	}
	return logging.NewTextLogger(os.Stdout, slog.LevelInfo)
}

// NewApp opens the configured backends and seeds the demo account.
// An empty DatabaseDSN keeps accounts in memory; an empty S3Bucket keeps
// avatars in memory.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	app := &App{config: c, logger: newLogger(c)}

	repo, err := app.initRepository(ctx)
	if err != nil {
		return nil, err
	}

	store, err := app.initAvatars(ctx)
	if err != nil {
		_ = app.close()
		return nil, err
	}

	app.accounts = accounts.NewService(repo, store, app.logger.With("module", "accounts"),
		accounts.DefaultDemo(c.DemoEmail, c.DemoPassword))

	if err := app.accounts.SeedDemo(ctx); err != nil {
		_ = app.close()
		return nil, fmt.Errorf("seed demo account: %w", err)
	}

	return app, nil
}

func (app *App) initRepository(ctx context.Context) (accounts.Repository, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "No database DSN configured, accounts are kept in memory")
		return accounts.NewMemoryRepository(), nil
	}

	db, err := accounts.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.closers = append(app.closers, db.Close)
	return accounts.NewPostgresRepository(db), nil
}

func (app *App) initAvatars(ctx context.Context) (avatars.Storage, error) {
	c := app.config
	if c.S3Bucket == "" {
		return avatars.NewMemoryStorage(c.AvatarBaseURL), nil
	}

	s, err := avatars.NewS3Storage(ctx, avatars.S3Config{
		AccessKey: c.S3RootUser,
		SecretKey: c.S3RootPassword,
		Region:    c.S3Region,
		Endpoint:  c.S3BaseEndpoint,
		Bucket:    c.S3Bucket,
		PublicURL: c.AvatarBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("avatar storage init error: %w", err)
	}
	return s, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts,
		gs.WithShutdownTimeout(app.config.ShutdownTimeout))

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return errors.Join(runErr, app.close())
}

func (app *App) close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i]())
	}
	app.closers = nil
	return errors.Join(errs...)
}
