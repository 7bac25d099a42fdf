// Package grpc serves the account service over gRPC with the JSON codec.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/logging"
	"github.com/dmitrijs2005/gophsession/internal/rpc"
	"github.com/dmitrijs2005/gophsession/internal/server/accounts"
	"google.golang.org/grpc"
)

// AccountService is the domain layer the handlers call.
type AccountService interface {
	Login(ctx context.Context, email, password string) (*accounts.Account, error)
	UpdateProfile(ctx context.Context, id string, p accounts.Profile) (*accounts.Account, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	DeleteAccount(ctx context.Context, id, password string) error
	ResetDemo(ctx context.Context, email string) error
	UploadAvatar(ctx context.Context, id, fileName, contentType string, data []byte) (string, error)
}

type GRPCServer struct {
	address         string
	accounts        AccountService
	logger          logging.Logger
	now             func() time.Time
	shutdownTimeout time.Duration
}

type Option func(*GRPCServer)

// WithShutdownTimeout bounds the graceful stop; in-flight calls still running
// afterwards are cancelled.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *GRPCServer) { s.shutdownTimeout = d }
}

func NewGRPCServer(address string, l logging.Logger, as AccountService, opts ...Option) *GRPCServer {
	s := &GRPCServer{
		address:         address,
		logger:          l.With("module", "grpc_server"),
		accounts:        as,
		now:             time.Now,
		shutdownTimeout: 5 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewServer builds a grpc.Server with the interceptors and the account
// service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	rpc.RegisterAccountServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.stop(srv)
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *GRPCServer) stop(srv *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn(context.Background(), "Graceful stop timed out, forcing", "timeout", s.shutdownTimeout)
		srv.Stop()
	}
}
