package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/client/models"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const callTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *rpc.AccountServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()

	return invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
}

func NewAccountClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(extra ...grpc.DialOption) error {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}
	conn, err := grpc.NewClient(s.endpointURL, append(opts, extra...)...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewAccountServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return common.NewServiceError("", ErrUnavailable)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	if !resp.Success || resp.User == nil {
		return nil, refused(resp.Error)
	}
	return toUser(resp.User), nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, userID string, f models.ProfileFields) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req := &rpc.UpdateProfileRequest{
		UserID: userID,
		Fields: rpc.ProfileFields{
			FirstName: f.FirstName,
			LastName:  f.LastName,
			Email:     f.Email,
			Phone:     f.Phone,
			Timezone:  f.Timezone,
			Language:  f.Language,
			Currency:  f.Currency,
		},
	}
	resp, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	if !resp.Success || resp.User == nil {
		return nil, refused(resp.Error)
	}
	return toUser(resp.User), nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, userID, current, next string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.ChangePassword(ctx, &rpc.ChangePasswordRequest{
		UserID:          userID,
		CurrentPassword: current,
		NewPassword:     next,
	})
	return s.status(resp, err)
}

func (s *GRPCClient) DeleteAccount(ctx context.Context, userID, password string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.DeleteAccount(ctx, &rpc.DeleteAccountRequest{UserID: userID, Password: password})
	return s.status(resp, err)
}

func (s *GRPCClient) ResetDemo(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.ResetDemo(ctx, &rpc.ResetDemoRequest{Email: email})
	return s.status(resp, err)
}

func (s *GRPCClient) Upload(ctx context.Context, userID, fileName, contentType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Upload(ctx, &rpc.UploadRequest{
		UserID:      userID,
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return "", s.mapError(err)
	}
	if !resp.Success || resp.URL == "" {
		return "", refused(resp.Error)
	}
	return resp.URL, nil
}

func (s *GRPCClient) status(resp *rpc.StatusResponse, err error) error {
	if err != nil {
		return s.mapError(err)
	}
	if !resp.Success {
		return refused(resp.Error)
	}
	return nil
}

func refused(msg string) error {
	return common.NewServiceError(msg, nil)
}

func toUser(u *rpc.User) *models.User {
	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, IsDemo: u.IsDemo}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return common.NewServiceError("", ErrUnauthorized)
	case codes.Unavailable, codes.DeadlineExceeded:
		return common.NewServiceError("", ErrUnavailable)
	default:
		return common.NewServiceError("", fmt.Errorf("rpc error: %w", err))
	}
}
