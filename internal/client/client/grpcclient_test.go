package client

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/dmitrijs2005/gophsession/internal/client/models"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeServer struct {
	tokens []string

	loginResp *rpc.LoginResponse
	statusErr error
	upload    *rpc.UploadRequest
	profile   *rpc.UpdateProfileRequest
}

func (f *fakeServer) record(ctx context.Context) {
	md, _ := metadata.FromIncomingContext(ctx)
	f.tokens = append(f.tokens, md.Get(common.AccessTokenHeaderName)...)
}

func (f *fakeServer) Login(ctx context.Context, in *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	f.record(ctx)
	return f.loginResp, nil
}

func (f *fakeServer) UpdateProfile(ctx context.Context, in *rpc.UpdateProfileRequest) (*rpc.UpdateProfileResponse, error) {
	f.record(ctx)
	f.profile = in
	return &rpc.UpdateProfileResponse{Success: true, User: &rpc.User{ID: in.UserID, Name: in.Fields.FirstName, Email: in.Fields.Email}}, nil
}

func (f *fakeServer) ChangePassword(ctx context.Context, in *rpc.ChangePasswordRequest) (*rpc.StatusResponse, error) {
	f.record(ctx)
	if in.CurrentPassword != "old" {
		return &rpc.StatusResponse{Success: false, Error: "Current password is incorrect"}, nil
	}
	return &rpc.StatusResponse{Success: true}, nil
}

func (f *fakeServer) DeleteAccount(ctx context.Context, _ *rpc.DeleteAccountRequest) (*rpc.StatusResponse, error) {
	f.record(ctx)
	return nil, f.statusErr
}

func (f *fakeServer) ResetDemo(ctx context.Context, _ *rpc.ResetDemoRequest) (*rpc.StatusResponse, error) {
	f.record(ctx)
	return &rpc.StatusResponse{Success: false}, nil
}

func (f *fakeServer) Upload(ctx context.Context, in *rpc.UploadRequest) (*rpc.UploadResponse, error) {
	f.record(ctx)
	f.upload = in
	return &rpc.UploadResponse{Success: true, URL: "https://cdn.example.com/" + in.FileName}, nil
}

func (f *fakeServer) Ping(ctx context.Context, _ *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func newTestClient(t *testing.T, f *fakeServer) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	rpc.RegisterAccountServiceServer(srv, f)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewAccountClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCClient_Login(t *testing.T) {
	f := &fakeServer{loginResp: &rpc.LoginResponse{
		Success: true,
		User:    &rpc.User{ID: "1", Name: "Demo User", Email: "demo@example.com", IsDemo: true},
	}}
	c := newTestClient(t, f)

	u, err := c.Login(context.Background(), "demo@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: "1", Name: "Demo User", Email: "demo@example.com", IsDemo: true}, u)
	assert.Empty(t, f.tokens)
}

func TestGRPCClient_LoginRefused(t *testing.T) {
	f := &fakeServer{loginResp: &rpc.LoginResponse{Success: false, Error: "Invalid email or password"}}
	c := newTestClient(t, f)

	_, err := c.Login(context.Background(), "demo@example.com", "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrService))

	var se *common.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Invalid email or password", se.Message)
}

func TestGRPCClient_RefusalWithoutMessage(t *testing.T) {
	c := newTestClient(t, &fakeServer{})

	err := c.ResetDemo(context.Background(), "demo@example.com")
	var se *common.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, common.GenericServiceMessage, se.Message)
}

func TestGRPCClient_TokenAttached(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)
	ctx := context.Background()

	c.SetToken("tok-1")
	require.NoError(t, c.ChangePassword(ctx, "1", "old", "N3wPassword"))

	err := c.ChangePassword(ctx, "1", "wrong", "N3wPassword")
	var se *common.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Current password is incorrect", se.Message)

	assert.Equal(t, []string{"tok-1", "tok-1"}, f.tokens)
}

func TestGRPCClient_UpdateProfileAndUpload(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)
	ctx := context.Background()

	u, err := c.UpdateProfile(ctx, "1", models.ProfileFields{FirstName: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, "Ann", f.profile.Fields.FirstName)

	url, err := c.Upload(ctx, "1", "me.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/me.png", url)
	assert.Equal(t, "image/png", f.upload.ContentType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, f.upload.Data)
}

func TestGRPCClient_Ping(t *testing.T) {
	c := newTestClient(t, &fakeServer{})
	require.NoError(t, c.Ping(context.Background()))
}

func TestGRPCClient_MapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "x"), ErrUnauthorized},
		{"permission", status.Error(codes.PermissionDenied, "x"), ErrUnauthorized},
		{"unavailable", status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.mapError(tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, common.ErrService)
		})
	}

	err := c.mapError(status.Error(codes.Internal, "boom"))
	assert.ErrorIs(t, err, common.ErrService)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, c.mapError(nil))
}

func TestGRPCClient_StatusErrorFromServer(t *testing.T) {
	f := &fakeServer{statusErr: status.Error(codes.Unavailable, "down")}
	c := newTestClient(t, f)

	err := c.DeleteAccount(context.Background(), "1", "pw")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWithAccessToken_ReplacesExisting(t *testing.T) {
	ctx := metadata.NewOutgoingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, "old"))
	ctx = withAccessToken(ctx, "new")
	md, _ := metadata.FromOutgoingContext(ctx)
	assert.Equal(t, []string{"new"}, md.Get(common.AccessTokenHeaderName))

	ctx = withAccessToken(ctx, "")
	md, _ = metadata.FromOutgoingContext(ctx)
	assert.Empty(t, md.Get(common.AccessTokenHeaderName))
}
