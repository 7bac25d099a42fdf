package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/rpc"
	"github.com/dmitrijs2005/gophsession/internal/server/accounts"
)

func toUser(a *accounts.Account) *rpc.User {
	return &rpc.User{
		ID:     a.ID,
		Name:   a.Name(),
		Email:  a.Email,
		Avatar: a.Avatar,
		IsDemo: a.IsDemo,
	}
}

// failure turns a service error into the message placed in a success=false
// response. Unexpected errors are logged and reported generically.
func (s *GRPCServer) failure(ctx context.Context, op string, err error) string {
	if msg, ok := accounts.PublicMessage(err); ok {
		s.logger.Debug(ctx, "request refused", "op", op, "reason", msg)
		return msg
	}
	s.logger.Error(ctx, "request failed", "op", op, "error", err)
	return common.GenericServiceMessage
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	a, err := s.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return &rpc.LoginResponse{Error: s.failure(ctx, "login", err)}, nil
	}

	s.logger.Info(ctx, "Logged in", "id", a.ID, "demo", a.IsDemo)
	return &rpc.LoginResponse{Success: true, User: toUser(a)}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.UpdateProfileResponse, error) {
	if err := authorize(ctx, req.UserID); err != nil {
		return nil, err
	}

	f := req.Fields
	a, err := s.accounts.UpdateProfile(ctx, req.UserID, accounts.Profile{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Timezone:  f.Timezone,
		Language:  f.Language,
		Currency:  f.Currency,
	})
	if err != nil {
		return &rpc.UpdateProfileResponse{Error: s.failure(ctx, "update_profile", err)}, nil
	}
	return &rpc.UpdateProfileResponse{Success: true, User: toUser(a)}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.StatusResponse, error) {
	if err := authorize(ctx, req.UserID); err != nil {
		return nil, err
	}

	if err := s.accounts.ChangePassword(ctx, req.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return &rpc.StatusResponse{Error: s.failure(ctx, "change_password", err)}, nil
	}
	return &rpc.StatusResponse{Success: true}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *rpc.DeleteAccountRequest) (*rpc.StatusResponse, error) {
	if err := authorize(ctx, req.UserID); err != nil {
		return nil, err
	}

	if err := s.accounts.DeleteAccount(ctx, req.UserID, req.Password); err != nil {
		return &rpc.StatusResponse{Error: s.failure(ctx, "delete_account", err)}, nil
	}
	return &rpc.StatusResponse{Success: true}, nil
}

func (s *GRPCServer) ResetDemo(ctx context.Context, req *rpc.ResetDemoRequest) (*rpc.StatusResponse, error) {
	if err := s.accounts.ResetDemo(ctx, req.Email); err != nil {
		return &rpc.StatusResponse{Error: s.failure(ctx, "reset_demo", err)}, nil
	}
	return &rpc.StatusResponse{Success: true}, nil
}

func (s *GRPCServer) Upload(ctx context.Context, req *rpc.UploadRequest) (*rpc.UploadResponse, error) {
	if err := authorize(ctx, req.UserID); err != nil {
		return nil, err
	}

	url, err := s.accounts.UploadAvatar(ctx, req.UserID, req.FileName, req.ContentType, req.Data)
	if err != nil {
		return &rpc.UploadResponse{Error: s.failure(ctx, "upload", err)}, nil
	}
	return &rpc.UploadResponse{Success: true, URL: url}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}
