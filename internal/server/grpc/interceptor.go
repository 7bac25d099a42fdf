package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/rpc"
	"github.com/dmitrijs2005/gophsession/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// methods that act on a signed-in account
var protectedMethods = map[string]struct{}{
	rpc.FullMethod(rpc.MethodUpdateProfile):  {},
	rpc.FullMethod(rpc.MethodChangePassword): {},
	rpc.FullMethod(rpc.MethodDeleteAccount):  {},
	rpc.FullMethod(rpc.MethodUpload):         {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.SubjectFromToken(accessToken, s.now())
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}

// authorize checks that the token subject names the account the request targets.
func authorize(ctx context.Context, userID string) error {
	subject, _ := ctx.Value(userIDKey).(string)
	if subject == "" {
		return status.Error(codes.Unauthenticated, "missing token")
	}
	if subject != userID {
		return status.Error(codes.PermissionDenied, "token does not match account")
	}
	return nil
}
