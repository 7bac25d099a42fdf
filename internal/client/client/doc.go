// Package client talks to the account service.
//
// Client is the transport-agnostic contract used by the session layer;
// GRPCClient implements it over gRPC with the JSON codec from package rpc.
// The current session token is attached to every call as "access_token"
// metadata by a unary interceptor.
//
// Every failure is returned as a *common.ServiceError. A refusal carries the
// service's own message. Transport failures map to ErrUnavailable or
// ErrUnauthorized, wrapped with the generic message, so callers can still
// match them with errors.Is.
package client
