// Package common contains shared constants and sentinel errors used across
// gophsession components.
package common

import "time"

// AccessTokenHeaderName is the gRPC metadata key used to carry the session
// token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Durable store keys owned by the session layer.
const (
	UserKey      = "user"
	AuthTokenKey = "authToken"
)

// AuthTokenCookie is the cookie-channel name of the session token.
const AuthTokenCookie = "authToken"

// Cookie lifetimes.
const (
	DefaultTokenTTLDays = 7
	SettingsCookieTTL   = 365 * 24 * time.Hour
)
