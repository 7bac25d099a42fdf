package vault

import (
	"time"

	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// PlaceholderClaims are carried by client-generated session tokens.
type PlaceholderClaims struct {
	jwt.RegisteredClaims
	Demo bool `json:"demo,omitempty"`
}

// NewPlaceholderToken mints the session token at login time. It stands in
// for a server-issued credential: it is signed with a throwaway key, so
// nothing can verify it, and it is treated as opaque everywhere.
func NewPlaceholderToken(userID string, demo bool, ttl time.Duration) (string, error) {
	id, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, PlaceholderClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Demo: demo,
	})

	key := common.GenerateRandByteArray(32)
	defer common.WipeByteArray(key)

	return token.SignedString(key)
}
