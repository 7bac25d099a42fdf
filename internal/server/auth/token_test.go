package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/client/vault"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectFromToken_PlaceholderToken(t *testing.T) {
	tok, err := vault.NewPlaceholderToken("user-123", false, 24*time.Hour)
	require.NoError(t, err)

	sub, err := SubjectFromToken(tok, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestSubjectFromToken_Expired(t *testing.T) {
	tok, err := vault.NewPlaceholderToken("user-123", true, time.Hour)
	require.NoError(t, err)

	_, err = SubjectFromToken(tok, time.Now().Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSubjectFromToken_Invalid(t *testing.T) {
	_, err := SubjectFromToken("not-a-token", time.Now())
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = SubjectFromToken(noSubject, time.Now())
	assert.ErrorIs(t, err, ErrInvalidToken)
}
