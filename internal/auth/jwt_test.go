package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	token, err := m.Generate("alice")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.MemberID)
	assert.Equal(t, "alice", claims.Subject)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager(testSecret, -time.Minute)

	token, err := m.Generate("alice")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := NewJWTManager(testSecret, time.Hour).Generate("alice")
	require.NoError(t, err)

	_, err = NewJWTManager("another-secret-another-secret-xx", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{MemberID: "mallory"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager(testSecret, time.Hour).Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RequiresMemberID(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)
	token, err := m.Generate("")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
