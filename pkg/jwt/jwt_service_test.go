package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
)

func TestUserTokenRoundTrip(t *testing.T) {
	svc := NewJWTServiceWithKey("test-secret")

	token := svc.GenerateTokenUser("user-123", "user")
	require.NotEmpty(t, token)

	userID, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "user", role)
}

func TestUserToken_WrongKey(t *testing.T) {
	token := NewJWTServiceWithKey("test-secret").GenerateTokenUser("user-123", "user")

	_, _, err := NewJWTServiceWithKey("other-secret").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	svc := NewJWTServiceWithKey("test-secret")

	token, err := svc.GenerateVerificationToken(map[string]any{
		"email": "dana@example.com",
	}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateVerificationToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", claims["email"])
}

func TestVerificationToken_Expired(t *testing.T) {
	svc := NewJWTServiceWithKey("test-secret")

	token, err := svc.GenerateVerificationToken(map[string]any{
		"email": "dana@example.com",
	}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateVerificationToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerificationToken_Garbage(t *testing.T) {
	svc := NewJWTServiceWithKey("test-secret")

	_, err := svc.ValidateVerificationToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
