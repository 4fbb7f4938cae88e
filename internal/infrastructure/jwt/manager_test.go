package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(NewJWTManager("secret", time.Minute, time.Hour))

	token, err := svc.GenerateAccessToken("user-1", entity.UserRoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.UserRoleAdmin, claims.Role)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := NewJWTService(NewJWTManager("secret", time.Minute, time.Hour))

	refresh, err := svc.GenerateRefreshToken("user-1", entity.UserRoleMember)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestExpiredToken(t *testing.T) {
	mgr := NewJWTManager("secret", time.Minute, time.Hour)
	issued := time.Now().Add(-2 * time.Minute)
	mgr.now = func() time.Time { return issued }
	token, err := mgr.GenerateAccessToken("user-1", "member")
	require.NoError(t, err)

	mgr.now = time.Now
	_, err = mgr.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecret(t *testing.T) {
	token, err := NewJWTManager("a", time.Minute, time.Hour).GenerateAccessToken("user-1", "member")
	require.NoError(t, err)

	_, err = NewJWTManager("b", time.Minute, time.Hour).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
