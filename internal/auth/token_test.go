package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/domain"
)

func testTokenManager(secret string) *TokenManager {
	return NewTokenManager(config.AuthConfig{
		JWTSecret:             secret,
		AccessTokenTTLMinutes: 60,
	})
}

func TestIssueAndVerify(t *testing.T) {
	tm := testTokenManager("test-secret")
	user := &domain.User{ID: 7, Email: "alice@example.com", Role: domain.RoleAdmin}

	token, expiresAt, err := tm.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := testTokenManager("secret-a").Issue(&domain.User{ID: 1, Email: "a@b.c", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = testTokenManager("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := testTokenManager("test-secret").Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := testTokenManager("test-secret")

	claims := &Claims{
		ID:    1,
		Email: "a@b.c",
		Role:  domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.Verify(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	claims := &Claims{ID: 1, Email: "a@b.c", Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = testTokenManager("test-secret").Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
