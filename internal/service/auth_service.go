package service

import (
	"context"
	"time"

	"github.com/spec-kit/user-directory/internal/auth"
	"github.com/spec-kit/user-directory/internal/domain"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// AuthService coordinates signup and signin flows: directory operations plus
// session token issuance.
type AuthService struct {
	users  *UserService
	tokens *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(users *UserService, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup creates the account and issues its first session token.
func (s *AuthService) Signup(ctx context.Context, input CreateInput) (*domain.User, string, time.Time, error) {
	user, err := s.users.Create(ctx, input)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, expiresAt, nil
}

// Signin verifies credentials and issues a session token.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
