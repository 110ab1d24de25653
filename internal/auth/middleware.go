package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/domain"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

const identityKey = "auth_identity"

// Identity represents the authenticated caller, derived from verified token
// claims. It lives only for the request that produced it.
type Identity struct {
	ID    int64
	Email string
	Role  domain.Role
}

// IsAdmin reports whether the identity carries the admin tier.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == domain.RoleAdmin
}

// SessionMiddleware extracts and verifies session tokens. Identity comes from
// the verified claims alone; there is no store round-trip, so a token stays
// valid until expiry.
type SessionMiddleware struct {
	tokens     *TokenManager
	cookieName string
	logger     *zap.Logger
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, cookieName string, logger *zap.Logger) *SessionMiddleware {
	if cookieName == "" {
		cookieName = "token"
	}
	return &SessionMiddleware{tokens: tokens, cookieName: cookieName, logger: logger}
}

// Require enforces authentication for protected routes.
func (m *SessionMiddleware) Require(c *fiber.Ctx) error {
	token := m.extractToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("authentication token is required")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(identityKey, identityFromClaims(claims))
	return c.Next()
}

// Optional attaches an identity when a valid token is present and otherwise
// lets the request through anonymously. It never blocks.
func (m *SessionMiddleware) Optional(c *fiber.Ctx) error {
	token := m.extractToken(c)
	if token == "" {
		return c.Next()
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		m.logger.Warn("discarding invalid session token", zap.Error(err))
		return c.Next()
	}

	c.Locals(identityKey, identityFromClaims(claims))
	return c.Next()
}

// extractToken reads the session token from the cookie or, failing that, the
// Authorization header. The cookie takes precedence.
func (m *SessionMiddleware) extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(m.cookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func identityFromClaims(claims *Claims) *Identity {
	return &Identity{ID: claims.ID, Email: claims.Email, Role: claims.Role}
}

// IdentityFromContext retrieves the authenticated caller, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
