package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/service"
	"github.com/spec-kit/user-directory/internal/validation"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// AuthHandler exposes signup, signin and signout.
type AuthHandler struct {
	auth       *service.AuthService
	validate   *validation.Validator
	cookieName string
	secure     bool
}

// NewAuthHandler constructs handler. secure controls the cookie Secure flag
// and should be true outside development.
func NewAuthHandler(authService *service.AuthService, validate *validation.Validator, cookieName string, secure bool) *AuthHandler {
	if cookieName == "" {
		cookieName = "token"
	}
	return &AuthHandler{auth: authService, validate: validate, cookieName: cookieName, secure: secure}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := h.validate.Struct(&req); err != nil {
		return err
	}

	user, token, expiresAt, err := h.auth.Signup(c.UserContext(), req.CreateInput())
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, expiresAt)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "user signed up successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// Signin handles POST /auth/signin.
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := h.validate.Struct(&req); err != nil {
		return err
	}

	user, token, expiresAt, err := h.auth.Signin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, expiresAt)
	return c.JSON(fiber.Map{
		"message": "user signed in successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// Signout handles POST /auth/signout. Tokens stay valid until expiry; signout
// only clears the cookie.
func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{
		"message": "user signed out successfully",
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}
