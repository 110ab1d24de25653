package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-directory/internal/api/dto"
	"github.com/spec-kit/user-directory/internal/auth"
	"github.com/spec-kit/user-directory/internal/service"
	"github.com/spec-kit/user-directory/internal/validation"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// UsersHandler exposes directory CRUD.
type UsersHandler struct {
	users    *service.UserService
	validate *validation.Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, validate *validation.Validator) *UsersHandler {
	return &UsersHandler{users: userService, validate: validate}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "users fetched successfully",
		"users":   dto.NewUserListResponse(users),
		"count":   len(users),
	})
}

// GetByID handles GET /users/:id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "user fetched successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// Update handles PUT /users/:id. Callers may update their own record; only
// admins may update others or change roles.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	if err := h.validate.Struct(&req); err != nil {
		return err
	}

	identity, _ := auth.IdentityFromContext(c)
	if err := auth.CanUpdate(identity, id, req.ChangesRole()); err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), id, req.UpdateInput())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "user updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	identity, _ := auth.IdentityFromContext(c)
	if err := auth.CanDelete(identity, id); err != nil {
		return err
	}

	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "user deleted successfully",
		"id":      id,
	})
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("validation failed", map[string]any{
			"id": "must be a positive numeric id",
		})
	}
	return id, nil
}
