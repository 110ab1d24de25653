package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/service"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// SignupRequest payload for new accounts. Role is optional and defaults to
// "user".
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Normalize trims the name, canonicalizes the email and applies the default
// role. Run before validation so length checks see the trimmed values.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	if r.Role == "" {
		r.Role = string(domain.RoleUser)
	}
}

// CreateInput converts the request into service input.
func (r *SignupRequest) CreateInput() service.CreateInput {
	return service.CreateInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// SigninRequest payload for login.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=128"`
}

// Normalize canonicalizes the email.
func (r *SigninRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

// UpdateUserRequest carries a partial update; absent fields stay unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=3,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=5,max=128"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Normalize trims and canonicalizes present fields.
func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	if r.Email != nil {
		normalized := normalizeEmail(*r.Email)
		r.Email = &normalized
	}
}

// Validate enforces the at-least-one-field rule the request-level validator
// cannot express.
func (r *UpdateUserRequest) Validate() error {
	if r.Name == nil && r.Email == nil && r.Password == nil && r.Role == nil {
		return apperrors.NewValidationError("validation failed", map[string]any{
			"body": "at least one field must be provided for update",
		})
	}
	return nil
}

// ChangesRole reports whether the update includes a role change.
func (r *UpdateUserRequest) ChangesRole() bool {
	return r.Role != nil
}

// UpdateInput converts the request into service input.
func (r *UpdateUserRequest) UpdateInput() service.UpdateInput {
	input := service.UpdateInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		input.Role = &role
	}
	return input
}

// UserResponse is the public view of an account. The password hash is never
// part of it.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse shapes a domain user for responses.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserListResponse shapes a list of domain users.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
