package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

type sample struct {
	Name     string `json:"name" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func TestStructValid(t *testing.T) {
	v := New()
	err := v.Struct(&sample{Name: "Alice Smith", Email: "alice@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	v := New()
	err := v.Struct(&sample{Name: "Al", Email: "nope", Password: "pw", Role: "superuser"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	assert.Contains(t, domainErr.Details, "name")
	assert.Contains(t, domainErr.Details, "email")
	assert.Contains(t, domainErr.Details, "password")
	assert.Contains(t, domainErr.Details, "role")
}

func TestStructMessages(t *testing.T) {
	v := New()
	err := v.Struct(&sample{Name: "Al", Email: "alice@example.com", Password: "secret1"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "must be at least 3 characters", domainErr.Details["name"])
}
