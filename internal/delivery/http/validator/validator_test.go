package validator

import (
	"testing"

	"homestay/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	UserName string `json:"username" validate:"required"`
	Password string `json:"password,omitempty" validate:"required,min=8"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	err := New().Validate(&loginRequest{Password: "short"})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	require.Len(t, validationErrs, 2)
	assert.Equal(t, "username", validationErrs[0].Field())
	assert.Equal(t, "password", validationErrs[1].Field())
	assert.Equal(t, "min", validationErrs[1].Tag())
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, New().Validate(&loginRequest{UserName: "alice", Password: "long-enough"}))
}
