package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	SectionID       int    `json:"section_id" validate:"gt=0"`
}

func TestCustomValidator_FormatsByJSONName(t *testing.T) {
	t.Parallel()

	v := NewValidator()

	err := v.Validate(&signupRequest{
		Username:        "ab",
		Email:           "not-an-email",
		Password:        "longenough",
		ConfirmPassword: "different!",
	})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "username must be at least 3 characters", errs["username"])
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "confirm_password must match password", errs["confirm_password"])
	assert.Equal(t, "section_id must be greater than 0", errs["section_id"])
	assert.NotContains(t, errs, "password")
}

func TestCustomValidator_Valid(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	err := v.Validate(&signupRequest{
		Username:        "reader",
		Email:           "reader@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		SectionID:       1,
	})
	assert.NoError(t, err)
	assert.Empty(t, v.FormatValidationErrors(err))
}
