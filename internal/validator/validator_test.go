package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=60"`
	Condition   string `json:"condition" validate:"omitempty,oneof=new like_new good fair worn"`
}

func TestValidate(t *testing.T) {
	v := New()

	t.Run("valid struct passes", func(t *testing.T) {
		err := v.Validate(signupForm{Email: "nora@example.com", DisplayName: "Nora"})
		assert.NoError(t, err)
	})

	t.Run("failures keyed by json tag", func(t *testing.T) {
		err := v.Validate(signupForm{Email: "not-an-email", DisplayName: "N", Condition: "mint"})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Errors, "email")
		assert.Contains(t, verr.Errors, "display_name")
		assert.Contains(t, verr.Errors, "condition")
		assert.NotContains(t, verr.Errors, "DisplayName")
	})

	t.Run("messages name the rule", func(t *testing.T) {
		err := v.Validate(signupForm{DisplayName: "Nora"})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "This field is required", verr.Errors["email"])
	})
}
