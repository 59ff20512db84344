package handlers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidations(t *testing.T) {
	t.Run("account number tag", func(t *testing.T) {
		v := validator.New()
		require.NoError(t, registerValidations(v, customValidations))

		assert.NoError(t, v.Var("411000", "account_number"))
		assert.Error(t, v.Var("41A", "account_number"))
		assert.Error(t, v.Var("4", "account_number"))
	})

	t.Run("invalid tag is reported", func(t *testing.T) {
		err := registerValidations(validator.New(), map[string]validator.Func{
			"": func(validator.FieldLevel) bool { return true },
		})

		assert.Error(t, err)
	})

	t.Run("gin engine", func(t *testing.T) {
		assert.NoError(t, registerValidators())
	})
}
