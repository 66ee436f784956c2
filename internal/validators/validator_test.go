package validators_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/validators"
)

func TestValidate(t *testing.T) {
	v := validators.NewValidator()

	require.NoError(t, v.Validate(&models.SigninRequest{Email: "a@example.com", Password: "x"}))

	err := v.Validate(&models.SignupRequest{Email: "nope", Password: "short"})
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Contains(t, err.Error(), "email: must be a valid email address")
	require.Contains(t, err.Error(), "password: must be at least 8 characters")

	err = v.Validate(&models.CreateCommentRequest{})
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, "text: cannot be blank", err.Error())
}
