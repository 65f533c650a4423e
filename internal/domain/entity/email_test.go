package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailAddress(t *testing.T) {
	t.Run("accepts and trims valid addresses", func(t *testing.T) {
		email, err := NewEmailAddress("  test@example.com ")
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", email.String())

		_, err = NewEmailAddress("user1@mail.co.kr")
		require.NoError(t, err)
	})

	t.Run("rejects blank", func(t *testing.T) {
		_, err := NewEmailAddress("")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "email is required", verr.Reason)
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, raw := range []string{"test", "test@", "@example.com", "test@example", "test@example.c", "first.last@example.com", "a b@example.com"} {
			_, err := NewEmailAddress(raw)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), raw)
			assert.Equal(t, "email format is invalid", verr.Reason)
		}
	})
}
