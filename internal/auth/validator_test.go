package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims and lowercases", input: "  Test@Example.COM  ", want: "test@example.com"},
		{name: "already normalized", input: "a@b.com", want: "a@b.com"},
		{name: "tabs and newlines", input: "\tA@B.com\n", want: "a@b.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.NormalizeEmail(tt.input))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "user.name+tag@example.co", "x_y@sub.domain.org"}
	for _, email := range valid {
		assert.NoError(t, auth.ValidateEmail(email), email)
	}

	invalid := []string{"", "no-at-sign", "@no-local.com", "spaces in@local.com"}
	for _, email := range invalid {
		err := auth.ValidateEmail(email)
		require.Error(t, err, email)

		var serviceErr *errors.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, 400, serviceErr.Status)
		assert.Equal(t, "The provided email format is not valid.", serviceErr.Message)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{
			name:     "valid minimum",
			password: "abc123",
		},
		{
			name:     "no digit",
			password: "password",
			wantMsg:  "Password must be at least 6 characters long and contain at least one digit.",
		},
		{
			name:     "too short",
			password: "a1b2",
			wantMsg:  "Password must be at least 6 characters long and contain at least one digit.",
		},
		{
			name:     "too long",
			password: strings.Repeat("a", 128) + "1",
			wantMsg:  "Password cannot exceed 128 characters.",
		},
		{
			name:     "exactly max length",
			password: strings.Repeat("a", 127) + "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidatePassword(tt.password)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			var serviceErr *errors.ServiceError
			require.ErrorAs(t, err, &serviceErr)
			assert.Equal(t, 400, serviceErr.Status)
			assert.Equal(t, tt.wantMsg, serviceErr.Message)
		})
	}
}
