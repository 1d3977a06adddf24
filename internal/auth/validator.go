package auth

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

const maxPasswordLength = 128

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9_!#$%&'*+/=?`{|}~^.-]+@[a-zA-Z0-9.-]+$")

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// All storage and lookups operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the normalized address against the accepted format.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errors.WithMessage(errors.ErrInvalidCredentialFormat,
			"The provided email format is not valid.")
	}
	return nil
}

// ValidatePassword enforces the password policy: at most 128 characters,
// at least 6 characters and at least one digit. Error messages are part of
// the API contract and must not change.
func ValidatePassword(password string) error {
	if len(password) > maxPasswordLength {
		return errors.WithMessage(errors.ErrInvalidCredentialFormat,
			"Password cannot exceed 128 characters.")
	}
	if len(password) < 6 || !containsDigit(password) {
		return errors.WithMessage(errors.ErrInvalidCredentialFormat,
			"Password must be at least 6 characters long and contain at least one digit.")
	}
	return nil
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
