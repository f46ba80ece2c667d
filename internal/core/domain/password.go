package domain

import "strings"

const (
	passwordMinLen = 8
	passwordMaxLen = 32

	passwordSpecialSet = `*.!@$%^&(){}[]:;<>,?/~_+-=|\`
)

// ValidatePassword enforces the signup password policy: 8–32 characters with
// at least one digit, one lowercase letter, one uppercase letter, and one
// character from the fixed special set. Returns ErrPasswordPolicy on any
// violation so callers can reject before touching the store.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return ErrPasswordPolicy
	}

	var digit, lower, upper, special bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecialSet, r):
			special = true
		}
	}

	if !digit || !lower || !upper || !special {
		return ErrPasswordPolicy
	}
	return nil
}
