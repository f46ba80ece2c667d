package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

type authenticator struct {
	users ports.UserRepository
}

// NewAuthenticator returns the store-backed credential verifier.
func NewAuthenticator(users ports.UserRepository) ports.Authenticator {
	return &authenticator{users: users}
}

// Authenticate verifies the password against the stored bcrypt hash. The two
// failure modes stay distinct here for logging; the HTTP layer renders both as
// the same unauthorized response.
func (a *authenticator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrBadCredentials
	}

	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrBadCredentials
	}

	return user, nil
}

// HashPassword produces the bcrypt hash stored for a user password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
