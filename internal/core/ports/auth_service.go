package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/goals-course/authenticator/internal/core/domain"
)

// Authenticator verifies username/password credentials against the store.
type Authenticator interface {
	// Authenticate returns the full user (roles included) on success,
	// domain.ErrUserNotFound for an unknown username, and
	// domain.ErrBadCredentials for a password mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// RefreshTokenService owns the single-active-refresh-token-per-user lifecycle.
type RefreshTokenService interface {
	// Rotate issues a fresh refresh token for the user and atomically replaces
	// any existing one.
	Rotate(ctx context.Context, user *domain.User) (string, error)
	// Consume resolves a presented refresh token to its owning user. An unknown
	// token yields domain.ErrRefreshTokenInvalid; an expired one is deleted and
	// yields domain.ErrRefreshTokenExpired.
	Consume(ctx context.Context, token string) (*domain.User, error)
	// RevokeAllForUser deletes the user's refresh token if any. Idempotent.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// SignUpInput carries the fields of a signup request.
type SignUpInput struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Session is the result of a successful login, signup, or refresh.
type Session struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// SessionService orchestrates the login, signup, refresh, and logout flows.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	SignUp(ctx context.Context, input SignUpInput) (*Session, error)
	// Refresh exchanges a live refresh token for a new access/refresh pair.
	// The returned Session carries no user.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// UserService exposes user and role read/management operations.
type UserService interface {
	UserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// ChangeUserRoles replaces the user's role set with exactly the roles named
	// by roleIDs and returns the resulting set.
	ChangeUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) ([]domain.Role, error)
	AllRoles(ctx context.Context) ([]domain.Role, error)
}

// LoginThrottle rate-limits credential attempts per username.
type LoginThrottle interface {
	// Allow records an attempt and reports whether it is within the window limit.
	Allow(ctx context.Context, username string) (bool, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}
