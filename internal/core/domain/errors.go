package domain

import "errors"

var (
	// ErrUserNotFound is returned when a username or user id has no matching record.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials is returned on a password mismatch. Handlers must render
	// it identically to ErrUserNotFound so usernames cannot be enumerated.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrUserExists is returned when a signup username is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrRoleNotFound is returned when a role id has no matching record.
	ErrRoleNotFound = errors.New("role not found")

	// ErrRefreshTokenInvalid is returned when a refresh token has no matching row.
	ErrRefreshTokenInvalid = errors.New("refresh token is not valid")
	// ErrRefreshTokenExpired is returned when a refresh token row exists but has
	// passed its expiry; the row is deleted as a side effect.
	ErrRefreshTokenExpired = errors.New("refresh token was expired, please make a new signin request")

	// ErrPasswordPolicy is returned when a signup password fails the policy.
	ErrPasswordPolicy = errors.New("password does not satisfy the password policy")
	// ErrTooManyAttempts is returned when login attempts for a username exceed
	// the throttle window limit.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
