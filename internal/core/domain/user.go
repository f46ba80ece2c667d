package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role titles form a small fixed set seeded at startup.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// SeedRoleTitles returns the role set the service guarantees to exist.
func SeedRoleTitles() []string {
	return []string{RoleAdmin, RoleUser}
}

// Role is a named authority grant attached to users.
type Role struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// User models an account in the authenticator store.
// The password hash never leaves the service.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Enabled      bool      `json:"enabled"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasRole reports whether the user carries the given role title.
func (u *User) HasRole(title string) bool {
	for _, r := range u.Roles {
		if r.Title == title {
			return true
		}
	}
	return false
}

// RoleTitles returns the titles of all roles granted to the user.
func (u *User) RoleTitles() []string {
	titles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		titles = append(titles, r.Title)
	}
	return titles
}

// RefreshToken is the single live refresh credential of a user.
// At most one row exists per user at any time.
type RefreshToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Token      string
	ExpiryDate time.Time
}

// Expired reports whether the token's expiry is in the past at the given instant.
func (t *RefreshToken) Expired(now time.Time) bool {
	return t.ExpiryDate.Before(now)
}

// Principal is the immutable per-request identity resolved by the auth guard.
// It is a value derived from the stored user, never the store entity itself.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Roles    []string
}

// HasRole reports whether the principal carries the given role title.
func (p Principal) HasRole(title string) bool {
	for _, r := range p.Roles {
		if r == title {
			return true
		}
	}
	return false
}

// PrincipalOf maps a stored user to its request-scoped principal value.
func PrincipalOf(u *User) Principal {
	return Principal{
		UserID:   u.ID,
		Username: u.Username,
		Roles:    u.RoleTitles(),
	}
}
