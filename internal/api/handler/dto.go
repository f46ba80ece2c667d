package handler

import (
	"github.com/google/uuid"

	"github.com/goals-course/authenticator/internal/core/domain"
)

// RoleDTO is the outward representation of a role.
type RoleDTO struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// UserDTO is the outward representation of a user. The password hash is never
// part of it.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Enabled   bool      `json:"enabled"`
	Roles     []RoleDTO `json:"roles"`
}

// LoginResponse is returned by both login and signup.
type LoginResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

// TokenRefreshResponse is returned by the refresh endpoint.
type TokenRefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func toRoleDTO(r domain.Role) RoleDTO {
	return RoleDTO{ID: r.ID, Title: r.Title}
}

func toRoleDTOs(roles []domain.Role) []RoleDTO {
	out := make([]RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleDTO(r))
	}
	return out
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Enabled:   u.Enabled,
		Roles:     toRoleDTOs(u.Roles),
	}
}
