package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

type userService struct {
	users ports.UserRepository
	roles ports.RoleRepository
}

// NewUserService returns the user/role read and management operations.
func NewUserService(users ports.UserRepository, roles ports.RoleRepository) ports.UserService {
	return &userService{users: users, roles: roles}
}

func (s *userService) UserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ChangeUserRoles replaces the user's role set with exactly the roles named by
// roleIDs. Unknown ids are dropped silently, matching the lookup-by-ids store
// semantics; the result is the set actually assigned.
func (s *userService) ChangeUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) ([]domain.Role, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.FindAllByIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}

	if err := s.users.ReplaceRoles(ctx, user.ID, roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *userService) AllRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.FindAll(ctx)
}
