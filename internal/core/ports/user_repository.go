package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/goals-course/authenticator/internal/core/domain"
)

// UserRepository defines the persistence surface for user accounts.
// Create must map a unique-constraint violation on username to
// domain.ErrUserExists; lookups return domain.ErrUserNotFound when absent.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// ReplaceRoles atomically replaces the user's role set with exactly the
	// given roles (full replace, not union).
	ReplaceRoles(ctx context.Context, userID uuid.UUID, roles []domain.Role) error
}

// RoleRepository defines the persistence surface for roles.
type RoleRepository interface {
	FindAll(ctx context.Context) ([]domain.Role, error)
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Role, error)
	// Create maps a unique-constraint violation on title to the existing row,
	// so concurrent first boots of multiple replicas converge instead of crashing.
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
