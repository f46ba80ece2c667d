package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goals-course/authenticator/internal/core/domain"
)

// UserRepository is the gorm adapter for user accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("username = ?", username).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := toUserModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return r.FindByID(ctx, m.ID)
}

// ReplaceRoles swaps the user's role set for exactly the given roles inside
// one transaction, so concurrent reassignments cannot interleave into a mixed
// join state.
func (r *UserRepository) ReplaceRoles(ctx context.Context, userID uuid.UUID, roles []domain.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := userModel{ID: userID}
		models := toRoleModels(roles)
		if err := tx.Model(&m).Association("Roles").Replace(&models); err != nil {
			return fmt.Errorf("replace roles: %w", err)
		}
		return nil
	})
}
