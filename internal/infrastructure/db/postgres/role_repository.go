package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goals-course/authenticator/internal/core/domain"
)

// RoleRepository is the gorm adapter for roles.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]domain.Role, error) {
	var models []roleModel
	if err := r.db.WithContext(ctx).Order("title").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find all roles: %w", err)
	}
	return rolesToDomain(models), nil
}

func (r *RoleRepository) FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Role, error) {
	if len(ids) == 0 {
		return []domain.Role{}, nil
	}
	var models []roleModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find roles by ids: %w", err)
	}
	return rolesToDomain(models), nil
}

// Create inserts the role. When another replica seeded the same title first,
// the unique index fires and the existing row is returned instead.
func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	m := roleModel{ID: role.ID, Title: role.Title}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.findByTitle(ctx, role.Title)
		}
		return nil, fmt.Errorf("create role: %w", err)
	}
	return m.toDomain(), nil
}

func (r *RoleRepository) findByTitle(ctx context.Context, title string) (*domain.Role, error) {
	var m roleModel
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role by title: %w", err)
	}
	return m.toDomain(), nil
}

func rolesToDomain(models []roleModel) []domain.Role {
	out := make([]domain.Role, 0, len(models))
	for _, m := range models {
		out = append(out, *m.toDomain())
	}
	return out
}
