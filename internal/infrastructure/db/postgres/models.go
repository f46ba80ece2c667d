package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/goals-course/authenticator/internal/core/domain"
)

type userModel struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Username  string      `gorm:"uniqueIndex;not null"`
	Password  string      `gorm:"not null"`
	FirstName string      ``
	LastName  string      ``
	Enabled   bool        `gorm:"not null;default:false"`
	Roles     []roleModel `gorm:"many2many:user_roles"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type roleModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title string    `gorm:"uniqueIndex;not null"`
}

func (roleModel) TableName() string { return "roles" }

type refreshTokenModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Token      string    `gorm:"uniqueIndex;not null"`
	ExpiryDate time.Time `gorm:"not null"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

func toUserModel(u *domain.User) *userModel {
	return &userModel{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.PasswordHash,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Enabled:   u.Enabled,
		Roles:     toRoleModels(u.Roles),
	}
}

func (m *userModel) toDomain() *domain.User {
	roles := make([]domain.Role, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, *r.toDomain())
	}
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.Password,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Enabled:      m.Enabled,
		Roles:        roles,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toRoleModels(roles []domain.Role) []roleModel {
	out := make([]roleModel, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleModel{ID: r.ID, Title: r.Title})
	}
	return out
}

func (m *roleModel) toDomain() *domain.Role {
	return &domain.Role{ID: m.ID, Title: m.Title}
}

func toRefreshTokenModel(t *domain.RefreshToken) *refreshTokenModel {
	return &refreshTokenModel{
		ID:         t.ID,
		UserID:     t.UserID,
		Token:      t.Token,
		ExpiryDate: t.ExpiryDate,
	}
}

func (m *refreshTokenModel) toDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:         m.ID,
		UserID:     m.UserID,
		Token:      m.Token,
		ExpiryDate: m.ExpiryDate,
	}
}
