package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goals-course/authenticator/internal/core/domain"
)

// RefreshTokenRepository is the gorm adapter for refresh tokens. The unique
// index on user_id enforces at most one row per user at the store level.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var m refreshTokenModel
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return m.toDomain(), nil
}

// Replace upserts the row keyed on user_id. A delete-then-insert pair would
// race under concurrent logins: the loser's DELETE matches zero rows and its
// INSERT then trips the unique index. ON CONFLICT keeps the at-most-one-row
// invariant and lets the last writer win instead of failing.
func (r *RefreshTokenRepository) Replace(ctx context.Context, token *domain.RefreshToken) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "token", "expiry_date"}),
		}).
		Create(toRefreshTokenModel(token)).Error
	if err != nil {
		return fmt.Errorf("replace refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&refreshTokenModel{}).Error; err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&refreshTokenModel{}).Error; err != nil {
		return fmt.Errorf("delete refresh token by user: %w", err)
	}
	return nil
}
