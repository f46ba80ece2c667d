package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/goals-course/authenticator/internal/core/domain"
)

// RefreshTokenRepository defines the persistence surface for refresh tokens.
// The store guarantees at most one row per user.
type RefreshTokenRepository interface {
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	// Replace deletes any existing row for token.UserID and inserts the new row
	// within a single transaction, preserving the one-row-per-user invariant
	// under concurrent logins.
	Replace(ctx context.Context, token *domain.RefreshToken) error
	// Delete removes a single row by id. Deleting a missing row is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByUserID removes the user's row if any. Idempotent.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
