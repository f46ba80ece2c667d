package ports

import (
	"time"

	"github.com/google/uuid"

	"github.com/goals-course/authenticator/internal/core/domain"
)

// TokenService signs and verifies the JWT credentials issued by the service.
//
// Access and refresh tokens use separate secrets and MAC strengths (HS256 vs
// HS512) so that leaking one secret cannot forge the other token type.
type TokenService interface {
	GenerateAccessToken(user *domain.User) (string, error)
	GenerateRefreshToken(user *domain.User) (string, error)

	// Validate verifies signature and expiry of an access token. Malformed,
	// expired, unsupported, and empty tokens all yield false; the reason is
	// logged and counted but never surfaced.
	Validate(token string) bool

	// Claim extractors. Behavior is undefined for tokens that did not pass
	// Validate; callers must validate first.
	UserID(token string) (uuid.UUID, error)
	Username(token string) (string, error)
	ExpiresAt(token string) (time.Time, error)

	RefreshTokenTTL() time.Duration
}
