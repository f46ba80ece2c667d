package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

type refreshTokenService struct {
	repo   ports.RefreshTokenRepository
	users  ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
	now    func() time.Time
}

// NewRefreshTokenService returns the store-backed refresh token lifecycle.
func NewRefreshTokenService(
	repo ports.RefreshTokenRepository,
	users ports.UserRepository,
	tokens ports.TokenService,
	log zerolog.Logger,
) ports.RefreshTokenService {
	return &refreshTokenService{
		repo:   repo,
		users:  users,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

// Rotate issues a new refresh token and replaces the user's existing row.
// The delete-and-insert runs in one transaction inside the repository, so two
// concurrent logins for the same user still leave exactly one row.
func (s *refreshTokenService) Rotate(ctx context.Context, user *domain.User) (string, error) {
	s.log.Info().Str("user_id", user.ID.String()).Msg("rotating refresh token")

	signed, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return "", err
	}

	row := &domain.RefreshToken{
		ID:         uuid.New(),
		UserID:     user.ID,
		Token:      signed,
		ExpiryDate: s.now().Add(s.tokens.RefreshTokenTTL()),
	}

	if err := s.repo.Replace(ctx, row); err != nil {
		return "", err
	}
	return signed, nil
}

// Consume resolves a presented refresh token to its owning user. Expired rows
// are deleted on sight so a retry of the same token reports it as invalid.
func (s *refreshTokenService) Consume(ctx context.Context, token string) (*domain.User, error) {
	row, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if row.Expired(s.now()) {
		if err := s.repo.Delete(ctx, row.ID); err != nil {
			return nil, err
		}
		s.log.Info().Str("user_id", row.UserID.String()).Msg("refresh token expired, row deleted")
		return nil, domain.ErrRefreshTokenExpired
	}

	return s.users.FindByID(ctx, row.UserID)
}

func (s *refreshTokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteByUserID(ctx, userID)
}
