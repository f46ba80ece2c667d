package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

type sessionService struct {
	users         ports.UserRepository
	authenticator ports.Authenticator
	tokens        ports.TokenService
	refresh       ports.RefreshTokenService
	throttle      ports.LoginThrottle
	log           zerolog.Logger
}

// NewSessionService wires the login, signup, refresh, and logout flows.
// throttle may be nil when no rate limiting backend is configured.
func NewSessionService(
	users ports.UserRepository,
	authenticator ports.Authenticator,
	tokens ports.TokenService,
	refresh ports.RefreshTokenService,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) ports.SessionService {
	return &sessionService{
		users:         users,
		authenticator: authenticator,
		tokens:        tokens,
		refresh:       refresh,
		throttle:      throttle,
		log:           log,
	}
}

// Login authenticates the credentials, then issues a fresh access token and
// rotates the refresh token. Ordering matters: no token is minted before the
// credentials check succeeds.
func (s *sessionService) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, username)
		if err != nil {
			// Throttle backend trouble must not lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if !ok {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}
	return session, nil
}

// SignUp validates the password policy before any store access, creates the
// user (enabled, no roles), and issues tokens exactly as Login does.
func (s *sessionService) SignUp(ctx context.Context, input ports.SignUpInput) (*ports.Session, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// The unique index on username backstops the pre-check: a concurrent signup
	// with the same username surfaces here as ErrUserExists.
	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Enabled:      true,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user signed up")
	return s.issueSession(ctx, user)
}

// Refresh consumes the presented refresh token and issues a new pair. The old
// token is gone after this call either way: Consume deletes expired rows and
// Rotate replaces live ones.
func (s *sessionService) Refresh(ctx context.Context, refreshToken string) (*ports.Session, error) {
	user, err := s.refresh.Consume(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.refresh.Rotate(ctx, user)
	if err != nil {
		return nil, err
	}

	return &ports.Session{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// Logout revokes the user's refresh token. Revoking when none exists is a
// no-op, so logout never fails for a stale session.
func (s *sessionService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.refresh.RevokeAllForUser(ctx, userID)
}

func (s *sessionService) issueSession(ctx context.Context, user *domain.User) (*ports.Session, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.Rotate(ctx, user)
	if err != nil {
		return nil, err
	}

	return &ports.Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
