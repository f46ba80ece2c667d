package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goals-course/authenticator/internal/api/metrics"
	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

// accessClaims is the payload of an access token: registered claims plus the
// user id and role titles the guard needs to authorize requests.
type accessClaims struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenServiceConfig carries the signing material and lifetimes for both token
// types. Access and refresh secrets must differ; refresh tokens are signed
// with HS512 so that a leaked access secret cannot forge refresh tokens and
// vice versa.
type TokenServiceConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type tokenService struct {
	cfg TokenServiceConfig
	log zerolog.Logger
	now func() time.Time
}

// NewTokenService returns the JWT-backed ports.TokenService.
func NewTokenService(cfg TokenServiceConfig, log zerolog.Logger) ports.TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &tokenService{cfg: cfg, log: log, now: time.Now}
}

func (s *tokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := s.now()
	claims := accessClaims{
		UserID: user.ID.String(),
		Roles:  user.RoleTitles(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

func (s *tokenService) GenerateRefreshToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return token, nil
}

// Validate verifies signature and expiry of an access token. Every failure
// collapses to false; the classified reason is logged and counted, never
// propagated.
func (s *tokenService) Validate(token string) bool {
	if token == "" {
		s.rejectToken("empty", errors.New("token string is empty"))
		return false
	}

	_, err := s.parseAccess(token)
	if err == nil {
		return true
	}

	s.rejectToken(classifyTokenError(err), err)
	return false
}

func (s *tokenService) rejectToken(reason string, err error) {
	s.log.Warn().Err(err).Str("reason", reason).Msg("access token rejected")
	metrics.TokenValidationFailuresTotal.WithLabelValues(reason).Inc()
}

// classifyTokenError buckets golang-jwt parse errors for logs and metrics.
func classifyTokenError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenUnverifiable), errors.Is(err, jwt.ErrInvalidKeyType):
		return "unsupported"
	default:
		return "invalid"
	}
}

func (s *tokenService) parseAccess(token string) (*accessClaims, error) {
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(s.cfg.AccessSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func (s *tokenService) UserID(token string) (uuid.UUID, error) {
	claims, err := s.parseAccess(token)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse userId claim: %w", err)
	}
	return id, nil
}

func (s *tokenService) Username(token string) (string, error) {
	claims, err := s.parseAccess(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *tokenService) ExpiresAt(token string) (time.Time, error) {
	claims, err := s.parseAccess(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, jwt.ErrTokenInvalidClaims
	}
	return claims.ExpiresAt.Time, nil
}

func (s *tokenService) RefreshTokenTTL() time.Duration {
	return s.cfg.RefreshTTL
}
