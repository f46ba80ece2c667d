package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

// PrincipalKey is the echo context key under which Guard stores the resolved
// principal for the lifetime of one request.
const PrincipalKey = "principal"

// Guard resolves the bearer token into a per-request principal.
//
// The guard never rejects by itself: requests with a missing, non-bearer, or
// invalid token pass through unauthenticated and the route-level rules
// (RequireAuth, RequireRole) decide whether that is acceptable.
func Guard(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if !tokens.Validate(token) {
				return next(c)
			}

			username, err := tokens.Username(token)
			if err != nil {
				log.Warn().Err(err).Msg("validated token with unreadable subject")
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), username)
			if err != nil {
				// The record vanished between issuance and use. The request
				// continues unauthenticated.
				if errors.Is(err, domain.ErrUserNotFound) {
					log.Warn().Str("username", username).Msg("token subject no longer exists")
					return next(c)
				}
				return err
			}

			c.Set(PrincipalKey, domain.PrincipalOf(user))
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal resolved by Guard, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}
