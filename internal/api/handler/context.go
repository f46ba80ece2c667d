package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goals-course/authenticator/internal/api/middleware"
	"github.com/goals-course/authenticator/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the auth guard and performs
// a fast-fail check before any service call: a handler behind RequireAuth
// should always find one, so its absence means the route wiring is wrong.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}
