package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goals-course/authenticator/internal/api/metrics"
	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

// AuthHandler serves the signup, login, refresh, and logout endpoints.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type signUpRequest struct {
	Username  string `json:"username" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SignUp registers a new account and opens a session for it.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "New account details"
// @Success      200   {object}  LoginResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/authenticator/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.SignUp(c.Request().Context(), ports.SignUpInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, LoginResponse{
		User:         toUserDTO(session.User),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

// Login authenticates credentials and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  LoginResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/authenticator/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		// An unknown username must be indistinguishable from a wrong password.
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrBadCredentials
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, LoginResponse{
		User:         toUserDTO(session.User),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

// Refresh exchanges a live refresh token for a fresh token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Current refresh token"
// @Success      200   {object}  TokenRefreshResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/authenticator/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues(refreshResult(err)).Inc()
		return err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, TokenRefreshResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

// Logout revokes the caller's refresh token. Idempotent: succeeds even when no
// session existed.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /api/authenticator/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), principal.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Session finished"})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrBadCredentials), errors.Is(err, domain.ErrUserNotFound):
		return "unauthorized"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}

func signupResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrPasswordPolicy):
		return "rejected"
	default:
		return "error"
	}
}

func refreshResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrRefreshTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrRefreshTokenInvalid):
		return "invalid"
	default:
		return "error"
	}
}
