package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/goals-course/authenticator/internal/core/ports"
)

// UserHandler serves the user read and role management endpoints.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CurrentUser returns the authenticated caller's profile, re-read from the
// store so it reflects role changes made after the token was issued.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserDTO
// @Failure      401  {object}  map[string]string
// @Router       /api/authenticator/users/current [get]
func (h *UserHandler) CurrentUser(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.UserByID(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDTO(user))
}

// UserByID returns a user's profile by id.
//
// @Summary      User by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  UserDTO
// @Failure      404     {object}  map[string]string
// @Router       /api/authenticator/users/{userId} [get]
func (h *UserHandler) UserByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.users.UserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDTO(user))
}

// ChangeUserRoles replaces a user's role set with exactly the submitted roles.
//
// @Summary      Change user roles
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string    true  "User id"
// @Param        body    body      []string  true  "Role ids"
// @Success      200     {array}   RoleDTO
// @Failure      404     {object}  map[string]string
// @Router       /api/authenticator/users/{userId}/roles [post]
func (h *UserHandler) ChangeUserRoles(c echo.Context) error {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var roleIDs []uuid.UUID
	if err := c.Bind(&roleIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	roles, err := h.users.ChangeUserRoles(c.Request().Context(), id, roleIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleDTOs(roles))
}
