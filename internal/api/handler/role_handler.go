package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goals-course/authenticator/internal/core/ports"
)

// RoleHandler serves the role listing endpoint.
type RoleHandler struct {
	users ports.UserService
}

func NewRoleHandler(users ports.UserService) *RoleHandler {
	return &RoleHandler{users: users}
}

// AllRoles lists every role known to the service.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  RoleDTO
// @Router       /api/authenticator/roles [get]
func (h *RoleHandler) AllRoles(c echo.Context) error {
	roles, err := h.users.AllRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleDTOs(roles))
}
