package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"interview-dashboard/internal/rbac"
)

// RolesHandler exposes the role/permission matrix for the role-management
// screen.
type RolesHandler struct{}

func NewRolesHandler() *RolesHandler {
	return &RolesHandler{}
}

type roleEntry struct {
	Role        rbac.Role         `json:"role"`
	Permissions []rbac.Permission `json:"permissions"`
}

// Matrix lists every known role with its granted permissions.
func (h *RolesHandler) Matrix(c echo.Context) error {
	entries := make([]roleEntry, 0, len(rbac.Roles))
	for _, role := range rbac.Roles {
		entries = append(entries, roleEntry{
			Role:        role,
			Permissions: rbac.PermissionsFor(role),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"roles": entries})
}
