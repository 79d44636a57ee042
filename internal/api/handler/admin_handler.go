package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
)

// AdminHandler serves the role-gated administrative routes. Gating happens
// in the router via RequireRole; these handlers assume it already passed.
type AdminHandler struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
}

func NewAdminHandler(users ports.UserRepository, projects ports.ProjectRepository) *AdminHandler {
	return &AdminHandler{users: users, projects: projects}
}

type adminStatsResponse struct {
	UsersByRole   map[domain.Role]int64 `json:"users_by_role"`
	ProjectsTotal int64                 `json:"projects_total"`
}

type adminUsersResponse struct {
	Users []domain.User `json:"users"`
}

// Stats returns workspace-wide counts. Owner only.
//
// @Summary      Workspace statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminStatsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	usersByRole, err := h.users.CountByRole(ctx)
	if err != nil {
		return err
	}
	projectsTotal, err := h.projects.Count(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminStatsResponse{
		UsersByRole:   usersByRole,
		ProjectsTotal: projectsTotal,
	})
}

// Users lists all accounts. Owners and admins.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}

	return c.JSON(http.StatusOK, adminUsersResponse{Users: users})
}
