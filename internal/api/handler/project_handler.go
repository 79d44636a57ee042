package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service  ports.ProjectService
	recorder ActivityRecorder
}

func NewProjectHandler(service ports.ProjectService, recorder ActivityRecorder) *ProjectHandler {
	return &ProjectHandler{service: service, recorder: recorder}
}

type createProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

type projectListResponse struct {
	Projects []domain.Project `json:"projects"`
}

// List returns the projects visible to the caller.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  projectListResponse
// @Failure      401  {object}  errorResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}

	projects, err := h.service.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []domain.Project{}
	}

	return c.JSON(http.StatusOK, projectListResponse{Projects: projects})
}

// Create creates a project owned by the caller.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), sess, ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	if h.recorder != nil {
		h.recorder.Record(domain.ActivityEvent{
			ActorID:   sess.SubjectID,
			Action:    domain.ActionProjectCreated,
			Subject:   project.ID,
			Timestamp: time.Now().UTC(),
		})
	}

	return c.JSON(http.StatusCreated, project)
}
