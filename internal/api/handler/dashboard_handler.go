package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
)

const recentEventsLimit = 20

// DashboardHandler serves the activity feed backing the dashboard.
type DashboardHandler struct {
	events ports.EventRepository
}

func NewDashboardHandler(events ports.EventRepository) *DashboardHandler {
	return &DashboardHandler{events: events}
}

type dashboardEventsResponse struct {
	Events []domain.ActivityEvent `json:"events"`
}

// Events returns the caller's most recent activity, newest first.
//
// @Summary      Recent activity feed
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardEventsResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/events [get]
func (h *DashboardHandler) Events(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return err
	}

	events, err := h.events.ListRecent(c.Request().Context(), sess.SubjectID, recentEventsLimit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []domain.ActivityEvent{}
	}

	return c.JSON(http.StatusOK, dashboardEventsResponse{Events: events})
}
