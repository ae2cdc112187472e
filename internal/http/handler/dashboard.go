package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"interview-dashboard/internal/dashboard"
)

// DashboardHandler serves the landing-page metrics.
type DashboardHandler struct {
	svc *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Metrics computes the dashboard summary from the current candidate pool.
func (h *DashboardHandler) Metrics(c echo.Context) error {
	metrics, err := h.svc.Metrics(c.Request().Context())
	if err != nil {
		return respondUpstreamError(c, http.StatusBadGateway, msgUpstreamUnavailable)
	}
	return c.JSON(http.StatusOK, metrics)
}
