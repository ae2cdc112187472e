package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"interview-dashboard/internal/candidate"
	"interview-dashboard/internal/dashboard"
)

const msgUpstreamUnavailable = "candidate data is temporarily unavailable"

// CandidateHandler serves the candidate directory backed by the upstream
// provider.
type CandidateHandler struct {
	dir      *candidate.Client
	dash     *dashboard.Service
	pageSize int
}

func NewCandidateHandler(dir *candidate.Client, dash *dashboard.Service, pageSize int) *CandidateHandler {
	return &CandidateHandler{dir: dir, dash: dash, pageSize: pageSize}
}

// List returns one page of the directory. Page and limit are clamped rather
// than rejected; a bad value is a UI bug, not a user error.
func (h *CandidateHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = h.pageSize
	}

	result, err := h.dir.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondUpstreamError(c, http.StatusBadGateway, msgUpstreamUnavailable)
	}
	return c.JSON(http.StatusOK, result)
}

// Search runs a sanitized free-text search over the directory.
func (h *CandidateHandler) Search(c echo.Context) error {
	result, err := h.dir.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondUpstreamError(c, http.StatusBadGateway, msgUpstreamUnavailable)
	}
	return c.JSON(http.StatusOK, result)
}

// Detail returns the full profile view for one candidate: record, schedule
// and feedback posts assembled in one round trip.
func (h *CandidateHandler) Detail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "candidate id must be a number")
	}

	detail, err := h.dash.CandidateDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "candidate not found")
		}
		return respondUpstreamError(c, http.StatusBadGateway, msgUpstreamUnavailable)
	}
	return c.JSON(http.StatusOK, detail)
}
