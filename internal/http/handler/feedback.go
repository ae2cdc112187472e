package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"interview-dashboard/internal/feedback"
	"interview-dashboard/internal/http/middleware"
)

// FeedbackHandler records and lists interview feedback.
type FeedbackHandler struct {
	svc *feedback.Service
}

func NewFeedbackHandler(svc *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Submit records a feedback form under the authenticated panelist.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var form feedback.Form
	if err := c.Bind(&form); err != nil {
		return respondError(c, http.StatusBadRequest, "malformed request body")
	}

	entry, err := h.svc.Submit(form, middleware.Username(c))
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, entry)
}

// List returns all recorded feedback, optionally filtered by candidate. The
// route requires the full feedback-review permission; panelists use Mine.
func (h *FeedbackHandler) List(c echo.Context) error {
	if raw := c.QueryParam("candidate_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "candidate_id must be a number")
		}
		return c.JSON(http.StatusOK, h.svc.ForCandidate(id))
	}
	return c.JSON(http.StatusOK, h.svc.All())
}

// Mine returns the caller's own submissions regardless of role.
func (h *FeedbackHandler) Mine(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.SubmittedBy(middleware.Username(c)))
}
