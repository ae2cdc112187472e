package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"interview-dashboard/internal/auth"
	"interview-dashboard/internal/candidate"
	"interview-dashboard/internal/http/middleware"
)

// NewHTTPErrorHandler maps errors that escape handlers to JSON responses.
// Sentinel errors get their proper status; anything unrecognized is a
// sanitized 500 so internals never leak to the browser.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			message = fmt.Sprintf("%v", httpErr.Message)
		case errors.Is(err, auth.ErrInvalidCredentials):
			code = http.StatusUnauthorized
			message = "invalid credentials"
		case errors.Is(err, auth.ErrSuperseded):
			code = http.StatusConflict
			message = "a newer login attempt is in progress"
		case errors.Is(err, candidate.ErrNotFound):
			code = http.StatusNotFound
			message = "candidate not found"
		}

		requestID := middleware.GetRequestID(c)

		if code >= 500 {
			logger.Error("request failed",
				"request_id", requestID,
				"status", code,
				"error", err.Error(),
			)
			message = "internal server error"
		} else {
			logger.Warn("request rejected",
				"request_id", requestID,
				"status", code,
				"error", err.Error(),
			)
		}

		if err := c.JSON(code, map[string]string{
			"error":      message,
			"request_id": requestID,
		}); err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}
