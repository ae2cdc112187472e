package handler

import (
	"github.com/labstack/echo/v4"
)

const (
	jsonKeyError   = "error"
	jsonKeyField   = "field"
	jsonKeyMessage = "message"
)

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondFieldError(c echo.Context, status int, field, message string) error {
	return c.JSON(status, map[string]string{
		jsonKeyError: message,
		jsonKeyField: field,
	})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}

// respondUpstreamError reports a failed data fetch as a page-level error the
// UI can retry; the client is told retrying is on them, nothing is retried
// here.
func respondUpstreamError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		jsonKeyError: message,
		"retryable":  true,
	})
}
