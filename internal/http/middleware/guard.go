package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"interview-dashboard/internal/auth"
	"interview-dashboard/internal/rbac"
)

const (
	// ContextKeyUsername holds the authenticated username for handlers.
	ContextKeyUsername = "auth_username"
	// ContextKeyRole holds the authenticated role for handlers.
	ContextKeyRole = "auth_role"
)

// RouteGuard adapts the auth guard to Echo routes. Outcomes map to HTTP:
// pending auth state → 503, unauthenticated → 401 pointing at the login
// entry point, missing permission → 403 access-denied body (no redirect),
// allowed → the protected handler.
type RouteGuard struct {
	guard  *auth.Guard
	ctrl   *auth.Controller
	tokens *auth.TokenService
}

func NewRouteGuard(guard *auth.Guard, ctrl *auth.Controller, tokens *auth.TokenService) *RouteGuard {
	return &RouteGuard{guard: guard, ctrl: ctrl, tokens: tokens}
}

// Require guards a route with a permission. An empty permission only
// requires a live session.
func (g *RouteGuard) Require(permission rbac.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch g.guard.Evaluate(permission) {
			case auth.OutcomePending:
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "initializing",
				})
			case auth.OutcomeRedirect:
				return respondLoginRedirect(c)
			case auth.OutcomeDenied:
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "access denied: you don't have permission to view this page",
				})
			}

			claims, err := g.verifyRequestToken(c)
			if err != nil {
				return respondLoginRedirect(c)
			}

			c.Set(ContextKeyUsername, claims.Username)
			c.Set(ContextKeyRole, rbac.Role(claims.Role))
			return next(c)
		}
	}
}

// verifyRequestToken checks that the browser presenting the request holds a
// cookie minted for the live session. A token for an older session (rotated
// away by a login or logout) does not pass.
func (g *RouteGuard) verifyRequestToken(c echo.Context) (*auth.TokenClaims, error) {
	cookie, err := c.Cookie(auth.CookieName)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.Verify(cookie.Value)
	if err != nil {
		return nil, err
	}

	snap := g.ctrl.Snapshot()
	if claims.SessionID == "" || claims.SessionID != snap.SessionID {
		return nil, echo.ErrUnauthorized
	}
	return claims, nil
}

func respondLoginRedirect(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":    "authentication required",
		"redirect": auth.LoginPath,
	})
}

// Username returns the authenticated username a guard stored on the context.
func Username(c echo.Context) string {
	if username, ok := c.Get(ContextKeyUsername).(string); ok {
		return username
	}
	return ""
}

// Role returns the authenticated role a guard stored on the context.
func Role(c echo.Context) rbac.Role {
	if role, ok := c.Get(ContextKeyRole).(rbac.Role); ok {
		return role
	}
	return ""
}
