package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"interview-dashboard/internal/auth"
	"interview-dashboard/internal/rbac"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgLoginSuperseded    = "a newer login attempt is in progress"
	msgLoggedOut          = "logged out"
)

// AuthHandler exposes the login lifecycle over HTTP.
type AuthHandler struct {
	ctrl   *auth.Controller
	tokens *auth.TokenService
}

func NewAuthHandler(ctrl *auth.Controller, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{ctrl: ctrl, tokens: tokens}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Loading       bool              `json:"loading"`
	Role          rbac.Role         `json:"role,omitempty"`
	Username      string            `json:"username,omitempty"`
	DisplayName   string            `json:"displayName,omitempty"`
	Email         string            `json:"email,omitempty"`
	Image         string            `json:"image,omitempty"`
	Permissions   []rbac.Permission `json:"permissions,omitempty"`
}

// Login authenticates against the identity provider with the role the user
// picked. Field problems come back as 400 with the offending field; every
// remote rejection is a single generic 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "malformed request body")
	}

	sess, err := h.ctrl.Login(c.Request().Context(), auth.Credentials{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if ve, ok := auth.AsValidation(err); ok {
			return respondFieldError(c, http.StatusBadRequest, ve.Field, ve.Message)
		}
		if errors.Is(err, auth.ErrSuperseded) {
			return respondError(c, http.StatusConflict, msgLoginSuperseded)
		}
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	snap := h.ctrl.Snapshot()
	token, err := h.tokens.Mint(snap.SessionID, sess.User.Username, sess.Role)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "failed to issue session token")
	}
	h.setSessionCookie(c, token)

	return c.JSON(http.StatusOK, sessionResponse(snap))
}

// Logout clears the session. It cannot fail.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.ctrl.Logout()
	h.clearSessionCookie(c)
	return respondMessage(c, http.StatusOK, msgLoggedOut)
}

// Session is the rehydration view: what the UI needs to decide what to
// render, without ever failing.
func (h *AuthHandler) Session(c echo.Context) error {
	snap := h.ctrl.Snapshot()
	if !snap.Authenticated {
		return c.JSON(http.StatusOK, sessionResponse(snap))
	}

	// An authenticated process session only belongs to a browser presenting
	// a token minted for it.
	cookie, err := c.Cookie(auth.CookieName)
	if err != nil {
		return c.JSON(http.StatusOK, SessionResponse{})
	}
	claims, err := h.tokens.Verify(cookie.Value)
	if err != nil || claims.SessionID != snap.SessionID {
		return c.JSON(http.StatusOK, SessionResponse{})
	}

	return c.JSON(http.StatusOK, sessionResponse(snap))
}

func sessionResponse(snap auth.Snapshot) SessionResponse {
	resp := SessionResponse{
		Authenticated: snap.Authenticated,
		Loading:       snap.Loading,
	}
	if snap.Authenticated {
		resp.Role = snap.Role
		resp.Username = snap.User.Username
		resp.DisplayName = snap.User.DisplayName()
		resp.Email = snap.User.Email
		resp.Image = snap.User.Image
		resp.Permissions = rbac.PermissionsFor(snap.Role)
	}
	return resp
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
