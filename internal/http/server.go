// Package http assembles the Echo server: middleware stack, route table and
// the permission each route demands.
package http

import (
	"context"
	"log/slog"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"interview-dashboard/internal/auth"
	"interview-dashboard/internal/candidate"
	"interview-dashboard/internal/config"
	"interview-dashboard/internal/dashboard"
	"interview-dashboard/internal/feedback"
	"interview-dashboard/internal/http/handler"
	"interview-dashboard/internal/http/middleware"
	"interview-dashboard/internal/rbac"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "64K"
)

// ServerDependencies carries everything the server wires together. All
// fields are required.
type ServerDependencies struct {
	Config     *config.Config
	Logger     *slog.Logger
	Controller *auth.Controller
	Guard      *auth.Guard
	Tokens     *auth.TokenService
	Candidates *candidate.Client
	Dashboard  *dashboard.Service
	Feedback   *feedback.Service
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first so every log line downstream can carry it.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	loginRateLimiter := middleware.NewRateLimiter(
		deps.Config.App.LoginRatePerSec,
		deps.Config.App.LoginRateBurst,
	)

	routeGuard := middleware.NewRouteGuard(deps.Guard, deps.Controller, deps.Tokens)

	authHandler := handler.NewAuthHandler(deps.Controller, deps.Tokens)
	candidateHandler := handler.NewCandidateHandler(deps.Candidates, deps.Dashboard, deps.Config.App.PageSize)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback)
	rolesHandler := handler.NewRolesHandler()

	// Login is the only pre-authentication endpoint, so it alone is
	// rate-limited by client IP.
	e.POST("/auth/login", authHandler.Login, loginRateLimiter.Middleware())
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)
	e.GET("/health", healthCheck)

	api := e.Group("/api")

	api.GET("/dashboard", dashboardHandler.Metrics, routeGuard.Require(rbac.PermViewDashboard))

	api.GET("/candidates", candidateHandler.List, routeGuard.Require(rbac.PermViewCandidates))
	api.GET("/candidates/search", candidateHandler.Search, routeGuard.Require(rbac.PermViewCandidates))
	api.GET("/candidates/:id", candidateHandler.Detail, routeGuard.Require(rbac.PermViewCandidates))

	api.GET("/feedback", feedbackHandler.List, routeGuard.Require(rbac.PermViewFeedback))
	api.GET("/feedback/mine", feedbackHandler.Mine, routeGuard.Require(rbac.PermViewOwnFeedback))
	api.POST("/feedback", feedbackHandler.Submit, routeGuard.Require(rbac.PermSubmitFeedback))

	api.GET("/roles", rolesHandler.Matrix, routeGuard.Require(rbac.PermManageRoles))

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
