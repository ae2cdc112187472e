// Package app wires the dashboard service together: configuration, upstream
// clients, the auth lifecycle and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"interview-dashboard/internal/auth"
	"interview-dashboard/internal/candidate"
	"interview-dashboard/internal/config"
	"interview-dashboard/internal/dashboard"
	"interview-dashboard/internal/feedback"
	dashhttp "interview-dashboard/internal/http"
	"interview-dashboard/internal/identity"
	"interview-dashboard/internal/session"
)

// Service is the assembled application.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
	ctrl   *auth.Controller
	server *dashhttp.Server
}

// NewService loads configuration and builds the full dependency graph.
func NewService(logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store := session.NewMemoryStore()
	identityClient := identity.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	authService := auth.NewService(identityClient, store, logger)
	controller := auth.NewController(authService, store, logger)
	guard := auth.NewGuard(controller, func(target string) {
		logger.Info("redirecting unauthenticated visitor", "target", target)
	})
	tokens := auth.NewTokenService(cfg.Session.TokenSecret, cfg.Session.TokenTTL)

	candidates := candidate.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	server := dashhttp.NewServer(&dashhttp.ServerDependencies{
		Config:     cfg,
		Logger:     logger,
		Controller: controller,
		Guard:      guard,
		Tokens:     tokens,
		Candidates: candidates,
		Dashboard:  dashboard.NewService(candidates, cfg.App.MetricsPoolSize),
		Feedback:   feedback.NewService(logger),
	})

	return &Service{
		cfg:    cfg,
		logger: logger,
		ctrl:   controller,
		server: server,
	}, nil
}

// Start restores any persisted session and serves HTTP until Shutdown.
func (s *Service) Start() error {
	snap := s.ctrl.Initialize()
	s.logger.Info("auth state initialized", "state", snap.State.String())

	address := net.JoinHostPort("", s.cfg.Server.Port)
	s.logger.Info("starting dashboard service", "address", address)
	return s.server.Start(address)
}

// Shutdown drains the HTTP server within the context deadline.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ShutdownTimeout is the configured grace period for Shutdown.
func (s *Service) ShutdownTimeout() time.Duration {
	return s.cfg.Server.ShutdownTimeout
}
