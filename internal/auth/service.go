// Package auth implements the authentication lifecycle: credential exchange,
// the session state machine, and route guarding.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"interview-dashboard/internal/identity"
	"interview-dashboard/internal/rbac"
	"interview-dashboard/internal/session"
)

// Credentials is the login form input. Role is chosen by the user and stays
// local; only username and password reach the identity provider.
type Credentials struct {
	Username string
	Password string
	Role     string
}

// IdentityClient exchanges credentials for a remote profile.
type IdentityClient interface {
	Login(ctx context.Context, username, password string) (identity.User, error)
}

// Service validates credentials against the identity provider and builds the
// resulting session. Persistence is delegated to the session store.
type Service struct {
	identity IdentityClient
	store    session.Store
	logger   *slog.Logger
}

// NewService wires an authentication service.
func NewService(client IdentityClient, store session.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{identity: client, store: store, logger: logger}
}

// Login validates the credentials, performs exactly one identity request, and
// on success persists and returns the session. Precondition violations return
// a *ValidationError before any network traffic; every remote or transport
// failure is normalized to ErrInvalidCredentials. Nothing is persisted on
// failure.
func (s *Service) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" {
		return session.Session{}, &ValidationError{Field: "username", Message: "username is required"}
	}
	if creds.Password == "" {
		return session.Session{}, &ValidationError{Field: "password", Message: "password is required"}
	}
	role, err := rbac.ParseRole(creds.Role)
	if err != nil {
		return session.Session{}, &ValidationError{Field: "role", Message: "select one of administrator, ta_member, panelist"}
	}

	user, err := s.identity.Login(ctx, username, creds.Password)
	if err != nil {
		s.logger.Debug("identity login failed", "error", err)
		return session.Session{}, fmt.Errorf("%w", ErrInvalidCredentials)
	}

	sess := session.Session{
		User:  user,
		Role:  role,
		Token: user.Token,
	}

	if s.store != nil {
		if err := s.store.Persist(sess); err != nil {
			// Same posture as a full browser storage area: the login still
			// succeeds, the session just won't survive a restore.
			s.logger.Warn("session persist failed", "error", err)
		}
	}

	return sess, nil
}
