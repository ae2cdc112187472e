package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"interview-dashboard/internal/identity"
	"interview-dashboard/internal/rbac"
	"interview-dashboard/internal/session"
)

// State is the controller's position in the auth lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only projection consumers observe. It is a copy; the
// controller remains the single source of truth.
type Snapshot struct {
	State         State
	Authenticated bool
	Loading       bool
	Role          rbac.Role
	User          identity.User
	SessionID     string
}

// Controller orchestrates login, logout, and session restore, and owns the
// process-wide auth state. Construct one at startup and inject it; there is
// no package-level instance.
//
// Concurrent logins follow a most-recent-wins policy: starting a login
// cancels the previous in-flight attempt and bumps a sequence number, and a
// completion whose sequence is stale is discarded (its caller receives
// ErrSuperseded). A stale success that already wrote the store is repaired by
// re-persisting the winning state.
type Controller struct {
	svc    *Service
	store  session.Store
	logger *slog.Logger

	initOnce sync.Once

	mu             sync.Mutex
	state          State
	sess           session.Session
	sessionID      string
	loginSeq       uint64
	cancelInflight context.CancelFunc
}

// NewController builds a controller in the Uninitialized state.
func NewController(svc *Service, store session.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		svc:    svc,
		store:  store,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Initialize attempts to restore a persisted session. The restore runs
// exactly once per process no matter how many callers race here; later calls
// only observe the resulting state.
func (c *Controller) Initialize() Snapshot {
	c.initOnce.Do(func() {
		c.mu.Lock()
		c.state = StateLoading
		c.mu.Unlock()

		var (
			sess session.Session
			ok   bool
		)
		if c.store != nil {
			sess, ok = c.store.Restore()
		}

		c.mu.Lock()
		if ok {
			c.applyAuthenticatedLocked(sess)
			c.logger.Info("session restored", "username", sess.User.Username, "role", sess.Role)
		} else {
			c.state = StateUnauthenticated
		}
		c.mu.Unlock()
	})
	return c.Snapshot()
}

// Login runs the authentication service and applies the outcome. Errors are
// re-raised to the caller; the controller never swallows them.
func (c *Controller) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	c.mu.Lock()
	c.loginSeq++
	seq := c.loginSeq
	if c.cancelInflight != nil {
		c.cancelInflight()
	}
	loginCtx, cancel := context.WithCancel(ctx)
	c.cancelInflight = cancel
	c.state = StateLoading
	c.mu.Unlock()
	defer cancel()

	sess, err := c.svc.Login(loginCtx, creds)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.loginSeq {
		// A newer login or a logout owns the state now. If this stale attempt
		// managed to persist its session, put the owner's record back. While
		// the owner is still mid-login the store is left untouched: the
		// owner's own write under this lock is authoritative.
		if err == nil && c.store != nil {
			switch c.state {
			case StateAuthenticated:
				if perr := c.store.Persist(c.sess); perr != nil {
					c.logger.Warn("store repair failed", "error", perr)
				}
			case StateLoading:
			default:
				c.store.Clear()
			}
		}
		return session.Session{}, ErrSuperseded
	}
	c.cancelInflight = nil

	if err != nil {
		c.state = StateUnauthenticated
		c.sess = session.Session{}
		c.sessionID = ""
		return session.Session{}, err
	}

	c.applyAuthenticatedLocked(sess)
	if c.store != nil {
		// The service already persisted, but a superseded attempt may have
		// overwritten that record in the window before this lock was taken.
		// Writing again here makes the winner's record the final word.
		if perr := c.store.Persist(sess); perr != nil {
			c.logger.Warn("session persist failed", "error", perr)
		}
	}
	c.logger.Info("login succeeded", "username", sess.User.Username, "role", sess.Role)
	return sess, nil
}

// Logout clears the store synchronously and moves to Unauthenticated. It
// always succeeds, from any state, and supersedes any in-flight login.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loginSeq++
	if c.cancelInflight != nil {
		c.cancelInflight()
		c.cancelInflight = nil
	}
	if c.store != nil {
		c.store.Clear()
	}
	c.state = StateUnauthenticated
	c.sess = session.Session{}
	c.sessionID = ""
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:         c.state,
		Authenticated: c.state == StateAuthenticated,
		Loading:       c.state == StateUninitialized || c.state == StateLoading,
		Role:          c.sess.Role,
		User:          c.sess.User,
		SessionID:     c.sessionID,
	}
}

// HasPermission resolves the permission against the current role. Anything
// but an authenticated, known role denies.
func (c *Controller) HasPermission(p rbac.Permission) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAuthenticated {
		return false
	}
	return rbac.Has(c.sess.Role, p)
}

// Session returns the current session and whether one is active.
func (c *Controller) Session() (session.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAuthenticated {
		return session.Session{}, false
	}
	return c.sess, true
}

func (c *Controller) applyAuthenticatedLocked(sess session.Session) {
	c.state = StateAuthenticated
	c.sess = sess
	c.sessionID = uuid.NewString()
}
