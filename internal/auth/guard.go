package auth

import (
	"sync"

	"interview-dashboard/internal/rbac"
)

// LoginPath is the navigation target for unauthenticated visitors.
const LoginPath = "/login"

// Outcome is the guard's decision for a protected view.
type Outcome int

const (
	// OutcomePending: auth state is still resolving; show a neutral
	// indicator, do not navigate.
	OutcomePending Outcome = iota
	// OutcomeRedirect: not logged in; the caller should land on the login
	// entry point.
	OutcomeRedirect
	// OutcomeDenied: logged in but lacking the required permission; render
	// the access-denied fallback, do not navigate away.
	OutcomeDenied
	// OutcomeAllow: render the protected content.
	OutcomeAllow
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeDenied:
		return "denied"
	case OutcomeAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Guard decides whether a protected view renders, redirects, or denies.
//
// The navigate callback fires at most once per unauthenticated cycle, however
// often Evaluate re-runs; observing an authenticated snapshot re-arms it.
type Guard struct {
	ctrl     *Controller
	navigate func(target string)

	mu        sync.Mutex
	navigated bool
}

// NewGuard builds a guard over the controller. navigate may be nil when the
// caller only needs outcomes.
func NewGuard(ctrl *Controller, navigate func(target string)) *Guard {
	return &Guard{ctrl: ctrl, navigate: navigate}
}

// Evaluate resolves the outcome for a view requiring the given permission.
// An empty permission means login is sufficient.
func (g *Guard) Evaluate(required rbac.Permission) Outcome {
	snap := g.ctrl.Snapshot()

	if snap.Loading {
		return OutcomePending
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !snap.Authenticated {
		if !g.navigated {
			g.navigated = true
			if g.navigate != nil {
				g.navigate(LoginPath)
			}
		}
		return OutcomeRedirect
	}

	g.navigated = false

	if required != "" && !rbac.Has(snap.Role, required) {
		return OutcomeDenied
	}
	return OutcomeAllow
}
