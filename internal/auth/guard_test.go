package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-dashboard/internal/rbac"
	"interview-dashboard/internal/session"
)

func loggedInController(t *testing.T, role string) *Controller {
	t.Helper()
	ctrl := newController(&fakeIdentity{respond: okFor("tok")}, session.NewMemoryStore())
	ctrl.Initialize()
	_, err := ctrl.Login(context.Background(), Credentials{Username: "a", Password: "x", Role: role})
	require.NoError(t, err)
	return ctrl
}

func TestGuardPendingWhileUninitialized(t *testing.T) {
	ctrl := newController(&fakeIdentity{respond: okFor("tok")}, session.NewMemoryStore())

	var navigations []string
	guard := NewGuard(ctrl, func(target string) { navigations = append(navigations, target) })

	assert.Equal(t, OutcomePending, guard.Evaluate(rbac.PermViewDashboard))
	assert.Empty(t, navigations, "no navigation while loading")
}

func TestGuardRedirectsOnceWhileUnauthenticated(t *testing.T) {
	ctrl := newController(&fakeIdentity{respond: okFor("tok")}, session.NewMemoryStore())
	ctrl.Initialize()

	var navigations []string
	guard := NewGuard(ctrl, func(target string) { navigations = append(navigations, target) })

	// Repeated re-evaluation while still unauthenticated fires exactly one
	// navigation event.
	for i := 0; i < 5; i++ {
		assert.Equal(t, OutcomeRedirect, guard.Evaluate(rbac.PermViewDashboard))
	}
	assert.Equal(t, []string{LoginPath}, navigations)
}

func TestGuardLatchResetsAfterReauthentication(t *testing.T) {
	ctrl := newController(&fakeIdentity{respond: okFor("tok")}, session.NewMemoryStore())
	ctrl.Initialize()

	var navigations int
	guard := NewGuard(ctrl, func(string) { navigations++ })

	guard.Evaluate(rbac.PermViewDashboard)
	guard.Evaluate(rbac.PermViewDashboard)
	assert.Equal(t, 1, navigations)

	_, err := ctrl.Login(context.Background(), Credentials{Username: "a", Password: "x", Role: "panelist"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAllow, guard.Evaluate(rbac.PermViewDashboard))

	ctrl.Logout()
	guard.Evaluate(rbac.PermViewDashboard)
	guard.Evaluate(rbac.PermViewDashboard)
	assert.Equal(t, 2, navigations, "a new unauthenticated cycle fires one more event")
}

func TestGuardDeniedWithoutPermission(t *testing.T) {
	ctrl := loggedInController(t, "panelist")

	var navigations int
	guard := NewGuard(ctrl, func(string) { navigations++ })

	assert.Equal(t, OutcomeDenied, guard.Evaluate(rbac.PermManageRoles))
	assert.Zero(t, navigations, "denial renders in place, never navigates")
}

func TestGuardAllowsWithPermission(t *testing.T) {
	ctrl := loggedInController(t, "administrator")
	guard := NewGuard(ctrl, nil)

	assert.Equal(t, OutcomeAllow, guard.Evaluate(rbac.PermManageRoles))
}

func TestGuardAllowsWhenNoPermissionRequired(t *testing.T) {
	ctrl := loggedInController(t, "panelist")
	guard := NewGuard(ctrl, nil)

	assert.Equal(t, OutcomeAllow, guard.Evaluate(""))
}

func TestGuardNilNavigateCallback(t *testing.T) {
	ctrl := newController(&fakeIdentity{respond: okFor("tok")}, session.NewMemoryStore())
	ctrl.Initialize()
	guard := NewGuard(ctrl, nil)

	assert.Equal(t, OutcomeRedirect, guard.Evaluate(rbac.PermViewDashboard))
}
