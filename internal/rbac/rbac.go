// Package rbac maps interview-dashboard roles to their permission sets.
//
// The role set is closed and the table is fixed at compile time: adding a
// role is a code change, not a runtime lookup that can silently miss.
package rbac

import (
	"errors"
	"fmt"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is one of the three dashboard roles, chosen at login time.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleTAMember      Role = "ta_member"
	RolePanelist      Role = "panelist"
)

// Permission is a named capability gating access to a feature or page.
type Permission string

const (
	PermViewDashboard    Permission = "view_dashboard"
	PermManageCandidates Permission = "manage_candidates"
	PermViewCandidates   Permission = "view_candidates"
	PermManageRoles      Permission = "manage_roles"
	PermViewFeedback     Permission = "view_feedback"
	PermViewAllFeedback  Permission = "view_all_feedback"
	PermViewOwnFeedback  Permission = "view_own_feedback"
	PermSubmitFeedback   Permission = "submit_feedback"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdministrator, RoleTAMember, RolePanelist}

var rolePermissions = map[Role][]Permission{
	RoleAdministrator: {
		PermViewDashboard,
		PermManageCandidates,
		PermViewCandidates,
		PermManageRoles,
		PermViewFeedback,
		PermViewAllFeedback,
		PermSubmitFeedback,
	},
	RoleTAMember: {
		PermViewDashboard,
		PermManageCandidates,
		PermViewCandidates,
		PermViewFeedback,
		PermViewAllFeedback,
	},
	RolePanelist: {
		PermViewDashboard,
		PermViewCandidates,
		PermViewOwnFeedback,
		PermSubmitFeedback,
	},
}

// membership is precomputed at init and read-only afterwards, so Has is safe
// to call from any number of goroutines.
var membership = func() map[Role]map[Permission]bool {
	m := make(map[Role]map[Permission]bool, len(rolePermissions))
	for role, perms := range rolePermissions {
		set := make(map[Permission]bool, len(perms))
		for _, p := range perms {
			set[p] = true
		}
		m[role] = set
	}
	return m
}()

// PermissionsFor returns the permission set for role. Unknown roles map to
// the empty set: deny by default, never an error.
func PermissionsFor(role Role) []Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Has reports whether role grants permission.
func Has(role Role, permission Permission) bool {
	return membership[role][permission]
}

// ParseRole validates a role string against the closed enum.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := rolePermissions[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether role is one of the three known roles.
func Valid(role Role) bool {
	_, ok := rolePermissions[role]
	return ok
}
