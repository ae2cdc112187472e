// Package session owns the authenticated session record and its storage.
//
// The store is the single writer of the persisted record; everything else
// holds read-only projections of it.
package session

import (
	"interview-dashboard/internal/identity"
	"interview-dashboard/internal/rbac"
)

// StorageKey is the well-known key the serialized session lives under.
const StorageKey = "interview_dashboard_session"

// Session binds a remote-issued identity, the locally chosen role, and the
// server-issued bearer token for one process lifetime.
type Session struct {
	User  identity.User `json:"user"`
	Role  rbac.Role     `json:"role"`
	Token string        `json:"token"`
}

// Valid reports whether the session is fully present: identity, role, and
// token all set. Partial records never count as logged in.
func (s Session) Valid() bool {
	return s.User.ID != 0 && s.Token != "" && rbac.Valid(s.Role)
}
