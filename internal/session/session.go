// Package session owns the single signed-in user of this device.
package session

import (
	"errors"
	"time"
)

// Role is the privilege level of a session. The string values are the
// persisted form.
type Role string

const (
	RoleElevated Role = "admin"
	RoleStandard Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleElevated || r == RoleStandard
}

func (r Role) String() string { return string(r) }

// Label is the human name shown in the UI.
func (r Role) Label() string {
	if r == RoleElevated {
		return "elevated"
	}
	return "standard"
}

// ErrInvalidCredentials is returned by Login for a wrong password or an
// empty username.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is the authenticated user. ID is per process and only used to
// correlate log lines.
type Session struct {
	ID         string    `json:"-"`
	Username   string    `json:"username"`
	Role       Role      `json:"role"`
	LoggedInAt time.Time `json:"logged_in_at,omitzero"`
}

// Elevated reports whether s may manage custom entries.
func (s Session) Elevated() bool { return s.Role == RoleElevated }
