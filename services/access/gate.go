package access

import (
	"fmt"

	"pulsefolio/models"
)

// Navigation targets for denial outcomes.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// State is the outcome of an access evaluation for a protected view.
type State string

const (
	// StateUnknown means the session or role has not been resolved yet, or
	// resolution failed. No access decision is taken in this state.
	StateUnknown State = "unknown"
	// StateDeniedUnauthenticated means there is no active session; the caller
	// is sent to the login entry point carrying the requested location.
	StateDeniedUnauthenticated State = "denied_unauthenticated"
	// StateDeniedInsufficientRole means the session's role does not meet the
	// requirement; the caller is sent back to the authenticated landing view.
	StateDeniedInsufficientRole State = "denied_insufficient_role"
	// StateGranted means the protected content may be served.
	StateGranted State = "granted"
)

// Decision carries the evaluation state plus its navigation outcome.
type Decision struct {
	State    State  `json:"state"`
	Redirect string `json:"redirect,omitempty"`
	// From preserves the originally requested location so it can be resumed
	// after authentication.
	From   string `json:"from,omitempty"`
	Notice string `json:"notice,omitempty"`
	Err    error  `json:"-"`
}

// Granted reports whether the protected content may be rendered.
func (d Decision) Granted() bool {
	return d.State == StateGranted
}

// RoleResolver reads the role off the profile bound to a session identity.
// The user repository satisfies this directly.
type RoleResolver interface {
	GetRole(userID string) (models.Role, error)
}

// Gate decides whether a session may access a protected view. It never caches
// role values: every evaluation reads through the resolver so a role mutation
// takes effect on the next session-change event.
type Gate struct {
	roles RoleResolver
}

// NewGate builds a Gate over the given role resolver.
func NewGate(roles RoleResolver) *Gate {
	return &Gate{roles: roles}
}

// Evaluate decides access for one protected view. An empty required role means
// any authenticated session is granted. location is the requested path,
// preserved on unauthenticated denials for post-login resume.
//
// A role-resolution failure never grants: the decision stays in StateUnknown
// with the error attached, and the caller may retry on the next session
// change.
func (g *Gate) Evaluate(sess *models.Session, required models.Role, location string) Decision {
	if sess == nil {
		return Decision{
			State:    StateDeniedUnauthenticated,
			Redirect: LoginPath,
			From:     location,
			Notice:   "Please sign in to continue",
		}
	}

	if required == "" {
		return Decision{State: StateGranted}
	}

	role, err := g.roles.GetRole(sess.UserID)
	if err != nil {
		return Decision{
			State:  StateUnknown,
			Notice: "Could not verify permissions, please retry",
			Err:    fmt.Errorf("profile fetch failed: %w", err),
		}
	}

	if !role.Meets(required) {
		return Decision{
			State:    StateDeniedInsufficientRole,
			Redirect: DashboardPath,
			Notice:   "You don't have permission to access this page",
		}
	}

	return Decision{State: StateGranted}
}
