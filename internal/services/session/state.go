package session

import "github.com/mcoot/buitransport/internal/model"

// Status is the session's position in its lifecycle
type Status int

const (
	// Unknown means Initialize has not settled yet
	Unknown Status = iota
	// Authenticated means a credential is stored and its identity is known
	Authenticated
	// Anonymous means no usable credential is stored
	Anonymous
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "invalid"
	}
}

// State is a point-in-time view of the session.
// Identity is set only when Status is Authenticated.
type State struct {
	Status   Status
	Identity *model.Identity
}

// Authenticated reports whether the state carries an identity
func (s State) Authenticated() bool {
	return s.Status == Authenticated && s.Identity != nil
}

// Role returns the identity's role, or "" when not authenticated
func (s State) Role() model.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
