package response

import (
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/services/session"
)

// Session status values
const (
	StatusUnknown       = "unknown"
	StatusAuthenticated = "authenticated"
	StatusAnonymous     = "anonymous"
)

// User is the signed-in account in API responses
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsVerified  bool   `json:"is_verified"`
}

// UserFromModel converts a model.Identity
func UserFromModel(i *model.Identity) User {
	return User{
		ID:          string(i.ID),
		Email:       i.Email,
		DisplayName: i.DisplayName(),
		Role:        string(i.Role),
		IsVerified:  i.IsVerified,
	}
}

// Session describes the session of the calling browser
type Session struct {
	Status string `json:"status"`
	User   *User  `json:"user,omitempty"`
	// Dashboard is the landing path for the user, set when authenticated
	Dashboard string `json:"dashboard,omitempty"`
}

// SessionFromState converts a session snapshot. dashboard picks the landing page
// of an authenticated session.
func SessionFromState(state session.State, dashboard session.Dashboard) Session {
	switch {
	case state.Authenticated():
		user := UserFromModel(state.Identity)
		return Session{Status: StatusAuthenticated, User: &user, Dashboard: dashboard.Path()}
	case state.Status == session.Anonymous:
		return Session{Status: StatusAnonymous}
	default:
		return Session{Status: StatusUnknown}
	}
}
