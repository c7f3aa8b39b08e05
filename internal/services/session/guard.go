package session

// Decision is what a protected view should do for a given state
type Decision int

const (
	// RenderLoading shows a neutral placeholder until the session settles
	RenderLoading Decision = iota
	// RedirectToLogin sends the visitor to the login view
	RedirectToLogin
	// RenderView renders the protected view
	RenderView
)

func (d Decision) String() string {
	switch d {
	case RenderLoading:
		return "render-loading"
	case RedirectToLogin:
		return "redirect-to-login"
	case RenderView:
		return "render-view"
	default:
		return "invalid"
	}
}

// Guard decides whether a protected view may render.
// An Unknown state never redirects, so a reload does not flash the login page.
func Guard(state State) Decision {
	switch state.Status {
	case Authenticated:
		if state.Identity == nil {
			return RedirectToLogin
		}
		return RenderView
	case Anonymous:
		return RedirectToLogin
	default:
		return RenderLoading
	}
}
