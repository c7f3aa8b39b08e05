package session

import "github.com/mcoot/buitransport/internal/model"

// Dashboard is one of the two role-specific landing views
type Dashboard int

const (
	// StudentDashboard lists the student's bookings and available routes
	StudentDashboard Dashboard = iota
	// OrganizerDashboard shows booking stats and the organizer's routes
	OrganizerDashboard
)

// DashboardFor maps a role to its dashboard. Unknown and empty roles get the student view.
func DashboardFor(role model.Role) Dashboard {
	if role.IsOrganizer() {
		return OrganizerDashboard
	}
	return StudentDashboard
}

// Path returns the web route of the dashboard
func (d Dashboard) Path() string {
	if d == OrganizerDashboard {
		return "/organizer-dashboard"
	}
	return "/student-dashboard"
}

func (d Dashboard) String() string {
	if d == OrganizerDashboard {
		return "organizer"
	}
	return "student"
}

// DashboardChoice is the login form's "sign in as" selector
type DashboardChoice string

const (
	// ChoiceAuto lands on the dashboard of the account's role
	ChoiceAuto DashboardChoice = "auto"
	// ChoiceStudent always lands on the student dashboard
	ChoiceStudent DashboardChoice = "student"
	// ChoiceOrganizer always lands on the organizer dashboard
	ChoiceOrganizer DashboardChoice = "transport_organizer"
)

// Resolve returns the dashboard to land on after login.
// ChoiceAuto, or anything unrecognised, defers to the role.
func (c DashboardChoice) Resolve(role model.Role) Dashboard {
	switch c {
	case ChoiceStudent:
		return StudentDashboard
	case ChoiceOrganizer:
		return OrganizerDashboard
	default:
		return DashboardFor(role)
	}
}
