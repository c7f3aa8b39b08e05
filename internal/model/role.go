package model

// Role classifies an account
type Role string

const (
	RoleStudent            Role = "student"
	RoleTransportOrganizer Role = "transport_organizer"
	// RoleOrganizer is an older spelling of RoleTransportOrganizer still sent by some API versions
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// IsOrganizer reports whether the role is either spelling of the organizer role
func (r Role) IsOrganizer() bool {
	return r == RoleOrganizer || r == RoleTransportOrganizer
}

// Label returns a human-readable name for the role
func (r Role) Label() string {
	switch {
	case r.IsOrganizer():
		return "Transport Organizer"
	case r == RoleAdmin:
		return "Administrator"
	case r == RoleStudent:
		return "Student"
	default:
		return string(r)
	}
}
