package pages

import (
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/services/session"
	"github.com/mcoot/buitransport/internal/web/templates/layout"
)

// LoginData is the login page model
type LoginData struct {
	layout.PageData
	Email     string
	Dashboard session.DashboardChoice
	Next      string
	Error     string
}

// RegisterData is the registration page model
type RegisterData struct {
	layout.PageData
	Fields      model.RegistrationFields
	Error       string
	FieldErrors map[string]string
}

type dashboardOption struct {
	Value session.DashboardChoice
	Label string
}

var dashboardOptions = []dashboardOption{
	{session.ChoiceAuto, "Use my account type"},
	{session.ChoiceStudent, "Student"},
	{session.ChoiceOrganizer, "Transport Organizer"},
}

var registerRoles = []model.Role{model.RoleStudent, model.RoleTransportOrganizer}
