package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/buitransport/internal/gateway/gatewaytest"
	"github.com/mcoot/buitransport/internal/model"
)

func TestGuard(t *testing.T) {
	identity := &model.Identity{ID: "1", Role: model.RoleStudent}

	tests := []struct {
		name  string
		state State
		want  Decision
	}{
		{"unknown", State{Status: Unknown}, RenderLoading},
		{"anonymous", State{Status: Anonymous}, RedirectToLogin},
		{"authenticated", State{Status: Authenticated, Identity: identity}, RenderView},
		{"authenticated without identity", State{Status: Authenticated}, RedirectToLogin},
		{"zero value", State{}, RenderLoading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Guard(tt.state))
		})
	}
}

func TestDashboardFor(t *testing.T) {
	tests := []struct {
		role model.Role
		want Dashboard
		path string
	}{
		{model.RoleOrganizer, OrganizerDashboard, "/organizer-dashboard"},
		{model.RoleTransportOrganizer, OrganizerDashboard, "/organizer-dashboard"},
		{model.RoleStudent, StudentDashboard, "/student-dashboard"},
		{"", StudentDashboard, "/student-dashboard"},
		{model.RoleAdmin, StudentDashboard, "/student-dashboard"},
		{"driver", StudentDashboard, "/student-dashboard"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := DashboardFor(tt.role)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.path, got.Path())
		})
	}
}

func TestDashboardChoiceResolve(t *testing.T) {
	assert.Equal(t, OrganizerDashboard, ChoiceAuto.Resolve(model.RoleTransportOrganizer))
	assert.Equal(t, StudentDashboard, ChoiceAuto.Resolve(model.RoleStudent))
	assert.Equal(t, StudentDashboard, ChoiceStudent.Resolve(model.RoleTransportOrganizer))
	assert.Equal(t, OrganizerDashboard, ChoiceOrganizer.Resolve(model.RoleStudent))
	assert.Equal(t, OrganizerDashboard, DashboardChoice("").Resolve(model.RoleOrganizer))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	got, ok := tokenExpiry(gatewaytest.SignedToken(exp))
	assert.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = tokenExpiry("acc_opaque")
	assert.False(t, ok)
}
