package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/buitransport/internal/gateway/gatewaytest"
	"github.com/mcoot/buitransport/internal/model"
)

func TestDashboardRedirectsByRole(t *testing.T) {
	tests := []struct {
		role model.Role
		want string
	}{
		{model.RoleStudent, "/student-dashboard"},
		{model.RoleTransportOrganizer, "/organizer-dashboard"},
		{model.RoleOrganizer, "/organizer-dashboard"},
		{model.RoleAdmin, "/student-dashboard"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			ts := newWebTestServer(t)
			ts.loginAs("user@bui.edu.ng", tt.role)

			rr := ts.get("/dashboard")
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.want, rr.Header().Get("Location"))
		})
	}
}

func TestStudentCannotOpenOrganizerDashboard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)

	rr := ts.get("/organizer-dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/student-dashboard", rr.Header().Get("Location"))
	assert.Equal(t, 0, ts.app.API.Calls(http.MethodGet, "/organizer/stats/"))
}

func TestStudentDashboard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	route := ts.addRoute("Campus Shuttle", "150.00", 20)
	ts.app.API.AddBooking("ada@bui.edu.ng", model.Booking{TransportOption: &route, SeatsBooked: 1, BookingStatus: model.BookingPending})
	ts.app.API.AddBooking("ada@bui.edu.ng", model.Booking{TransportOption: &route, SeatsBooked: 2, BookingStatus: model.BookingCompleted})

	rr := ts.get("/student-dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, "section.student-dashboard h1", "Welcome, Test User")
	assertContainsText(t, doc, "#total-bookings .stat-value", "2")
	assertContainsText(t, doc, "#pending-bookings .stat-value", "1")
	assertContainsText(t, doc, "#completed-bookings .stat-value", "1")
	assert.Equal(t, 2, doc.Find(".booking-list.recent article.booking").Length())
	assertContainsText(t, doc, ".booking-list.recent", "Campus Shuttle")
}

func TestStudentDashboardFailureShowsSingleError(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	ts.app.API.Fail(http.MethodGet, "/bookings/stats/", gatewaytest.Failure{Status: http.StatusInternalServerError, Body: "{}"})

	rr := ts.get("/student-dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, 1, doc.Find(".alert-error").Length())
	assertContainsText(t, doc, ".alert-error", "Something went wrong. Please try again.")
	assertNotContainsElement(t, doc, ".stats")
}

func TestOrganizerDashboard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("fleet@bui.edu.ng", model.RoleTransportOrganizer)
	ts.addRoute("Campus Shuttle", "150.00", 20)
	ts.addRoute("Airport Run", "2500.00", 14)
	ts.app.API.SetOrganizerStats(model.OrganizerStats{
		TotalBookings:   12,
		PendingBookings: 3,
		ActiveRoutes:    2,
		TotalEarnings:   "12500.00",
		PlatformFees:    "250.00",
		MonthlyEarnings: "4000.50",
	})

	rr := ts.get("/organizer-dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, "#total-earnings .stat-value", "₦12500.00")
	assertContainsText(t, doc, "#monthly-earnings .stat-value", "₦4000.50")
	assertContainsText(t, doc, "#active-routes .stat-value", "2")
	assert.Equal(t, 2, doc.Find("ul.my-routes li").Length())
	assertContainsText(t, doc, "ul.my-routes", "Airport Run")

	assert.Equal(t, 1, ts.app.API.Calls(http.MethodGet, "/organizer/stats/"))
	assert.Equal(t, 1, ts.app.API.Calls(http.MethodGet, "/organizer/recent-bookings/"))
	assert.Equal(t, 1, ts.app.API.Calls(http.MethodGet, "/transport/my-options/"))
}

func TestOrganizerDashboardFailureShowsSingleError(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("fleet@bui.edu.ng", model.RoleTransportOrganizer)
	ts.app.API.Fail(http.MethodGet, "/transport/my-options/", gatewaytest.Failure{
		Status: http.StatusBadRequest,
		Body:   `{"detail":"Organizer profile incomplete"}`,
	})

	rr := ts.get("/organizer-dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, 1, doc.Find(".alert-error").Length())
	assertContainsText(t, doc, ".alert-error", "Organizer profile incomplete")
	assertNotContainsElement(t, doc, ".stats")
}
