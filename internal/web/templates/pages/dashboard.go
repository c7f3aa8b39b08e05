package pages

import (
	"strconv"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/web/templates/layout"
)

// StudentDashboardData is the student dashboard model
type StudentDashboardData struct {
	layout.PageData
	Stats    model.BookingStats
	Bookings []model.Booking
	Error    string
}

func (d StudentDashboardData) heading() string {
	if d.User != nil {
		return "Welcome, " + d.User.DisplayName()
	}
	return "Dashboard"
}

// OrganizerDashboardData is the organizer dashboard model
type OrganizerDashboardData struct {
	layout.PageData
	Stats    model.OrganizerStats
	Bookings []model.Booking
	Options  []model.TransportOption
	Error    string
}

func routeSummary(o model.TransportOption) string {
	return o.RouteName + " · " + strconv.Itoa(o.AvailableSeats) + "/" + strconv.Itoa(o.TotalSeats) + " seats · " + layout.Amount(o.Price)
}
