package handler

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/services/session"
	"github.com/mcoot/buitransport/internal/web/middleware"
	"github.com/mcoot/buitransport/internal/web/templates/pages"
)

const (
	recentBookingsLimit = 5
	myRoutesLimit       = 5
	msgDashboardFailed  = "Failed to load dashboard data"
)

// DashboardHandler serves the role-specific dashboards
type DashboardHandler struct {
	logger *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{logger: logger}
}

// Redirect sends the user to the dashboard of their role
func (h *DashboardHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetSession(r.Context()).Snapshot()
	http.Redirect(w, r, session.DashboardFor(state.Role()).Path(), http.StatusSeeOther)
}

// Student renders the student dashboard. Bookings and stats are fetched
// together and the page only renders once both have arrived.
func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	api := middleware.GetSession(r.Context()).Client()
	data := pages.StudentDashboardData{}

	err := fanOut(r.Context(),
		func(ctx context.Context) error {
			bookings, err := api.MyBookings(ctx)
			data.Bookings = latest(bookings, recentBookingsLimit)
			return err
		},
		func(ctx context.Context) error {
			stats, err := api.BookingStats(ctx)
			if err == nil {
				data.Stats = *stats
			}
			return err
		},
	)
	if err != nil {
		h.logger.Warn("failed to load student dashboard", slog.String("error", err.Error()))
		data = pages.StudentDashboardData{Error: gateway.UserMessage(err, msgDashboardFailed)}
	}

	// Built last: a 401 above may have ended the session
	data.PageData = pageData(r, "Dashboard")
	render(w, r, h.logger, http.StatusOK, pages.StudentDashboard(data))
}

// Organizer renders the organizer dashboard from three concurrent calls
func (h *DashboardHandler) Organizer(w http.ResponseWriter, r *http.Request) {
	api := middleware.GetSession(r.Context()).Client()
	data := pages.OrganizerDashboardData{}

	err := fanOut(r.Context(),
		func(ctx context.Context) error {
			stats, err := api.OrganizerStats(ctx)
			if err == nil {
				data.Stats = *stats
			}
			return err
		},
		func(ctx context.Context) (err error) {
			data.Bookings, err = api.OrganizerRecentBookings(ctx, recentBookingsLimit)
			return err
		},
		func(ctx context.Context) (err error) {
			data.Options, err = api.MyTransportOptions(ctx, myRoutesLimit)
			return err
		},
	)
	if err != nil {
		h.logger.Warn("failed to load organizer dashboard", slog.String("error", err.Error()))
		data = pages.OrganizerDashboardData{Error: gateway.UserMessage(err, msgDashboardFailed)}
	}

	data.PageData = pageData(r, "Organizer Dashboard")
	render(w, r, h.logger, http.StatusOK, pages.OrganizerDashboard(data))
}

// fanOut runs calls concurrently and returns the first error once all have finished
func fanOut(ctx context.Context, calls ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, call := range calls {
		g.Go(func() error { return call(ctx) })
	}
	return g.Wait()
}

// latest returns at most n bookings, keeping the API's newest-first order
func latest(bookings []model.Booking, n int) []model.Booking {
	if len(bookings) > n {
		return bookings[:n]
	}
	return bookings
}
