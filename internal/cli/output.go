package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(o.out, data)
		return
	}
	o.printText(data)
}

// PrintError outputs an error. API failures show the same text the web pages do.
func (o *Output) PrintError(err error) {
	msg := err.Error()
	var ge *gateway.Error
	if errors.As(err, &ge) {
		msg = gateway.UserMessage(err, msg)
	}

	if o.format == "json" {
		o.printJSON(o.errOut, map[string]any{"error": map[string]string{"message": msg}})
		return
	}
	fmt.Fprintf(o.errOut, "Error: %s\n", msg)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(o.out, map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(o.out, msg)
}

func (o *Output) printJSON(w io.Writer, data any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionView:
		o.printSession(v)
	case *model.Identity:
		o.printIdentity(v)
	case DashboardView:
		o.printDashboard(v)
	case []model.TransportOption:
		o.printTransportOptions(v)
	case *model.TransportOption:
		o.printTransportOption(v)
	case []model.Booking:
		o.printBookings(v)
	case *model.Booking:
		o.printBooking(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(o.out, data)
	}
}

// SessionView is printed after login and registration
type SessionView struct {
	User      *model.Identity `json:"user"`
	Dashboard string          `json:"dashboard"`
}

// DashboardView is the dashboard that applies to the logged in user and its figures
type DashboardView struct {
	Dashboard string                `json:"dashboard"`
	Path      string                `json:"path"`
	Student   *model.BookingStats   `json:"student_stats,omitempty"`
	Organizer *model.OrganizerStats `json:"organizer_stats,omitempty"`
}

func (o *Output) printSession(s SessionView) {
	fmt.Fprintf(o.out, "Logged in as %s <%s>\n", s.User.DisplayName(), s.User.Email)
	fmt.Fprintf(o.out, "Role: %s\n", s.User.Role.Label())
	fmt.Fprintf(o.out, "Dashboard: %s\n", s.Dashboard)
}

func (o *Output) printIdentity(i *model.Identity) {
	fmt.Fprintf(o.out, "Name: %s\n", i.DisplayName())
	fmt.Fprintf(o.out, "Email: %s\n", i.Email)
	if i.PhoneNumber != "" {
		fmt.Fprintf(o.out, "Phone: %s\n", i.PhoneNumber)
	}
	fmt.Fprintf(o.out, "Role: %s\n", i.Role.Label())
	fmt.Fprintf(o.out, "ID: %s\n", i.ID)
}

func (o *Output) printDashboard(d DashboardView) {
	fmt.Fprintf(o.out, "Dashboard: %s (%s)\n", d.Dashboard, d.Path)
	if s := d.Student; s != nil {
		fmt.Fprintf(o.out, "Total bookings: %d\n", s.TotalBookings)
		fmt.Fprintf(o.out, "Pending: %d  Confirmed: %d  Completed: %d  Cancelled: %d\n",
			s.PendingBookings, s.ConfirmedBookings, s.CompletedBookings, s.CancelledBookings)
		fmt.Fprintf(o.out, "Total spent: %s\n", model.Naira(s.TotalSpent.Float()))
	}
	if s := d.Organizer; s != nil {
		fmt.Fprintf(o.out, "Total earnings: %s\n", model.Naira(s.TotalEarnings.Float()))
		fmt.Fprintf(o.out, "This month: %s\n", model.Naira(s.MonthlyEarnings.Float()))
		fmt.Fprintf(o.out, "Platform fees: %s\n", model.Naira(s.PlatformFees.Float()))
		fmt.Fprintf(o.out, "Bookings: %d (%d pending)\n", s.TotalBookings, s.PendingBookings)
		fmt.Fprintf(o.out, "Active routes: %d\n", s.ActiveRoutes)
	}
}

func (o *Output) printTransportOptions(options []model.TransportOption) {
	if len(options) == 0 {
		fmt.Fprintln(o.out, "No transport options found.")
		return
	}
	for _, t := range options {
		fmt.Fprintf(o.out, "%s  %s  %s -> %s  %s  %s  %d/%d seats\n",
			t.ID, t.RouteName, t.DepartureLocation, t.Destination, t.DepartureTime,
			model.Naira(t.Price.Float()), t.AvailableSeats, t.TotalSeats)
	}
}

func (o *Output) printTransportOption(t *model.TransportOption) {
	fmt.Fprintf(o.out, "Route: %s (%s)\n", t.RouteName, t.ID)
	fmt.Fprintf(o.out, "From: %s\n", t.DepartureLocation)
	fmt.Fprintf(o.out, "To: %s\n", t.Destination)
	fmt.Fprintf(o.out, "Departs: %s", t.DepartureTime)
	if t.ArrivalTime != "" {
		fmt.Fprintf(o.out, "  Arrives: %s", t.ArrivalTime)
	}
	fmt.Fprintln(o.out)
	if len(t.DaysOfOperation) > 0 {
		fmt.Fprintf(o.out, "Days: %s\n", strings.Join(t.DaysOfOperation, ", "))
	}
	fmt.Fprintf(o.out, "Price: %s per seat\n", model.Naira(t.Price.Float()))
	fmt.Fprintf(o.out, "Seats: %d of %d available\n", t.AvailableSeats, t.TotalSeats)
	if t.OrganizerName != "" {
		fmt.Fprintf(o.out, "Organizer: %s\n", t.OrganizerName)
	}
}

func (o *Output) printBookings(bookings []model.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(o.out, "No bookings found.")
		return
	}
	for _, b := range bookings {
		fmt.Fprintf(o.out, "%s  %-9s  %s  %d seat(s)  %s\n",
			b.ID, b.BookingStatus, routeOrDash(b), b.SeatsBooked, model.Naira(b.TotalAmount.Float()))
	}
}

func (o *Output) printBooking(b *model.Booking) {
	fmt.Fprintf(o.out, "Booking: %s\n", b.ID)
	fmt.Fprintf(o.out, "Route: %s\n", routeOrDash(*b))
	fmt.Fprintf(o.out, "Status: %s\n", b.BookingStatus)
	fmt.Fprintf(o.out, "Seats: %d\n", b.SeatsBooked)
	fmt.Fprintf(o.out, "Total: %s (platform fee %s)\n", model.Naira(b.TotalAmount.Float()), model.Naira(b.PlatformFee.Float()))
	if b.PaymentMethod != "" {
		fmt.Fprintf(o.out, "Payment: %s\n", b.PaymentMethod)
	}
}

func routeOrDash(b model.Booking) string {
	if name := b.RouteName(); name != "" {
		return name
	}
	return "-"
}
