package pages

import (
	"strconv"
	"strings"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/web/templates/layout"
)

// MaxSeatsPerBooking caps the seat selector
const MaxSeatsPerBooking = 10

// BookData is the booking form model
type BookData struct {
	layout.PageData
	Option          model.TransportOption
	Seats           int
	PaymentMethod   model.PaymentMethod
	SpecialRequests string
	Quote           model.Quote
	Error           string
}

// seatChoices lists the selectable seat counts for the route
func (d BookData) seatChoices() []int {
	n := min(d.Option.AvailableSeats, MaxSeatsPerBooking)
	choices := make([]int, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		choices = append(choices, i)
	}
	return choices
}

// BookingsData is the booking history model
type BookingsData struct {
	layout.PageData
	Bookings []model.Booking
	// Status is the active filter tab; empty means all
	Status model.BookingStatus
	Counts map[model.BookingStatus]int
	Total  int
	Error  string
}

func tabLabel(label string, count int) string {
	return label + " (" + strconv.Itoa(count) + ")"
}

func bookingSummary(b model.Booking) string {
	return strconv.Itoa(b.SeatsBooked) + " seat(s) · " + layout.Amount(b.TotalAmount)
}

func cancelURL(b model.Booking) string {
	return "/bookings/" + string(b.ID) + "/cancel"
}

func statusLabel(s model.BookingStatus) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func paymentLabel(m model.PaymentMethod) string {
	switch m {
	case model.PaymentWallet:
		return "Wallet"
	case model.PaymentCard:
		return "Card"
	case model.PaymentBankTransfer:
		return "Bank Transfer"
	default:
		return string(m)
	}
}
