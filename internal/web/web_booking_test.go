package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/buitransport/internal/model"
)

func TestTransportListIsPublic(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addRoute("Campus Shuttle", "150.00", 20)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, 1, doc.Find("article.transport-option").Length())
	assertContainsText(t, doc, "article.transport-option .price", "₦150.00")
	assertNotContainsElement(t, doc, "article.transport-option a[href^='/book/']")
}

func TestTransportListFilters(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addRoute("Campus Shuttle", "150.00", 20)
	ts.app.API.AddTransportOption(model.TransportOption{
		RouteName:         "Airport Run",
		DepartureLocation: "Hostel B",
		Destination:       "Ibadan Airport",
		Price:             "2500.00",
		TotalSeats:        14,
		AvailableSeats:    14,
		IsActive:          true,
	})

	doc := parseHTML(t, ts.get("/?q=airport").Body)
	assert.Equal(t, 1, doc.Find("article.transport-option").Length())
	assertContainsText(t, doc, "article.transport-option h2", "Airport Run")

	doc = parseHTML(t, ts.get("/?destination=challenge").Body)
	assert.Equal(t, 1, doc.Find("article.transport-option").Length())
	assertContainsText(t, doc, "article.transport-option h2", "Campus Shuttle")

	doc = parseHTML(t, ts.get("/?q=nowhere").Body)
	assertContainsElement(t, doc, "p.empty")
}

func TestTransportListOffersBookingWhenLoggedIn(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	open := ts.addRoute("Campus Shuttle", "150.00", 20)
	ts.addRoute("Full Bus", "150.00", 0)

	doc := parseHTML(t, ts.get("/").Body)
	assert.Equal(t, 1, doc.Find("a[href^='/book/']").Length())
	assertContainsElement(t, doc, "a[href='/book/"+string(open.ID)+"']")
}

func TestBookPageShowsPriceSummary(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	route := ts.addRoute("Campus Shuttle", "100.00", 20)

	rr := ts.get("/book/" + string(route.ID) + "?seats=2")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, "dd.subtotal", "₦200.00")
	assertContainsText(t, doc, "dd.platform-fee", "₦4.00")
	assertContainsText(t, doc, "dd.total", "₦204.00")
}

func TestBookPageNotFound(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)

	rr := ts.get("/book/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 0, ts.app.API.Calls(http.MethodGet, "/transport/options/not-a-uuid/"))

	rr = ts.get("/book/5f0c7f38-0d6e-4a4f-9c55-3a3b0f1b8b7e")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assertContainsText(t, parseHTML(t, rr.Body), ".alert-error", "Transport option not found")
}

func TestBookCreatesBooking(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	route := ts.addRoute("Campus Shuttle", "250.00", 20)

	rr := ts.post("/book/"+string(route.ID), url.Values{
		"seats_booked":     {"2"},
		"payment_method":   {"card"},
		"special_requests": {"Window seat"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/bookings", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, ".flash-success", "Booking created successfully!")
	assert.Equal(t, 1, doc.Find("article.booking[data-status='pending']").Length())

	bookings := ts.app.API.Bookings("ada@bui.edu.ng")
	require.Len(t, bookings, 1)
	assert.Equal(t, 2, bookings[0].SeatsBooked)
	assert.Equal(t, model.PaymentCard, bookings[0].PaymentMethod)
	assert.Equal(t, "Window seat", bookings[0].SpecialRequests)
	assert.Equal(t, model.Amount("510.00"), bookings[0].TotalAmount)
}

func TestBookRejectsInvalidSeats(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	route := ts.addRoute("Campus Shuttle", "250.00", 3)

	tests := []struct {
		seats string
		want  string
	}{
		{"0", "Number of seats must be greater than 0"},
		{"abc", "Number of seats must be greater than 0"},
		{"4", "Only 3 seats available"},
	}

	for _, tt := range tests {
		t.Run(tt.seats, func(t *testing.T) {
			rr := ts.post("/book/"+string(route.ID), url.Values{"seats_booked": {tt.seats}, "payment_method": {"wallet"}})
			require.Equal(t, http.StatusOK, rr.Code)
			assertContainsText(t, parseHTML(t, rr.Body), ".alert-error", tt.want)
		})
	}
	assert.Equal(t, 0, ts.app.API.Calls(http.MethodPost, "/bookings/create/"))
}

func TestBookingsFilterByStatus(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	route := ts.addRoute("Campus Shuttle", "150.00", 20)
	ts.app.API.AddBooking("ada@bui.edu.ng", model.Booking{TransportOption: &route, SeatsBooked: 1, BookingStatus: model.BookingPending})
	ts.app.API.AddBooking("ada@bui.edu.ng", model.Booking{TransportOption: &route, SeatsBooked: 1, BookingStatus: model.BookingCancelled})
	ts.app.API.AddBooking("ada@bui.edu.ng", model.Booking{TransportOption: &route, SeatsBooked: 1, BookingStatus: model.BookingCancelled})

	doc := parseHTML(t, ts.get("/bookings").Body)
	assert.Equal(t, 3, doc.Find("article.booking").Length())
	assertContainsText(t, doc, "a.tab.active", "All")

	doc = parseHTML(t, ts.get("/bookings?status=cancelled").Body)
	assert.Equal(t, 2, doc.Find("article.booking").Length())
	assert.Equal(t, 2, doc.Find("article.booking[data-status='cancelled']").Length())
	assertContainsText(t, doc, "a.tab.active", "Cancelled")

	doc = parseHTML(t, ts.get("/bookings?status=bogus").Body)
	assert.Equal(t, 3, doc.Find("article.booking").Length())
}

func TestCancelBooking(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	route := ts.addRoute("Campus Shuttle", "150.00", 20)
	booking := ts.app.API.AddBooking("ada@bui.edu.ng", model.Booking{TransportOption: &route, SeatsBooked: 1, BookingStatus: model.BookingConfirmed})

	doc := parseHTML(t, ts.get("/bookings").Body)
	assertContainsElement(t, doc, "form[action='/bookings/"+string(booking.ID)+"/cancel']")

	rr := ts.post("/bookings/"+string(booking.ID)+"/cancel", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/bookings", rr.Header().Get("Location"))

	doc = parseHTML(t, ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-success", "Booking cancelled")
	assertNotContainsElement(t, doc, "form[action$='/cancel']")
	assert.Equal(t, model.BookingCancelled, ts.app.API.Bookings("ada@bui.edu.ng")[0].BookingStatus)
}

func TestCancelCompletedBookingFails(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	booking := ts.app.API.AddBooking("ada@bui.edu.ng", model.Booking{SeatsBooked: 1, BookingStatus: model.BookingCompleted})

	rr := ts.post("/bookings/"+string(booking.ID)+"/cancel", nil)
	doc := parseHTML(t, ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "This booking cannot be cancelled.")
	assert.Equal(t, model.BookingCompleted, ts.app.API.Bookings("ada@bui.edu.ng")[0].BookingStatus)
}
