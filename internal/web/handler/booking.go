package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/web/middleware"
	"github.com/mcoot/buitransport/internal/web/templates/pages"
)

// BookingHandler handles the booking form and booking history
type BookingHandler struct {
	logger *slog.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(logger *slog.Logger) *BookingHandler {
	return &BookingHandler{logger: logger}
}

// BookPage renders the booking form for a route
func (h *BookingHandler) BookPage(w http.ResponseWriter, r *http.Request) {
	option, ok := h.loadOption(w, r)
	if !ok {
		return
	}

	seats := 1
	if n, err := strconv.Atoi(r.URL.Query().Get("seats")); err == nil && n > 0 && n <= option.AvailableSeats {
		seats = n
	}

	h.renderBook(w, r, pages.BookData{
		Option:        *option,
		Seats:         seats,
		PaymentMethod: model.PaymentWallet,
	})
}

// Book handles booking form submission
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	option, ok := h.loadOption(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderBook(w, r, pages.BookData{Option: *option, Seats: 1, Error: "Invalid form data"})
		return
	}

	data := pages.BookData{
		Option:          *option,
		PaymentMethod:   model.PaymentMethod(r.FormValue("payment_method")),
		SpecialRequests: strings.TrimSpace(r.FormValue("special_requests")),
	}
	seats, err := strconv.Atoi(r.FormValue("seats_booked"))
	if err != nil || seats <= 0 {
		data.Seats = 1
		data.Error = capitalize(model.ErrInvalidSeats.Error())
		h.renderBook(w, r, data)
		return
	}
	data.Seats = seats
	if seats > option.AvailableSeats {
		data.Error = "Only " + strconv.Itoa(option.AvailableSeats) + " seats available"
		h.renderBook(w, r, data)
		return
	}
	if !data.PaymentMethod.Valid() {
		data.PaymentMethod = model.PaymentWallet
	}

	_, err = middleware.GetSession(r.Context()).Client().CreateBooking(r.Context(), model.BookingRequest{
		TransportOption: option.ID,
		SeatsBooked:     seats,
		PaymentMethod:   data.PaymentMethod,
		SpecialRequests: data.SpecialRequests,
	})
	if err != nil {
		h.logger.Info("booking failed", slog.String("error", err.Error()))
		data.Error = gateway.UserMessage(err, "Failed to create booking")
		h.renderBook(w, r, data)
		return
	}

	middleware.SetFlash(w, "success", "Booking created successfully!")
	http.Redirect(w, r, "/bookings", http.StatusSeeOther)
}

// List renders the user's bookings, filtered by the status query parameter
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	data := pages.BookingsData{}
	if status, ok := model.ParseBookingStatus(r.URL.Query().Get("status")); ok {
		data.Status = status
	}

	bookings, err := middleware.GetSession(r.Context()).Client().MyBookings(r.Context())
	if err != nil {
		h.logger.Warn("failed to list bookings", slog.String("error", err.Error()))
		data.Error = gateway.UserMessage(err, "Failed to load bookings")
	} else {
		data.Total = len(bookings)
		data.Counts = make(map[model.BookingStatus]int, len(model.BookingStatuses))
		for _, b := range bookings {
			data.Counts[b.BookingStatus]++
		}
		data.Bookings = model.FilterBookings(bookings, data.Status)
	}

	data.PageData = pageData(r, "My Bookings")
	render(w, r, h.logger, http.StatusOK, pages.Bookings(data))
}

// Cancel cancels one booking and returns to the booking list
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseBookingID(mux.Vars(r)["id"])
	if err != nil {
		middleware.SetFlash(w, "error", "Booking not found")
		http.Redirect(w, r, "/bookings", http.StatusSeeOther)
		return
	}

	if err := middleware.GetSession(r.Context()).Client().CancelBooking(r.Context(), id); err != nil {
		h.logger.Info("cancel booking failed", slog.String("booking_id", string(id)), slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", gateway.UserMessage(err, "Failed to cancel booking"))
	} else {
		middleware.SetFlash(w, "success", "Booking cancelled")
	}
	http.Redirect(w, r, "/bookings", http.StatusSeeOther)
}

// loadOption fetches the route named in the URL, rendering an error page when it cannot
func (h *BookingHandler) loadOption(w http.ResponseWriter, r *http.Request) (*model.TransportOption, bool) {
	id, err := model.ParseTransportOptionID(mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, h.logger, http.StatusNotFound, "Not Found", "Transport option not found")
		return nil, false
	}

	option, err := middleware.GetSession(r.Context()).Client().GetTransportOption(r.Context(), id)
	if err != nil {
		var ge *gateway.Error
		if errors.As(err, &ge) && ge.Status == http.StatusNotFound {
			renderError(w, r, h.logger, http.StatusNotFound, "Not Found", "Transport option not found")
			return nil, false
		}
		h.logger.Warn("failed to load transport option", slog.String("id", string(id)), slog.String("error", err.Error()))
		renderError(w, r, h.logger, http.StatusBadGateway, "Error", gateway.UserMessage(err, "Failed to load transport option"))
		return nil, false
	}
	return option, true
}

func (h *BookingHandler) renderBook(w http.ResponseWriter, r *http.Request, data pages.BookData) {
	data.PageData = pageData(r, "Book Transport")
	data.Quote = model.QuoteFor(data.Option, data.Seats)
	render(w, r, h.logger, http.StatusOK, pages.Book(data))
}
