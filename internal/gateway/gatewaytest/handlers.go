package gatewaytest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mcoot/buitransport/internal/model"
)

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.intercept)

	api.HandleFunc("/auth/login/", s.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register/", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/user/", s.authed(s.currentUser)).Methods(http.MethodGet)

	api.HandleFunc("/transport/options/", s.listOptions).Methods(http.MethodGet)
	api.HandleFunc("/transport/options/{id}/", s.getOption).Methods(http.MethodGet)
	api.HandleFunc("/transport/my-options/", s.authed(s.myOptions)).Methods(http.MethodGet)

	api.HandleFunc("/bookings/create/", s.authed(s.createBooking)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/my-bookings/", s.authed(s.myBookings)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/stats/", s.authed(s.bookingStats)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel/", s.authed(s.cancelBooking)).Methods(http.MethodPatch)

	api.HandleFunc("/organizer/stats/", s.authed(s.organizerStats)).Methods(http.MethodGet)
	api.HandleFunc("/organizer/recent-bookings/", s.authed(s.recentBookings)).Methods(http.MethodGet)

	api.HandleFunc("/users/profile/", s.authed(s.profile)).Methods(http.MethodGet)
	api.HandleFunc("/users/profile/", s.authed(s.updateProfile)).Methods(http.MethodPatch)

	return r
}

// intercept counts calls and applies configured delays and failures
func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")

		s.mu.Lock()
		s.calls[key]++
		failure, failing := s.failures[key]
		delay := s.delays[key]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(failure.Status)
			_, _ = w.Write([]byte(failure.Body))
			return
		}

		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, acct *account)

func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		s.mu.Lock()
		email, valid := s.tokens[token]
		acct := s.accounts[email]
		s.mu.Unlock()

		if !valid || acct == nil {
			writeDetail(w, http.StatusUnauthorized, "Given token not valid for any token type")
			return
		}
		h(w, r, acct)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed request.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[req.Email]
	if !ok || acct.password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	cred := s.issueLocked(req.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  cred.AccessToken,
		"refresh_token": cred.RefreshToken,
		"user":          acct.identity,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req model.RegistrationFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed request.")
		return
	}

	fieldErrors := map[string][]string{}
	if req.Email == "" {
		fieldErrors["email"] = append(fieldErrors["email"], "This field is required.")
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = append(fieldErrors["password"], "This password is too short. It must contain at least 8 characters.")
	}
	if req.Password != req.PasswordConfirm {
		fieldErrors["non_field_errors"] = append(fieldErrors["non_field_errors"], "Passwords don't match.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		fieldErrors["email"] = append(fieldErrors["email"], "user with this email already exists.")
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrors)
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	acct := &account{
		password: req.Password,
		identity: model.Identity{
			ID:          model.UserID(uuid.NewString()),
			Email:       req.Email,
			Username:    req.Username,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
			Role:        role,
		},
		profile: model.Profile{},
	}
	s.accounts[req.Email] = acct
	cred := s.issueLocked(req.Email)

	if s.nestedReg {
		writeJSON(w, http.StatusCreated, map[string]any{
			"user":    acct.identity,
			"tokens":  map[string]string{"access": cred.AccessToken, "refresh": cred.RefreshToken},
			"message": "User registered successfully",
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"access_token":  cred.AccessToken,
		"refresh_token": cred.RefreshToken,
		"user":          acct.identity,
	})
}

func (s *Server) currentUser(w http.ResponseWriter, _ *http.Request, acct *account) {
	writeJSON(w, http.StatusOK, acct.identity)
}

func (s *Server) listOptions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	options := append([]model.TransportOption{}, s.options...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(options),
		"results": options,
	})
}

func (s *Server) getOption(w http.ResponseWriter, r *http.Request) {
	option, ok := s.findOption(model.TransportOptionID(mux.Vars(r)["id"]))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, option)
}

func (s *Server) myOptions(w http.ResponseWriter, r *http.Request, acct *account) {
	if !acct.identity.Role.IsOrganizer() {
		writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}
	s.mu.Lock()
	options := limit(append([]model.TransportOption{}, s.options...), r)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, options)
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request, acct *account) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed request.")
		return
	}
	if req.SeatsBooked <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"seats_booked": {"Number of seats must be greater than 0."},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, o := range s.options {
		if o.ID == req.TransportOption {
			idx = i
		}
	}
	if idx < 0 {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"transport_option": {"Invalid pk - object does not exist."},
		})
		return
	}
	if s.options[idx].AvailableSeats < req.SeatsBooked {
		writeDetail(w, http.StatusBadRequest, "Only "+strconv.Itoa(s.options[idx].AvailableSeats)+" seats available.")
		return
	}
	s.options[idx].AvailableSeats -= req.SeatsBooked

	option := s.options[idx]
	quote := model.QuoteFor(option, req.SeatsBooked)
	booking := model.Booking{
		ID:              model.BookingID(uuid.NewString()),
		TransportOption: &option,
		BookingDate:     time.Now().Format(time.DateOnly),
		SeatsBooked:     req.SeatsBooked,
		TotalAmount:     model.Amount(strconv.FormatFloat(quote.Total, 'f', 2, 64)),
		PlatformFee:     model.Amount(strconv.FormatFloat(quote.PlatformFee, 'f', 2, 64)),
		BookingStatus:   model.BookingPending,
		PaymentStatus:   "pending",
		PaymentMethod:   req.PaymentMethod,
		SpecialRequests: req.SpecialRequests,
		StudentName:     acct.identity.DisplayName(),
	}
	s.bookings[acct.identity.Email] = append(s.bookings[acct.identity.Email], booking)
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) myBookings(w http.ResponseWriter, _ *http.Request, acct *account) {
	s.mu.Lock()
	bookings := append([]model.Booking{}, s.bookings[acct.identity.Email]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request, acct *account) {
	id := model.BookingID(mux.Vars(r)["id"])

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := s.bookings[acct.identity.Email]
	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		if !bookings[i].Cancellable() {
			writeDetail(w, http.StatusBadRequest, "This booking cannot be cancelled.")
			return
		}
		bookings[i].BookingStatus = model.BookingCancelled
		writeJSON(w, http.StatusOK, bookings[i])
		return
	}
	writeDetail(w, http.StatusNotFound, "Not found.")
}

func (s *Server) bookingStats(w http.ResponseWriter, _ *http.Request, acct *account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats model.BookingStats
	for _, b := range s.bookings[acct.identity.Email] {
		stats.TotalBookings++
		switch b.BookingStatus {
		case model.BookingPending:
			stats.PendingBookings++
		case model.BookingConfirmed:
			stats.ConfirmedBookings++
		case model.BookingCompleted:
			stats.CompletedBookings++
		case model.BookingCancelled:
			stats.CancelledBookings++
		}
	}
	stats.TotalSpent = "0.00"
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) organizerStats(w http.ResponseWriter, _ *http.Request, acct *account) {
	if !acct.identity.Role.IsOrganizer() {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Invalid user role"})
		return
	}
	s.mu.Lock()
	stats := s.orgStats
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) recentBookings(w http.ResponseWriter, r *http.Request, acct *account) {
	if !acct.identity.Role.IsOrganizer() {
		writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}
	s.mu.Lock()
	var all []model.Booking
	for _, bookings := range s.bookings {
		all = append(all, bookings...)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"results": limit(all, r)})
}

func (s *Server) profile(w http.ResponseWriter, _ *http.Request, acct *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, acct.profile)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request, acct *account) {
	var changes model.Profile
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed request.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range changes {
		acct.profile[k] = v
	}
	writeJSON(w, http.StatusOK, acct.profile)
}

func (s *Server) findOption(id model.TransportOptionID) (model.TransportOption, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.options {
		if o.ID == id {
			return o, true
		}
	}
	return model.TransportOption{}, false
}

func limit[T any](items []T, r *http.Request) []T {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
