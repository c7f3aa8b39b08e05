// Package gatewaytest provides an in-process fake of the transport booking REST API.
package gatewaytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
)

// Failure is a canned error response
type Failure struct {
	Status int
	Body   string
}

type account struct {
	password string
	identity model.Identity
	profile  model.Profile
}

// Server is a fake API backed by in-memory state
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]*account // by email
	tokens    map[string]string   // access token -> email
	options   []model.TransportOption
	bookings  map[string][]model.Booking // by student email
	calls     map[string]int             // "METHOD /path" -> count
	failures  map[string]Failure
	delays    map[string]time.Duration
	orgStats  model.OrganizerStats
	nestedReg bool
}

// New starts a fake API server that is closed when the test ends
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		accounts:  make(map[string]*account),
		tokens:    make(map[string]string),
		bookings:  make(map[string][]model.Booking),
		calls:     make(map[string]int),
		failures:  make(map[string]Failure),
		delays:    make(map[string]time.Duration),
		nestedReg: true,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root to configure clients with
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Client returns an unauthenticated gateway client for this server
func (s *Server) Client() *gateway.Client {
	cfg := gateway.DefaultConfig()
	cfg.BaseURL = s.BaseURL()
	cfg.Timeout = 5 * time.Second
	return gateway.New(cfg)
}

// AddUser creates an account and returns its identity
func (s *Server) AddUser(email, password string, role model.Role) model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity := model.Identity{
		ID:        model.UserID(uuid.NewString()),
		Email:     email,
		Username:  strings.Split(email, "@")[0],
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	s.accounts[email] = &account{
		password: password,
		identity: identity,
		profile:  model.Profile{"department": "Computer Science", "level": float64(300)},
	}
	return identity
}

// IssueToken creates a valid credential for email without a login call
func (s *Server) IssueToken(email string) model.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(email)
}

// RegisterToken makes an arbitrary access token valid for email
func (s *Server) RegisterToken(token, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = email
}

// RevokeAll invalidates every issued token
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

// AddTransportOption adds a route and returns it with its assigned id
func (s *Server) AddTransportOption(option model.TransportOption) model.TransportOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	if option.ID == "" {
		option.ID = model.TransportOptionID(uuid.NewString())
	}
	s.options = append(s.options, option)
	return option
}

// AddBooking records a booking for a student
func (s *Server) AddBooking(email string, booking model.Booking) model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if booking.ID == "" {
		booking.ID = model.BookingID(uuid.NewString())
	}
	s.bookings[email] = append(s.bookings[email], booking)
	return booking
}

// Bookings returns the bookings recorded for a student
func (s *Server) Bookings(email string) []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Booking(nil), s.bookings[email]...)
}

// SetOrganizerStats sets the organizer stats response
func (s *Server) SetOrganizerStats(stats model.OrganizerStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgStats = stats
}

// SetFlatRegistration makes registration answer with flat access_token fields
// instead of the nested tokens object
func (s *Server) SetFlatRegistration(flat bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nestedReg = !flat
}

// Fail makes every call to method and path (relative to the API root) answer with f
func (s *Server) Fail(method, path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = f
}

// Delay makes calls to method and path wait d before answering
func (s *Server) Delay(method, path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[method+" "+path] = d
}

// Calls returns how many times method and path (relative to the API root) were called
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

// TotalCalls returns the number of calls made to any endpoint
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// SignedToken returns an HS256 JWT expiring at exp
func SignedToken(exp time.Time) string {
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("gatewaytest"))
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) issueLocked(email string) model.Credential {
	cred := model.Credential{
		AccessToken:  "acc_" + uuid.NewString(),
		RefreshToken: "ref_" + uuid.NewString(),
	}
	s.tokens[cred.AccessToken] = email
	return cred
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
