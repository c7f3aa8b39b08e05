package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/gateway/gatewaytest"
	"github.com/mcoot/buitransport/internal/model"
)

const password = "correct-horse"

type CLISuite struct {
	suite.Suite
	api      *gatewaytest.Server
	credFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.api = gatewaytest.New(s.T())
	s.credFile = filepath.Join(s.T().TempDir(), "btc", "credential.json")
}

type result struct {
	stdout string
	stderr string
	err    error
}

func (s *CLISuite) run(args ...string) result {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--api", s.api.BaseURL(), "--credential-file", s.credFile}, args...))
	err := cmd.ExecuteContext(s.T().Context())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func (s *CLISuite) login(email string) {
	res := s.run("login", "--email", email, "--password", password)
	s.Require().NoError(res.err)
}

func (s *CLISuite) TestLoginStoresCredential() {
	s.api.AddUser("ada@bui.edu.ng", password, model.RoleStudent)

	res := s.run("login", "--email", "ada@bui.edu.ng", "--password", password)
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Logged in as Test User <ada@bui.edu.ng>")
	s.Contains(res.stdout, "Dashboard: student")

	info, err := os.Stat(s.credFile)
	s.Require().NoError(err)
	s.Equal(os.FileMode(0600), info.Mode().Perm())

	res = s.run("whoami")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Email: ada@bui.edu.ng")
	s.Contains(res.stdout, "Role: Student")
}

func (s *CLISuite) TestLoginDashboardChoice() {
	s.api.AddUser("fleet@bui.edu.ng", password, model.RoleTransportOrganizer)

	res := s.run("login", "--email", "fleet@bui.edu.ng", "--password", password, "--dashboard", "student")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Dashboard: student")
}

func (s *CLISuite) TestLoginInvalidCredentials() {
	s.api.AddUser("ada@bui.edu.ng", password, model.RoleStudent)

	res := s.run("login", "--email", "ada@bui.edu.ng", "--password", "wrong")
	s.Require().Error(res.err)
	s.ErrorIs(res.err, gateway.Unauthorized)
	s.Equal(2, exitCode(res.err))

	_, err := os.Stat(s.credFile)
	s.True(os.IsNotExist(err))
}

func (s *CLISuite) TestProtectedCommandsRequireLogin() {
	for _, args := range [][]string{
		{"whoami"},
		{"dashboard"},
		{"bookings", "list"},
		{"bookings", "cancel", "5f0c7f38-0d6e-4a4f-9c55-3a3b0f1b8b7e"},
	} {
		res := s.run(args...)
		s.ErrorIs(res.err, model.ErrNotAuthenticated, "%v", args)
		s.EqualError(res.err, "not logged in")
	}
	s.Equal(0, s.api.TotalCalls())
}

func (s *CLISuite) TestLogout() {
	s.api.AddUser("ada@bui.edu.ng", password, model.RoleStudent)
	s.login("ada@bui.edu.ng")

	res := s.run("logout")
	s.Require().NoError(res.err)
	s.Equal("Logged out\n", res.stdout)

	_, err := os.Stat(s.credFile)
	s.True(os.IsNotExist(err))

	res = s.run("whoami")
	s.ErrorIs(res.err, model.ErrNotAuthenticated)
}

func (s *CLISuite) TestRevokedCredentialIsCleared() {
	s.api.AddUser("ada@bui.edu.ng", password, model.RoleStudent)
	s.login("ada@bui.edu.ng")
	s.api.RevokeAll()

	res := s.run("whoami")
	s.ErrorIs(res.err, model.ErrNotAuthenticated)

	_, err := os.Stat(s.credFile)
	s.True(os.IsNotExist(err))
}

func (s *CLISuite) TestExpiredCredentialSkipsNetwork() {
	s.api.AddUser("ada@bui.edu.ng", password, model.RoleStudent)
	token := gatewaytest.SignedToken(time.Now().Add(-time.Hour))
	s.api.RegisterToken(token, "ada@bui.edu.ng")

	s.Require().NoError(os.MkdirAll(filepath.Dir(s.credFile), 0700))
	data, err := json.Marshal(model.Credential{AccessToken: token})
	s.Require().NoError(err)
	s.Require().NoError(os.WriteFile(s.credFile, data, 0600))

	res := s.run("whoami")
	s.ErrorIs(res.err, model.ErrNotAuthenticated)
	s.Equal(0, s.api.Calls(http.MethodGet, "/auth/user/"))
}

func (s *CLISuite) TestRegister() {
	res := s.run("register",
		"--email", "chidi@bui.edu.ng",
		"--username", "chidi",
		"--first-name", "Chidi",
		"--last-name", "Okafor",
		"--role", "transport_organizer",
		"--password", password,
	)
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Logged in as Chidi Okafor <chidi@bui.edu.ng>")
	s.Contains(res.stdout, "Dashboard: organizer")

	res = s.run("dashboard")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Dashboard: organizer (/organizer-dashboard)")
}

func (s *CLISuite) TestRegisterValidation() {
	res := s.run("register", "--email", "chidi@bui.edu.ng", "--username", "chidi", "--password", "short")
	s.Require().Error(res.err)

	var ge *gateway.Error
	s.Require().ErrorAs(res.err, &ge)
	s.Equal(gateway.ValidationFailure, ge.Kind)
	s.Equal("password: This password is too short. It must contain at least 8 characters.", gateway.UserMessage(res.err, ""))

	res = s.run("register", "--email", "x@bui.edu.ng", "--username", "x", "--password", password, "--role", "admin")
	s.ErrorContains(res.err, "invalid role")
}

func (s *CLISuite) TestStudentDashboard() {
	s.api.AddUser("ada@bui.edu.ng", password, model.RoleStudent)
	s.api.AddBooking("ada@bui.edu.ng", model.Booking{BookingStatus: model.BookingPending, SeatsBooked: 1})
	s.login("ada@bui.edu.ng")

	res := s.run("dashboard", "-o", "json")
	s.Require().NoError(res.err)

	var view DashboardView
	s.Require().NoError(json.Unmarshal([]byte(res.stdout), &view))
	s.Equal("student", view.Dashboard)
	s.Equal("/student-dashboard", view.Path)
	s.Require().NotNil(view.Student)
	s.Equal(1, view.Student.PendingBookings)
	s.Nil(view.Organizer)
}

func (s *CLISuite) TestTransportListAndShow() {
	shuttle := s.api.AddTransportOption(model.TransportOption{
		RouteName: "Campus Shuttle", DepartureLocation: "Main Gate", Destination: "Challenge",
		DepartureTime: "07:30:00", Price: "150.00", TotalSeats: 20, AvailableSeats: 18,
	})
	s.api.AddTransportOption(model.TransportOption{
		RouteName: "Airport Run", DepartureLocation: "Hostel B", Destination: "Ibadan Airport",
		DepartureTime: "06:00:00", Price: "2500.00", TotalSeats: 14, AvailableSeats: 14,
	})

	res := s.run("transport", "list")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Campus Shuttle")
	s.Contains(res.stdout, "Airport Run")

	res = s.run("transport", "list", "--destination", "airport")
	s.Require().NoError(res.err)
	s.NotContains(res.stdout, "Campus Shuttle")
	s.Contains(res.stdout, "₦2500.00")

	res = s.run("transport", "show", string(shuttle.ID))
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Route: Campus Shuttle")
	s.Contains(res.stdout, "Seats: 18 of 20 available")

	res = s.run("transport", "show", "nope")
	s.ErrorIs(res.err, model.ErrInvalidID)
}

func (s *CLISuite) TestBookingLifecycle() {
	s.api.AddUser("ada@bui.edu.ng", password, model.RoleStudent)
	option := s.api.AddTransportOption(model.TransportOption{
		RouteName: "Campus Shuttle", Price: "250.00", TotalSeats: 20, AvailableSeats: 20,
	})
	s.login("ada@bui.edu.ng")

	res := s.run("bookings", "create", string(option.ID), "--seats", "2", "--payment-method", "card", "--notes", "Aisle seat")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Total: ₦510.00 (platform fee ₦10.00)")

	bookings := s.api.Bookings("ada@bui.edu.ng")
	s.Require().Len(bookings, 1)
	s.Equal("Aisle seat", bookings[0].SpecialRequests)

	res = s.run("bookings", "list", "--status", "pending", "-o", "json")
	s.Require().NoError(res.err)
	var listed []model.Booking
	s.Require().NoError(json.Unmarshal([]byte(res.stdout), &listed))
	s.Len(listed, 1)

	res = s.run("bookings", "cancel", string(bookings[0].ID))
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "cancelled")

	res = s.run("bookings", "list", "--status", "pending")
	s.Require().NoError(res.err)
	s.Equal("No bookings found.\n", res.stdout)
}

func (s *CLISuite) TestBookingsCreateValidatesLocally() {
	s.api.AddUser("ada@bui.edu.ng", password, model.RoleStudent)
	s.login("ada@bui.edu.ng")
	before := s.api.TotalCalls()

	res := s.run("bookings", "create", "5f0c7f38-0d6e-4a4f-9c55-3a3b0f1b8b7e", "--seats", "0")
	s.ErrorIs(res.err, model.ErrInvalidSeats)

	res = s.run("bookings", "create", "5f0c7f38-0d6e-4a4f-9c55-3a3b0f1b8b7e", "--payment-method", "cash")
	s.ErrorContains(res.err, "invalid payment method")

	res = s.run("bookings", "list", "--status", "lost")
	s.ErrorContains(res.err, "invalid status")

	s.Equal(before, s.api.TotalCalls())
}

func (s *CLISuite) TestInvalidOutputFormat() {
	res := s.run("transport", "list", "-o", "yaml")
	s.ErrorContains(res.err, "invalid output format")
}

func TestPrintErrorUsesUserMessage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := NewOutput("text", &stdout, &stderr)

	out.PrintError(&gateway.Error{Kind: gateway.ServerFailure, Status: http.StatusBadGateway})
	assert.Equal(t, "Error: Something went wrong. Please try again.\n", stderr.String())

	stderr.Reset()
	out = NewOutput("json", &stdout, &stderr)
	out.PrintError(model.ErrNotAuthenticated)

	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &body))
	assert.Equal(t, "not logged in", body["error"]["message"])
}
