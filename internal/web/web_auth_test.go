package web_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/buitransport/internal/gateway/gatewaytest"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/storage"
)

func TestLoginPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/login?next=/bookings")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assertContainsElement(t, doc, "form[action='/login'] input[name='email']")
	assertContainsElement(t, doc, "select[name='dashboard'] option[value='transport_organizer']")
	assert.Equal(t, "/bookings", doc.Find("input[name='next']").AttrOr("value", ""))
	assertContainsElement(t, doc, "nav.navbar a[href='/register']")
	assert.NotEmpty(t, ts.cookies.clientID(), "expected a client id cookie")
}

func TestLoginRedirectsStudentToStudentDashboard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addUser("ada@bui.edu.ng", model.RoleStudent)

	rr := ts.login("ada@bui.edu.ng")
	assert.Equal(t, "/student-dashboard", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(t, rr.Body)
	assertContainsElement(t, doc, "section.student-dashboard")
	assertContainsText(t, doc, ".flash-success", "Welcome back, Test User!")
	assertContainsText(t, doc, "nav.navbar .user-role", "Student")
	assertContainsElement(t, doc, "nav.navbar form[action='/logout']")
}

func TestLoginRedirectsOrganizerToOrganizerDashboard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addUser("org@bui.edu.ng", model.RoleTransportOrganizer)

	rr := ts.login("org@bui.edu.ng")
	assert.Equal(t, "/organizer-dashboard", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsElement(t, parseHTML(t, rr.Body), "section.organizer-dashboard")
}

func TestLoginDashboardChoiceOverridesRole(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addUser("org@bui.edu.ng", model.RoleTransportOrganizer)

	rr := ts.post("/login", url.Values{
		"email":     {"org@bui.edu.ng"},
		"password":  {testPassword},
		"dashboard": {"student"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/student-dashboard", rr.Header().Get("Location"))

	// The role guard still sends the organizer to their own dashboard
	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/organizer-dashboard", rr.Header().Get("Location"))
}

func TestLoginReturnsToNext(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addUser("ada@bui.edu.ng", model.RoleStudent)

	rr := ts.post("/login", url.Values{
		"email":    {"ada@bui.edu.ng"},
		"password": {testPassword},
		"next":     {"/bookings?status=pending"},
	})
	assert.Equal(t, "/bookings?status=pending", rr.Header().Get("Location"))
}

func TestLoginIgnoresOffsiteNext(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addUser("ada@bui.edu.ng", model.RoleStudent)

	rr := ts.post("/login", url.Values{
		"email":    {"ada@bui.edu.ng"},
		"password": {testPassword},
		"next":     {"//evil.example/phish"},
	})
	assert.Equal(t, "/student-dashboard", rr.Header().Get("Location"))
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addUser("ada@bui.edu.ng", model.RoleStudent)

	rr := ts.post("/login", url.Values{"email": {"ada@bui.edu.ng"}, "password": {"wrong"}})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, ".alert-error", "Invalid credentials")
	assert.Equal(t, "ada@bui.edu.ng", doc.Find("input[name='email']").AttrOr("value", ""))

	_, err := ts.app.Memory.LoadCredential(t.Context(), storage.ClientID(ts.cookies.clientID()))
	assert.ErrorIs(t, err, model.ErrCredentialNotFound)
}

func TestLoginRequiresFields(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/login", url.Values{"email": {""}, "password": {""}})
	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(t, rr.Body), ".alert-error", "Email and password are required")
	assert.Equal(t, 0, ts.app.API.Calls(http.MethodPost, "/auth/login/"))
}

func TestLoginServerFailureShowsGenericMessage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.API.Fail(http.MethodPost, "/auth/login/", gatewaytest.Failure{Status: http.StatusBadGateway, Body: "upstream"})

	rr := ts.post("/login", url.Values{"email": {"ada@bui.edu.ng"}, "password": {testPassword}})
	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(t, rr.Body), ".alert-error", "Something went wrong. Please try again.")
}

func TestLoginDuringSlowRejectedSessionCheckKeepsNewCredential(t *testing.T) {
	ts := newWebTestServerWithWait(t, 20*time.Millisecond)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	ts.app.API.RevokeAll()
	ts.app.API.Delay(http.MethodGet, "/auth/user/", 300*time.Millisecond)

	rr := ts.login("ada@bui.edu.ng")
	assert.Equal(t, "/student-dashboard", rr.Header().Get("Location"))

	clientID := storage.ClientID(ts.cookies.clientID())
	assert.Never(t, func() bool {
		_, err := ts.app.Memory.LoadCredential(t.Context(), clientID)
		return err != nil
	}, 500*time.Millisecond, 20*time.Millisecond, "the late session check removed the new credential")

	ts.app.API.Delay(http.MethodGet, "/auth/user/", 0)
	state := ts.app.Session(clientID).Initialize(t.Context())
	assert.True(t, state.Authenticated())
}

func TestLoginPageRedirectsWhenLoggedIn(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)

	rr := ts.get("/login")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/student-dashboard", rr.Header().Get("Location"))

	rr = ts.get("/register")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func registrationForm(email string) url.Values {
	return url.Values{
		"first_name":       {"Chidi"},
		"last_name":        {"Okafor"},
		"username":         {"chidi"},
		"email":            {email},
		"phone_number":     {"08012345678"},
		"role":             {"student"},
		"password":         {testPassword},
		"password_confirm": {testPassword},
	}
}

func TestRegisterLogsIn(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/register", registrationForm("chidi@bui.edu.ng"))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/student-dashboard", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, ".flash-success", "Account created! Welcome, Chidi Okafor!")
	assertContainsText(t, doc, "nav.navbar .user-name", "Chidi Okafor")
}

func TestRegisterAsOrganizer(t *testing.T) {
	ts := newWebTestServer(t)

	form := registrationForm("fleet@bui.edu.ng")
	form.Set("role", "transport_organizer")
	rr := ts.post("/register", form)
	assert.Equal(t, "/organizer-dashboard", rr.Header().Get("Location"))
}

func TestRegisterAcceptsOlderOrganizerSpelling(t *testing.T) {
	ts := newWebTestServer(t)

	form := registrationForm("fleet@bui.edu.ng")
	form.Set("role", "organizer")
	rr := ts.post("/register", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/organizer-dashboard", rr.Header().Get("Location"))
}

func TestRegisterPasswordMismatchIsCheckedLocally(t *testing.T) {
	ts := newWebTestServer(t)

	form := registrationForm("chidi@bui.edu.ng")
	form.Set("password_confirm", "something-else")
	rr := ts.post("/register", form)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, ".alert-error", "Passwords do not match")
	assertContainsElement(t, doc, ".field-error[data-field='password_confirm']")
	assert.Equal(t, "Chidi", doc.Find("input[name='first_name']").AttrOr("value", ""))
	assert.Equal(t, 0, ts.app.API.Calls(http.MethodPost, "/auth/register/"))
}

func TestRegisterShowsFieldErrors(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addUser("chidi@bui.edu.ng", model.RoleStudent)

	rr := ts.post("/register", registrationForm("chidi@bui.edu.ng"))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, ".alert-error", "email: user with this email already exists.")
	assertContainsText(t, doc, ".field-error[data-field='email']", "user with this email already exists.")
	assertNotContainsElement(t, doc, "nav.navbar .user-name")
}

func TestRegisterWithoutCredentialSendsToLogin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.API.Fail(http.MethodPost, "/auth/register/", gatewaytest.Failure{
		Status: http.StatusCreated,
		Body:   `{"user":{"id":"u-1","email":"chidi@bui.edu.ng","role":"student"},"message":"Verify your email"}`,
	})

	rr := ts.post("/register", registrationForm("chidi@bui.edu.ng"))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, ".flash-success", "Registration successful! Please log in with your credentials.")
	assertNotContainsElement(t, doc, "nav.navbar .user-name")
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)

	rr := ts.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, ".flash-info", "You have been logged out")
	assertContainsElement(t, doc, "nav.navbar a[href='/login']")

	_, err := ts.app.Memory.LoadCredential(t.Context(), storage.ClientID(ts.cookies.clientID()))
	assert.ErrorIs(t, err, model.ErrCredentialNotFound)

	rr = ts.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?next=%2Fdashboard", rr.Header().Get("Location"))
}

func TestBrowsersDoNotShareSessions(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)

	other := &webTestServer{t: t, handler: ts.handler, app: ts.app, cookies: newCookieJar()}
	rr := other.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/login")

	rr = ts.get("/dashboard")
	assert.Equal(t, "/student-dashboard", rr.Header().Get("Location"))
}
