package web_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/buitransport/internal/gateway/gatewaytest"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/storage"
)

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	paths := []string{
		"/dashboard",
		"/student-dashboard",
		"/organizer-dashboard",
		"/bookings",
		"/profile",
		"/book/5f0c7f38-0d6e-4a4f-9c55-3a3b0f1b8b7e",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			ts := newWebTestServer(t)
			rr := ts.get(path)
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Contains(t, rr.Header().Get("Location"), "/login?next=")
		})
	}
}

func TestSessionSurvivesReload(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)

	for range 3 {
		rr := ts.get("/bookings")
		require.Equal(t, http.StatusOK, rr.Code)
		assertContainsText(t, parseHTML(t, rr.Body), "nav.navbar .user-name", "Test User")
	}
	assert.Equal(t, 3, ts.app.API.Calls(http.MethodGet, "/auth/user/"))
}

func TestSlowSessionCheckRendersLoading(t *testing.T) {
	ts := newWebTestServerWithWait(t, 100*time.Millisecond)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	ts.app.API.Delay(http.MethodGet, "/auth/user/", 500*time.Millisecond)

	rr := ts.get("/bookings")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	doc := parseHTML(t, rr.Body)
	assertContainsElement(t, doc, "div.loading")
	assertContainsElement(t, doc, "meta[http-equiv='refresh']")
	assertNotContainsElement(t, doc, "nav.navbar .user-name")

	// Once the API answers in time the page renders
	ts.app.API.Delay(http.MethodGet, "/auth/user/", 0)
	rr = ts.get("/bookings")
	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(t, rr.Body), "h1", "My Bookings")
}

func TestExpiredCredentialIsDroppedWithoutNetwork(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addUser("ada@bui.edu.ng", model.RoleStudent)
	ts.get("/login")
	clientID := storage.ClientID(ts.cookies.clientID())
	require.NotEmpty(t, clientID)

	token := gatewaytest.SignedToken(ts.app.MockClock.Now().Add(-time.Minute))
	ts.app.API.RegisterToken(token, "ada@bui.edu.ng")
	require.NoError(t, ts.app.Memory.SaveCredential(t.Context(), clientID, model.Credential{AccessToken: token}))

	rr := ts.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/login")
	assert.Equal(t, 0, ts.app.API.Calls(http.MethodGet, "/auth/user/"))

	_, err := ts.app.Memory.LoadCredential(t.Context(), clientID)
	assert.ErrorIs(t, err, model.ErrCredentialNotFound)
}

func TestRevokedCredentialLogsOut(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	ts.app.API.RevokeAll()

	rr := ts.get("/bookings")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?next=%2Fbookings", rr.Header().Get("Location"))

	_, err := ts.app.Memory.LoadCredential(t.Context(), storage.ClientID(ts.cookies.clientID()))
	assert.ErrorIs(t, err, model.ErrCredentialNotFound)
}

func TestUnauthorizedViewCallLogsOut(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	ts.app.API.Fail(http.MethodGet, "/bookings/my-bookings/", gatewaytest.Failure{
		Status: http.StatusUnauthorized,
		Body:   `{"detail":"Token is invalid or expired"}`,
	})

	rr := ts.get("/bookings")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(t, rr.Body)
	assertContainsText(t, doc, ".alert-error", "Token is invalid or expired")
	assertNotContainsElement(t, doc, "nav.navbar .user-name")

	_, err := ts.app.Memory.LoadCredential(t.Context(), storage.ClientID(ts.cookies.clientID()))
	assert.ErrorIs(t, err, model.ErrCredentialNotFound)

	rr = ts.get("/bookings")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestForbiddenViewCallKeepsSession(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("ada@bui.edu.ng", model.RoleStudent)
	ts.app.API.Fail(http.MethodGet, "/bookings/my-bookings/", gatewaytest.Failure{
		Status: http.StatusForbidden,
		Body:   `{"detail":"You do not have permission to perform this action."}`,
	})

	rr := ts.get("/bookings")
	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(t, rr.Body), ".alert-error", "You do not have permission")

	rr = ts.get("/profile")
	assert.Equal(t, http.StatusOK, rr.Code)
}
