package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/buitransport/internal/factory"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/web"
	"github.com/mcoot/buitransport/internal/web/middleware"
)

const testPassword = "correct-horse"

// webTestServer drives the web router against a fake API, keeping cookies like a browser
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a test server whose session check may take up to a second
func newWebTestServer(t *testing.T) *webTestServer {
	return newWebTestServerWithWait(t, time.Second)
}

func newWebTestServerWithWait(t *testing.T, initWait time.Duration) *webTestServer {
	t.Helper()

	app := factory.NewTestApp(t)
	router := web.NewRouter(web.RouterConfig{
		Logger:   app.Logger,
		Sessions: app.Session,
		InitWait: initWait,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)
	return rr
}

func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "expected a redirect")
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "expected Location header")
	return ts.get(location)
}

// addUser creates an account on the fake API
func (ts *webTestServer) addUser(email string, role model.Role) model.Identity {
	return ts.app.API.AddUser(email, testPassword, role)
}

// login signs in through the login form and returns the redirect
func (ts *webTestServer) login(email string) *httptest.ResponseRecorder {
	ts.t.Helper()
	rr := ts.post("/login", url.Values{
		"email":     {email},
		"password":  {testPassword},
		"dashboard": {"auto"},
	})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "expected redirect after login")
	return rr
}

// loginAs creates an account with role and signs in
func (ts *webTestServer) loginAs(email string, role model.Role) model.Identity {
	ts.t.Helper()
	identity := ts.addUser(email, role)
	ts.login(email)
	return identity
}

// addRoute adds a bookable route on the fake API
func (ts *webTestServer) addRoute(name string, price model.Amount, seats int) model.TransportOption {
	return ts.app.API.AddTransportOption(model.TransportOption{
		RouteName:         name,
		DepartureLocation: "Main Gate",
		Destination:       "Challenge",
		DepartureTime:     "07:30:00",
		ArrivalTime:       "08:15:00",
		Price:             price,
		TotalSeats:        seats,
		AvailableSeats:    seats,
		DaysOfOperation:   []string{"monday", "wednesday"},
		IsActive:          true,
	})
}

// parseHTML parses the response body as HTML
func parseHTML(t *testing.T, r io.Reader) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(r)
	require.NoError(t, err)
	return doc
}

// cookieJar maintains cookies across requests
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// clientID returns the browser id the server issued
func (j *cookieJar) clientID() string {
	if c, ok := j.cookies[middleware.ClientCookieName]; ok {
		return c.Value
	}
	return ""
}

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if n := doc.Find(selector).Length(); n > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, n)
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
