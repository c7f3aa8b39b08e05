package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/services/session"
	"github.com/mcoot/buitransport/internal/web/middleware"
	"github.com/mcoot/buitransport/internal/web/templates/pages"
)

// Messages shown after account actions
const (
	msgLoginFailed         = "Login failed"
	msgRegistrationFailed  = "Registration failed"
	msgRegisteredNoSession = "Registration successful! Please log in with your credentials."
	msgLoggedOut           = "You have been logged out"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(logger *slog.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetSession(r.Context()).Snapshot()
	if state.Authenticated() {
		// Already logged in
		http.Redirect(w, r, session.DashboardFor(state.Role()).Path(), http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, pages.LoginData{
		Dashboard: session.ChoiceAuto,
		Next:      r.URL.Query().Get("next"),
	})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, pages.LoginData{Error: "Invalid form data"})
		return
	}

	data := pages.LoginData{
		Email:     strings.TrimSpace(r.FormValue("email")),
		Dashboard: session.DashboardChoice(r.FormValue("dashboard")),
		Next:      r.FormValue("next"),
	}
	password := r.FormValue("password")

	if data.Email == "" || password == "" {
		data.Error = "Email and password are required"
		h.renderLogin(w, r, data)
		return
	}

	store := middleware.GetSession(r.Context())
	result, err := store.Login(r.Context(), data.Email, password)
	if err != nil {
		h.logger.Info("login failed", slog.String("error", err.Error()))
		data.Error = gateway.UserMessage(err, msgLoginFailed)
		h.renderLogin(w, r, data)
		return
	}

	middleware.SetFlash(w, "success", "Welcome back, "+result.User.DisplayName()+"!")
	h.redirectAfterAuth(w, r, data.Next, data.Dashboard.Resolve(result.Role()))
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetSession(r.Context()).Snapshot()
	if state.Authenticated() {
		http.Redirect(w, r, session.DashboardFor(state.Role()).Path(), http.StatusSeeOther)
		return
	}

	h.renderRegister(w, r, pages.RegisterData{
		Fields: model.RegistrationFields{Role: model.RoleStudent},
	})
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, pages.RegisterData{Error: "Invalid form data"})
		return
	}

	fields := model.RegistrationFields{
		Email:           strings.TrimSpace(r.FormValue("email")),
		Username:        strings.TrimSpace(r.FormValue("username")),
		FirstName:       strings.TrimSpace(r.FormValue("first_name")),
		LastName:        strings.TrimSpace(r.FormValue("last_name")),
		PhoneNumber:     strings.TrimSpace(r.FormValue("phone_number")),
		Role:            model.Role(r.FormValue("role")),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	}
	if fields.Role.IsOrganizer() {
		fields.Role = model.RoleTransportOrganizer
	} else {
		fields.Role = model.RoleStudent
	}

	data := pages.RegisterData{Fields: fields}

	// Checked here so a mismatch never reaches the API
	if fields.Password != fields.PasswordConfirm {
		data.Error = capitalize(model.ErrPasswordMismatch.Error())
		data.FieldErrors = map[string]string{"password_confirm": data.Error}
		h.renderRegister(w, r, data)
		return
	}

	store := middleware.GetSession(r.Context())
	result, err := store.Register(r.Context(), fields)
	if err != nil {
		h.logger.Info("registration failed", slog.String("error", err.Error()))
		data.Error = gateway.UserMessage(err, msgRegistrationFailed)
		data.FieldErrors = fieldErrors(err)
		h.renderRegister(w, r, data)
		return
	}

	if !result.HasCredential() {
		middleware.SetFlash(w, "success", msgRegisteredNoSession)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Account created! Welcome, "+result.User.DisplayName()+"!")
	h.redirectAfterAuth(w, r, "", session.DashboardFor(result.Role()))
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.GetSession(r.Context()).Logout(r.Context())
	middleware.SetFlash(w, "info", msgLoggedOut)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) redirectAfterAuth(w http.ResponseWriter, r *http.Request, next string, dashboard session.Dashboard) {
	if next != "" && localPath(next) {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, dashboard.Path(), http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, data pages.LoginData) {
	data.PageData = pageData(r, "Login")
	render(w, r, h.logger, http.StatusOK, pages.Login(data))
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, data pages.RegisterData) {
	data.PageData = pageData(r, "Register")
	if data.FieldErrors == nil {
		data.FieldErrors = make(map[string]string)
	}
	render(w, r, h.logger, http.StatusOK, pages.Register(data))
}

// fieldErrors maps API field errors onto the form's inputs
func fieldErrors(err error) map[string]string {
	var ge *gateway.Error
	if !errors.As(err, &ge) || len(ge.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(ge.Fields))
	for field, msgs := range ge.Fields {
		out[field] = strings.Join(msgs, ", ")
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
