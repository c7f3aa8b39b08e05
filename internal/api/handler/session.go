package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/buitransport/internal/api/apierr"
	"github.com/mcoot/buitransport/internal/api/request"
	"github.com/mcoot/buitransport/internal/api/response"
	"github.com/mcoot/buitransport/internal/services/session"
	webmw "github.com/mcoot/buitransport/internal/web/middleware"
)

// SessionHandler exposes the browser session as JSON
type SessionHandler struct {
	logger *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(logger *slog.Logger) *SessionHandler {
	return &SessionHandler{logger: logger}
}

// Get reports the session state. While the check is still running the status is
// "unknown" and Retry-After asks the caller to poll again.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	state := webmw.GetSession(r.Context()).Snapshot()
	if state.Status == session.Unknown {
		w.Header().Set("Retry-After", "1")
	}
	response.JSON(w, http.StatusOK, response.SessionFromState(state, session.DashboardFor(state.Role())))
}

// Login opens a session with email and password
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Email and password are required"))
		return
	}

	store := webmw.GetSession(r.Context())
	result, err := store.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("api login failed", slog.String("error", err.Error()))
		apierr.WriteError(w, err)
		return
	}

	dashboard := session.DashboardChoice(req.Dashboard).Resolve(result.Role())
	response.JSON(w, http.StatusOK, response.SessionFromState(store.Snapshot(), dashboard))
}

// Logout forgets the session's credential. It always succeeds.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	webmw.GetSession(r.Context()).Logout(r.Context())
	response.NoContent(w)
}
