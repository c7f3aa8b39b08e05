package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/buitransport/internal/api/handler"
	"github.com/mcoot/buitransport/internal/api/middleware"
	"github.com/mcoot/buitransport/internal/api/response"
	webmw "github.com/mcoot/buitransport/internal/web/middleware"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	// Sessions shares browser sessions with the web interface
	Sessions     webmw.SessionFactory
	InitWait     time.Duration
	CookieSecure bool
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	sessions := api.PathPrefix("/session").Subrouter()
	sessions.Use(webmw.Session(webmw.SessionConfig{
		Sessions:     cfg.Sessions,
		InitWait:     cfg.InitWait,
		CookieSecure: cfg.CookieSecure,
		Logger:       cfg.Logger,
	}))
	sessions.HandleFunc("", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("", sessionHandler.Login).Methods(http.MethodPost)
	sessions.HandleFunc("", sessionHandler.Logout).Methods(http.MethodDelete)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
