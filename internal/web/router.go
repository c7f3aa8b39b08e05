package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/buitransport/internal/services/session"
	"github.com/mcoot/buitransport/internal/web/handler"
	"github.com/mcoot/buitransport/internal/web/middleware"
)

//go:embed static
var embeddedStatic embed.FS

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger   *slog.Logger
	Sessions middleware.SessionFactory
	// InitWait bounds how long a page waits for the session check before showing the loading page
	InitWait     time.Duration
	CookieSecure bool
	// StaticDir serves static files from disk; the embedded copy is used when empty
	StaticDir string
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	flashMiddleware := middleware.Flash()
	sessionMiddleware := middleware.Session(middleware.SessionConfig{
		Sessions:     cfg.Sessions,
		InitWait:     cfg.InitWait,
		CookieSecure: cfg.CookieSecure,
		Logger:       cfg.Logger,
	})
	requireSession := middleware.RequireSession(cfg.Logger)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	authHandler := handler.NewAuthHandler(cfg.Logger)
	transportHandler := handler.NewTransportHandler(cfg.Logger)
	dashboardHandler := handler.NewDashboardHandler(cfg.Logger)
	bookingHandler := handler.NewBookingHandler(cfg.Logger)
	profileHandler := handler.NewProfileHandler(cfg.Logger)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(staticFS(cfg.StaticDir))))
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Public routes; the session only decides what the nav shows
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(sessionMiddleware)
	public.HandleFunc("/", transportHandler.List).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(sessionMiddleware)
	protected.Use(requireSession)
	protected.HandleFunc("/dashboard", dashboardHandler.Redirect).Methods(http.MethodGet)
	protected.Handle("/student-dashboard",
		middleware.RequireDashboard(session.StudentDashboard)(http.HandlerFunc(dashboardHandler.Student)),
	).Methods(http.MethodGet)
	protected.Handle("/organizer-dashboard",
		middleware.RequireDashboard(session.OrganizerDashboard)(http.HandlerFunc(dashboardHandler.Organizer)),
	).Methods(http.MethodGet)
	protected.HandleFunc("/book/{id}", bookingHandler.BookPage).Methods(http.MethodGet)
	protected.HandleFunc("/book/{id}", bookingHandler.Book).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/profile", profileHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/profile", profileHandler.Update).Methods(http.MethodPost)

	r.NotFoundHandler = middleware.Flash()(handler.NotFound(cfg.Logger))

	return r
}

func staticFS(dir string) http.FileSystem {
	if dir != "" {
		return http.Dir(dir)
	}
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
