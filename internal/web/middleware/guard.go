package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mcoot/buitransport/internal/services/session"
	"github.com/mcoot/buitransport/internal/web/templates/layout"
	"github.com/mcoot/buitransport/internal/web/templates/pages"
)

// RequireSession returns middleware that only lets authenticated sessions through.
// Anonymous visitors are sent to the login page; while the session is still
// Unknown a loading page that reloads itself is shown instead.
func RequireSession(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var state session.State
			if store := GetSession(r.Context()); store != nil {
				state = store.Snapshot()
			}

			switch session.Guard(state) {
			case session.RenderView:
				next.ServeHTTP(w, r)
			case session.RedirectToLogin:
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
			default:
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("Cache-Control", "no-store")
				w.Header().Set("Retry-After", "1")
				data := layout.PageData{Title: "Loading", RefreshSeconds: 1}
				if err := pages.Loading(data).Render(r.Context(), w); err != nil {
					logger.Error("failed to render loading page", slog.String("error", err.Error()))
				}
			}
		})
	}
}

// RequireDashboard returns middleware that sends users whose role belongs to
// another dashboard to their own one. Must run after RequireSession.
func RequireDashboard(dashboard session.Dashboard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := GetSession(r.Context()).Snapshot()
			if own := session.DashboardFor(state.Role()); own != dashboard {
				http.Redirect(w, r, own.Path(), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginURL returns the login page address that returns to next afterwards
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}
