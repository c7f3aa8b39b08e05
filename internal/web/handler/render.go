package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/buitransport/internal/web/middleware"
	"github.com/mcoot/buitransport/internal/web/templates/layout"
	"github.com/mcoot/buitransport/internal/web/templates/pages"
)

// pageData builds the layout data shared by every page
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title: title,
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}
}

func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logger.Error("failed to render page",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

func renderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, title, message string) {
	render(w, r, logger, status, pages.Error(pages.ErrorData{
		PageData: pageData(r, title),
		Message:  message,
	}))
}

// NotFound renders the 404 page
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, logger, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
	}
}

// localPath reports whether next is a path on this site, so redirects cannot leave it
func localPath(next string) bool {
	return strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\")
}
