package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/buitransport/internal/middleware"
)

// Logging creates request logging middleware for the web interface.
// Health checks log at Debug.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger, "/healthz")
}
