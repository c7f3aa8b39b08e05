package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/buitransport/internal/services/session"
	"github.com/mcoot/buitransport/internal/storage"
)

// ClientCookieName holds the opaque id of a browser
const ClientCookieName = "bt_client"

const clientCookieMaxAge = 365 * 24 * 60 * 60

// SessionFactory creates the session store of one browser
type SessionFactory func(clientID storage.ClientID) *session.Store

// SessionConfig configures the Session middleware
type SessionConfig struct {
	Sessions SessionFactory
	// InitWait bounds how long a request waits for the session check
	InitWait     time.Duration
	CookieSecure bool
	Logger       *slog.Logger
}

// Session returns middleware that identifies the browser and resolves its session.
// A check that outlives InitWait keeps running in the background and the request
// proceeds with the session still Unknown.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := clientID(w, r, cfg.CookieSecure)
			store := cfg.Sessions(clientID)

			done := make(chan struct{})
			go func() {
				defer close(done)
				store.Initialize(context.WithoutCancel(r.Context()))
			}()

			timer := time.NewTimer(cfg.InitWait)
			defer timer.Stop()

			select {
			case <-done:
			case <-timer.C:
				cfg.Logger.Warn("session check still pending",
					slog.String("path", r.URL.Path),
					slog.Duration("waited", cfg.InitWait),
				)
			case <-r.Context().Done():
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), store)))
		})
	}
}

// clientID returns the browser's id, issuing a new one when the cookie is missing or malformed
func clientID(w http.ResponseWriter, r *http.Request, secure bool) storage.ClientID {
	if cookie, err := r.Cookie(ClientCookieName); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return storage.ClientID(id.String())
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   clientCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return storage.ClientID(id)
}
