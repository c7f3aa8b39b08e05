package middleware

import (
	"context"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/services/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession returns a context carrying the browser's session store
func WithSession(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, sessionContextKey, store)
}

// GetSession retrieves the browser's session store from the request context.
// Returns nil outside the Session middleware.
func GetSession(ctx context.Context) *session.Store {
	store, _ := ctx.Value(sessionContextKey).(*session.Store)
	return store
}

// GetUser returns the authenticated identity, or nil
func GetUser(ctx context.Context) *model.Identity {
	store := GetSession(ctx)
	if store == nil {
		return nil
	}
	return store.Snapshot().Identity
}
