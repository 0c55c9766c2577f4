package middleware

import (
	"context"
	"net/http"
)

const (
	actorIDKey  contextKey = "actor_id"
	actorHeader            = "X-Actor-ID"
)

// Actor stores the authenticated identity from the gateway-injected header in
// the request context. Authentication itself happens upstream; every core
// operation takes an explicit actor id rather than reading ambient session
// state, so this is the only place identity enters the process.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := r.Header.Get(actorHeader); actor != "" {
			ctx := context.WithValue(r.Context(), actorIDKey, actor)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext returns the request actor id, or "" when anonymous.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorIDKey).(string); ok {
		return v
	}
	return ""
}
