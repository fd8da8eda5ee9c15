package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ActorContextKey is the context key for the acting treasurer
	ActorContextKey ContextKey = "actor"

	// ActorHeader identifies who performs the request. Authentication is
	// handled upstream; this service only needs the identity for audit
	// attribution.
	ActorHeader = "X-Actor-ID"
)

// Actor reads the acting treasurer's identity from the request header and
// stores it in the context. Mutating routes require it.
func Actor(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := strings.TrimSpace(r.Header.Get(ActorHeader))
			if actor == "" && required {
				http.Error(w, "missing "+ActorHeader+" header", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ActorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActorFromContext extracts the acting treasurer from context.
func GetActorFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(ActorContextKey).(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}
