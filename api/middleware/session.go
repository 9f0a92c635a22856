package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront/pkg/logger"
)

// SessionIDHeader carries the shopper's session id.
const SessionIDHeader = "X-Session-Id"

type sessionIDKey struct{}

// SessionContext lifts the optional X-Session-Id header into the request
// context and the log fields. Whether the id exists is decided downstream.
func SessionContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(SessionIDHeader))
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey{}, id)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}
