// Package requestid tags every request with an X-Request-ID so log lines
// from one request can be correlated.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKeyRequestID struct{}

// Middleware reads X-Request-ID if the caller provided one, otherwise
// generates a UUID. The value is stored in context and echoed in the
// response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, rid)
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the request ID, or "" when none was assigned.
func FromContext(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return rid
}
