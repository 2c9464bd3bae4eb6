// Package requesttime captures one "now" per request so audit timestamps,
// expiry checks and updatedAt values agree within a request.
package requesttime

import (
	"net/http"
	"time"

	"ledgerguard/pkg/requestcontext"
)

// Middleware stores the request start time in context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
