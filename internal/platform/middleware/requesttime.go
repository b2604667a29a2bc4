package middleware

import (
	"net/http"
	"time"

	"ledger/pkg/requestcontext"
)

// RequestTime captures the current time at the start of the request so every
// operation in the request shares one "now". Transaction references and audit
// timestamps stay consistent this way.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
