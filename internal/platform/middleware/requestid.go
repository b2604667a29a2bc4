package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"ledger/pkg/requestcontext"
)

// requestIDHeader carries the correlation id between services.
const requestIDHeader = "X-Request-ID"

// RequestID accepts an inbound correlation id or mints one, stores it in the
// context and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
