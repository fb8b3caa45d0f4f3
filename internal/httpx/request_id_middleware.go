package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// maxRequestIDLen bounds IDs we accept from callers; anything longer is
// replaced so log lines stay parseable.
const maxRequestIDLen = 64

// RequestIDMiddleware tags each request with an ID used to correlate the
// access-log lines. A caller-supplied X-Request-Id is honored so IDs can
// follow a request across services; absent or oversized ones are replaced
// with a fresh UUID. The final ID is echoed back on the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
