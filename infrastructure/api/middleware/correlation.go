package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/chamberhub/bizportal/internal/log"
)

// CorrelationHeader carries the correlation ID in both directions.
const CorrelationHeader = "X-Correlation-ID"

// CorrelationID stores a correlation ID on the request context and echoes it
// in the response. A caller-supplied header wins over chi's request ID.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		correlationID := r.Header.Get(CorrelationHeader)
		if correlationID == "" {
			correlationID = requestID
		}

		w.Header().Set(CorrelationHeader, correlationID)

		ctx := log.WithRequestID(r.Context(), requestID)
		ctx = log.WithCorrelationID(ctx, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCorrelationID retrieves the correlation ID from the request context.
func GetCorrelationID(r *http.Request) string {
	return log.CorrelationID(r.Context())
}
