package restapi

import (
	"log/slog"
	"net/http"
	"time"

	"fahrplan.dev/internal/logging"
)

// NewRequestLoggingMiddleware creates middleware that logs HTTP requests.
// Downstream handlers find a logger tagged with the request id in the
// request context.
func NewRequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := GetRequestID(r.Context())

			ctx := logging.WithLogger(r.Context(), logger.With(slog.String("request_id", reqID)))
			r = r.WithContext(ctx)

			wrapped := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			logging.LogHTTPRequest(logger,
				r.Method,
				r.URL.Path,
				wrapped.Status(),
				float64(duration.Nanoseconds())/1e6,
				slog.String("request_id", reqID),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.String("component", "http_server"))
		})
	}
}
