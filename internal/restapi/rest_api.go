package restapi

import (
	"net/http"
	"time"

	"fahrplan.dev/internal/app"
	"fahrplan.dev/internal/clock"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Cache tiers in seconds.
const (
	noCache           = 0
	shortCacheSeconds = 30
	longCacheSeconds  = 300
)

// RestAPI serves the JSON and CSV endpoints.
type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a RestAPI around application. A nil clock defaults to
// the system clock.
func NewRestAPI(application *app.Application) *RestAPI {
	if application.Clock == nil {
		application.Clock = clock.RealClock{}
	}
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(
			application.Config.RateLimit,
			time.Second,
			application.Config.ExemptApiKeys,
			application.Clock,
		),
	}
}

// SetRoutes registers every API route on mux.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	limited := api.rateLimiter.Handler()

	mux.Handle("GET /api/timetable.json",
		limited(api.requireAPIKey(CacheControlMiddleware(noCache, http.HandlerFunc(api.timetableJSONHandler)))))
	mux.Handle("GET /api/timetable.csv",
		limited(api.requireAPIKey(CacheControlMiddleware(noCache, http.HandlerFunc(api.timetableCSVHandler)))))
	mux.Handle("GET /api/searches/recent.json",
		api.requireAPIKey(CacheControlMiddleware(noCache, http.HandlerFunc(api.recentSearchesHandler))))
	mux.Handle("GET /api/current-time.json",
		CacheControlMiddleware(shortCacheSeconds, http.HandlerFunc(api.currentTimeHandler)))
	mux.Handle("GET /api/config.json",
		CacheControlMiddleware(longCacheSeconds, http.HandlerFunc(api.configHandler)))
	mux.HandleFunc("GET /healthz", api.healthHandler)

	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}

// Handler wraps next in the server-wide middleware chain. The outermost
// layer recovers panics; the innermost compresses responses.
func (api *RestAPI) Handler(next http.Handler) http.Handler {
	origins := api.Config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
	})

	h := gzhttp.GzipHandler(next)
	h2 := corsHandler.Handler(h)
	h2 = MetricsHandler(api.Metrics)(h2)
	h2 = NewRequestLoggingMiddleware(api.Logger)(h2)
	h2 = RequestIDMiddleware(h2)
	return RecoveryMiddleware(api.Logger)(h2)
}

// RateLimited wraps next in the limiter guarding the timetable endpoints.
// Requests share buckets with the API routes.
func (api *RestAPI) RateLimited(next http.Handler) http.Handler {
	return api.rateLimiter.Handler()(next)
}

// Shutdown stops background goroutines owned by the API.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
