package restapi

import (
	"fmt"
	"net/http"
)

const noStoreCacheControl = "no-cache, no-store, must-revalidate"

// CacheControlMiddleware sets Cache-Control for successful responses to the
// given max-age, or to no-store when durationSeconds is zero. Error responses
// are never cacheable.
func CacheControlMiddleware(durationSeconds int, next http.Handler) http.Handler {
	success := noStoreCacheControl
	if durationSeconds > 0 {
		success = fmt.Sprintf("public, max-age=%d", durationSeconds)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cacheControlWriter{ResponseWriter: w, success: success}, r)
	})
}

type cacheControlWriter struct {
	http.ResponseWriter
	success       string
	headerWritten bool
}

func (w *cacheControlWriter) WriteHeader(code int) {
	if !w.headerWritten {
		w.headerWritten = true
		value := noStoreCacheControl
		if code >= 200 && code < 300 {
			value = w.success
		}
		w.ResponseWriter.Header().Set("Cache-Control", value)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheControlWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *cacheControlWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
