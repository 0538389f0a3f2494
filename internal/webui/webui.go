package webui

import (
	"net/http"

	"fahrplan.dev/internal/app"
)

// WebUI serves the server-rendered timetable page.
type WebUI struct {
	*app.Application

	// RateLimit guards routes that call upstream. Nil leaves them open.
	RateLimit func(http.Handler) http.Handler
}

// SetWebUIRoutes registers the page, its assets and the debug view on mux.
func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", webUI.indexHandler)
	mux.Handle("GET /timetable", webUI.limited(http.HandlerFunc(webUI.timetableHandler)))
	mux.HandleFunc("GET /static/{file}", webUI.staticHandler)
	mux.HandleFunc("GET /debug", webUI.debugIndexHandler)
}

// indexHandler keeps the query string so bookmarked links still work.
func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	target := "/timetable"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (webUI *WebUI) limited(next http.Handler) http.Handler {
	if webUI.RateLimit == nil {
		return next
	}
	return webUI.RateLimit(next)
}
