package app

import (
	"context"
	"log/slog"
	"sync"

	"fahrplan.dev/internal/appconf"
	"fahrplan.dev/internal/clock"
	"fahrplan.dev/internal/metrics"
	"fahrplan.dev/internal/timetable"
	"fahrplan.dev/searchlog"
)

// Fetcher retrieves a decoded timetable response for a query.
type Fetcher interface {
	Fetch(ctx context.Context, q timetable.Query) (*timetable.Response, error)
}

// Application holds the dependencies shared by the HTTP handlers and
// middleware.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Clock     clock.Clock
	Metrics   *metrics.Metrics
	Fetcher   Fetcher
	SearchLog *searchlog.Client

	lastMu sync.RWMutex
	last   *Result
}

// LastResult returns the most recently built timetable, or nil.
func (app *Application) LastResult() *Result {
	app.lastMu.RLock()
	defer app.lastMu.RUnlock()
	return app.last
}

func (app *Application) setLastResult(r *Result) {
	app.lastMu.Lock()
	defer app.lastMu.Unlock()
	app.last = r
}
