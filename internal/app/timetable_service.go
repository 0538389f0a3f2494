package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"fahrplan.dev/internal/logging"
	"fahrplan.dev/internal/timetable"
	"fahrplan.dev/searchlog"
)

// Messages shown to users for the two failure kinds.
const (
	MissingParameterMessage = `Please provide both "from" and "to" parameters.`
	FetchFailedMessage      = "An error occurred while fetching the timetable."
)

// Result is a built timetable together with the artifacts derived from it.
type Result struct {
	Query       timetable.Query
	Table       *timetable.Table
	CSV         string
	Connections []timetable.ConnectionSummary
}

// ParseQuery validates the request parameters against the application clock.
// A missing from or to is logged to the search log before returning.
func (app *Application) ParseQuery(ctx context.Context, values url.Values) (timetable.Query, error) {
	q, err := timetable.ParseQuery(values, app.Clock.Now())
	if err != nil {
		app.recordSearch(ctx, timetable.Query{
			From: values.Get("from"),
			To:   values.Get("to"),
			Time: values.Get("time"),
			Date: values.Get("date"),
		}, searchlog.OutcomeMissingParameter, nil)
		return timetable.Query{}, err
	}
	if q.Lang == "" {
		q.Lang = app.Config.Language
	}
	return q, nil
}

// SearchTimetable fetches the connections for q and builds the grid and CSV.
// Fetch, decode and reshaping failures are all reported as errors wrapping the
// cause; nothing is retried.
func (app *Application) SearchTimetable(ctx context.Context, q timetable.Query) (*Result, error) {
	logger := logging.FromContext(ctx)

	resp, err := app.Fetcher.Fetch(ctx, q)
	if err != nil {
		logging.LogError(logger, "timetable fetch failed", err,
			slog.String("from", q.From), slog.String("to", q.To))
		app.recordSearch(ctx, q, searchlog.OutcomeFetchFailed, nil)
		return nil, err
	}

	table, err := timetable.Build(resp, q.Labels())
	if err != nil {
		logging.LogError(logger, "timetable reshaping failed", err,
			slog.String("from", q.From), slog.String("to", q.To))
		app.recordSearch(ctx, q, searchlog.OutcomeFetchFailed, nil)
		return nil, err
	}

	csvText, err := table.CSV()
	if err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}

	result := &Result{
		Query:       q,
		Table:       table,
		CSV:         csvText,
		Connections: timetable.Summarize(resp),
	}

	app.Metrics.ObserveGrid(table.Grid.Len(), table.Grid.Width())
	app.recordSearch(ctx, q, searchlog.OutcomeOK, table)
	app.setLastResult(result)

	return result, nil
}

// IsUserError reports whether err was caused by the request rather than
// the upstream API.
func IsUserError(err error) bool {
	return errors.Is(err, timetable.ErrMissingParameter)
}

func (app *Application) recordSearch(ctx context.Context, q timetable.Query, outcome string, table *timetable.Table) {
	if app.SearchLog == nil {
		return
	}

	entry := searchlog.Search{
		Origin:      q.From,
		Destination: q.To,
		Time:        q.Time,
		Date:        q.Date,
		Outcome:     outcome,
		RequestID:   requestIDFrom(ctx),
		CreatedAt:   app.Clock.NowUnixMilli(),
	}
	if table != nil {
		entry.Connections = table.Grid.Width()
		entry.Stations = table.Grid.Len()
	}

	// the search log is best effort; a failed insert never fails the request
	if _, err := app.SearchLog.Record(context.WithoutCancel(ctx), entry); err != nil {
		logging.LogError(logging.FromContext(ctx), "failed to record search", err)
	}
}
