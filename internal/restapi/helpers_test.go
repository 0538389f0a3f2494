package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fahrplan.dev/internal/app"
	"fahrplan.dev/internal/appconf"
	"fahrplan.dev/internal/clock"
	"fahrplan.dev/internal/metrics"
	"fahrplan.dev/internal/models"
	"fahrplan.dev/internal/searchch"
	"fahrplan.dev/searchlog"
	"github.com/stretchr/testify/require"
)

// routeJSON is a trimmed route.json answer for Bern -> Thun with two
// connections.
const routeJSON = `{
  "count": 2,
  "connections": [
    {
      "from": "Bern", "to": "Thun",
      "departure": "2024-03-01 08:02:00", "arrival": "2024-03-01 08:19:00",
      "duration": 1020,
      "legs": [
        {
          "name": "Bern", "departure": "2024-03-01 08:02:00", "type": "strain", "line": "S1",
          "lat": 46.948825, "lon": 7.439122,
          "stops": [{"name": "Münsingen", "arrival": "2024-03-01 08:11:00", "lat": 46.873, "lon": 7.561}],
          "exit": {"name": "Thun", "arrival": "2024-03-01 08:19:00", "lat": 46.754, "lon": 7.629}
        },
        {"name": "Thun", "arrival": "2024-03-01 08:19:00"}
      ]
    },
    {
      "from": "Bern", "to": "Thun",
      "departure": "2024-03-01 08:36:00", "arrival": "2024-03-01 08:53:00",
      "duration": 1020,
      "legs": [
        {"name": "Bern", "departure": "2024-03-01 08:36:00", "type": "express_train", "line": "IC61",
         "exit": {"name": "Thun", "arrival": "2024-03-01 08:53:00"}},
        {"name": "Thun", "arrival": "2024-03-01 08:53:00"}
      ]
    }
  ]
}`

// fakeUpstream serves route.json answers and counts the requests it sees.
type fakeUpstream struct {
	*httptest.Server
	hits      atomic.Int32
	lastQuery atomic.Value
}

func newFakeUpstream(t *testing.T, status int, body string) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.lastQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(f.Close)
	return f
}

var testNow = time.Date(2024, 3, 1, 7, 45, 0, 0, time.UTC)

func createTestApiWithUpstream(t *testing.T, upstream *fakeUpstream, configure ...func(*appconf.Config)) *RestAPI {
	t.Helper()

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.SearchURL = upstream.URL
	cfg.UpstreamTimeout = 5 * time.Second
	for _, fn := range configure {
		fn(&cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWithLogger(logger)

	log, err := searchlog.NewClient(searchlog.Config{DBPath: ":memory:", Env: appconf.Test}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	application := &app.Application{
		Config:    cfg,
		Logger:    logger,
		Clock:     clock.NewMockClock(testNow),
		Metrics:   m,
		Fetcher:   searchch.NewClient(cfg.SearchURL, cfg.UpstreamTimeout, m, logger),
		SearchLog: log,
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	return createTestApiWithUpstream(t, newFakeUpstream(t, http.StatusOK, routeJSON))
}

func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(api.Handler(mux))
	t.Cleanup(server.Close)
	return server
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()
	server := serveApi(t, api)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var model models.ResponseModel
	require.NoError(t, json.Unmarshal(body, &model), "body: %s", body)
	return api, resp, model
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()
	return serveApiAndRetrieveEndpoint(t, createTestApi(t), endpoint)
}
