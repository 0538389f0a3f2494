package restapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"fahrplan.dev/internal/appconf"
	"fahrplan.dev/searchlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimetableJSONHandler(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, routeJSON)
	api := createTestApiWithUpstream(t, upstream)

	_, resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/timetable.json?from=Bern&to=Thun&time=08:00")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, "OK", model.Text)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, []interface{}{"Haltestelle", "Verbindung", "Verbindung"}, entry["header"])

	rows, ok := entry["rows"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 3)

	t.Run("rows follow first appearance", func(t *testing.T) {
		var stations []string
		for _, r := range rows {
			stations = append(stations, r.(map[string]interface{})["station"].(string))
		}
		assert.Equal(t, []string{"Bern", "Münsingen", "Thun"}, stations)
	})

	t.Run("times are formatted per connection", func(t *testing.T) {
		assert.Equal(t, []interface{}{"08:02", "08:36"}, rows[0].(map[string]interface{})["times"])
		assert.Equal(t, []interface{}{"08:11", ""}, rows[1].(map[string]interface{})["times"])
		assert.Equal(t, []interface{}{"08:19", "08:53"}, rows[2].(map[string]interface{})["times"])
	})

	t.Run("query echoes defaults", func(t *testing.T) {
		query := entry["query"].(map[string]interface{})
		assert.Equal(t, "08:00", query["time"])
		assert.Equal(t, "01/03/2024", query["date"])
	})

	t.Run("connections are summarized", func(t *testing.T) {
		connections, ok := entry["connections"].([]interface{})
		require.True(t, ok)
		assert.Len(t, connections, 2)
	})

	t.Run("upstream receives the fixed parameters", func(t *testing.T) {
		assert.Equal(t, int32(1), upstream.hits.Load())
		q := upstream.lastQuery.Load().(url.Values)
		assert.Equal(t, "Bern", q.Get("from"))
		assert.Equal(t, "Thun", q.Get("to"))
		assert.Equal(t, "08:00", q.Get("time"))
		assert.Equal(t, "01/03/2024", q.Get("date"))
		assert.Equal(t, "30", q.Get("num"))
		assert.Equal(t, "train", q.Get("transportation_types"))
	})
}

func TestTimetableJSONHandler_EnglishLabels(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/timetable.json?from=Bern&to=Thun&lang=en")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := model.Data.(map[string]interface{})["entry"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Station", "Connection", "Connection"}, entry["header"])
}

func TestTimetableHandler_MissingParameter(t *testing.T) {
	for _, endpoint := range []string{
		"/api/timetable.json?from=Bern",
		"/api/timetable.json?to=Thun",
		"/api/timetable.csv?from=Bern",
	} {
		t.Run(endpoint, func(t *testing.T) {
			upstream := newFakeUpstream(t, http.StatusOK, routeJSON)
			api := createTestApiWithUpstream(t, upstream)

			_, resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, http.StatusBadRequest, model.Code)
			assert.Nil(t, model.Data)
			assert.Equal(t, int32(0), upstream.hits.Load(), "upstream must not be contacted")

			searches, err := api.SearchLog.Recent(context.Background(), 10)
			require.NoError(t, err)
			require.Len(t, searches, 1)
			assert.Equal(t, searchlog.OutcomeMissingParameter, searches[0].Outcome)
		})
	}
}

func TestTimetableHandler_UpstreamFailure(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"error":"not found"}`},
		{"server error", http.StatusInternalServerError, ""},
		{"invalid json", http.StatusOK, `{"count":`},
		{"missing count", http.StatusOK, `{"connections":[]}`},
		{"bad timestamp", http.StatusOK, `{"count":1,"connections":[{"legs":[{"name":"Bern","departure":"soon"}]}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			upstream := newFakeUpstream(t, tc.status, tc.body)
			api := createTestApiWithUpstream(t, upstream)

			_, resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/timetable.json?from=Bern&to=Thun")
			assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
			assert.Equal(t, fetchFailedText, model.Text)
			assert.Nil(t, model.Data)
			assert.Nil(t, api.LastResult())

			searches, err := api.SearchLog.Recent(context.Background(), 10)
			require.NoError(t, err)
			require.Len(t, searches, 1)
			assert.Equal(t, searchlog.OutcomeFetchFailed, searches[0].Outcome)
		})
	}
}

func TestTimetableCSVHandler(t *testing.T) {
	server := serveApi(t, createTestApi(t))

	resp, err := http.Get(server.URL + "/api/timetable.csv?from=Bern&to=Thun")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv;charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename=timetable.csv`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t,
		"Haltestelle,Verbindung,Verbindung\n"+
			"Bern,08:02,08:36\n"+
			"Münsingen,08:11,\n"+
			"Thun,08:19,08:53\n",
		string(body))
}

func TestTimetableHandler_RecordsSuccessfulSearch(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/timetable.json?from=Bern&to=Thun", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	searches, err := api.SearchLog.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, searches, 1)
	assert.Equal(t, searchlog.OutcomeOK, searches[0].Outcome)
	assert.Equal(t, "Bern", searches[0].Origin)
	assert.Equal(t, 2, searches[0].Connections)
	assert.Equal(t, 3, searches[0].Stations)
	assert.Equal(t, "trace-42", searches[0].RequestID)

	last := api.LastResult()
	require.NotNil(t, last)
	assert.Equal(t, 3, last.Table.Grid.Len())
}

func TestTimetableHandler_RequiresValidApiKey(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, routeJSON)
	api := createTestApiWithUpstream(t, upstream, func(cfg *appconf.Config) {
		cfg.ApiKeys = []string{"TEST"}
	})
	server := serveApi(t, api)

	resp, err := http.Get(server.URL + "/api/timetable.json?from=Bern&to=Thun&key=invalid")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(0), upstream.hits.Load())

	resp, err = http.Get(server.URL + "/api/timetable.json?from=Bern&to=Thun&key=TEST")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
