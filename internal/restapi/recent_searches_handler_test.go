package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentSearchesHandler(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	for _, endpoint := range []string{
		"/api/timetable.json?from=Bern&to=Thun",
		"/api/timetable.json?from=Bern",
	} {
		resp, err := http.Get(server.URL + endpoint)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	_, resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/searches/recent.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := model.Data.(map[string]interface{})
	assert.Equal(t, false, data["limitExceeded"])

	list, ok := data["list"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)

	outcomes := []string{
		list[0].(map[string]interface{})["outcome"].(string),
		list[1].(map[string]interface{})["outcome"].(string),
	}
	assert.ElementsMatch(t, []string{"ok", "missing_parameter"}, outcomes)
}

func TestRecentSearchesHandler_Limit(t *testing.T) {
	t.Run("rejects non-numeric limit", func(t *testing.T) {
		_, resp, model := serveAndRetrieveEndpoint(t, "/api/searches/recent.json?limit=abc")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "limit must be a positive integer", model.Text)
	})

	t.Run("caps large limit", func(t *testing.T) {
		_, resp, model := serveAndRetrieveEndpoint(t, "/api/searches/recent.json?limit=1000")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		data := model.Data.(map[string]interface{})
		assert.Equal(t, true, data["limitExceeded"])
		assert.Equal(t, []interface{}{}, data["list"])
	})
}

func TestRecentSearchesHandler_Disabled(t *testing.T) {
	api := createTestApi(t)
	api.SearchLog = nil

	_, resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/searches/recent.json")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "search log disabled", model.Text)
}
