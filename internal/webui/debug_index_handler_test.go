package webui

import (
	"net/http"
	"testing"

	"fahrplan.dev/internal/appconf"
	"github.com/stretchr/testify/assert"
)

func TestDebugIndexHandler_ProductionReturns404(t *testing.T) {
	webUI, _ := createTestWebUI(t, http.StatusOK, routeJSON, appconf.Production)

	resp, _ := get(t, webUI, "/debug")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "Should return 404 in Production")
}

func TestDebugIndexHandler_NoResultYet(t *testing.T) {
	webUI, _ := createTestWebUI(t, http.StatusOK, routeJSON, appconf.Development)

	resp, body := get(t, webUI, "/debug")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No timetable built yet")
}

func TestDebugIndexHandler_DumpsLastResult(t *testing.T) {
	webUI, _ := createTestWebUI(t, http.StatusOK, routeJSON, appconf.Development)
	webUI.Config.ApiKeys = []string{"secret-key"}

	_, _ = get(t, webUI, "/timetable?from=Bern&to=Thun")

	tests := []struct {
		dataType string
		want     string
	}{
		{"", "Last timetable - Bern to Thun"},
		{"grid", "Münsingen"},
		{"csv", "Haltestelle,Verbindung,Verbindung"},
		{"connections", "ConnectionSummary"},
		{"config", "SearchURL"},
	}

	for _, tt := range tests {
		t.Run("dataType="+tt.dataType, func(t *testing.T) {
			resp, body := get(t, webUI, "/debug?dataType="+tt.dataType)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, "secret-key")
		})
	}
}
