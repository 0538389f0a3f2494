package webui

import (
	"net/http"

	"fahrplan.dev/internal/appconf"
	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	dataStruct := debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "debug_index.html", dataStruct); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}

	last := webUI.LastResult()
	if last == nil {
		writeDebugData(w, "No timetable built yet", map[string]string{
			"hint": "Open /timetable?from=...&to=... first.",
		})
		return
	}

	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "grid":
		data = last.Table.Grid.Rows()
		title = "Last timetable - Grid"
	case "csv":
		data = last.CSV
		title = "Last timetable - CSV"
	case "connections":
		data = last.Connections
		title = "Last timetable - Connections"
	case "config":
		cfg := webUI.Config
		cfg.ApiKeys = nil
		cfg.ExemptApiKeys = nil
		data = cfg
		title = "Configuration"
	default:
		data = last
		title = "Last timetable - " + last.Query.From + " to " + last.Query.To
	}

	writeDebugData(w, title, data)
}
