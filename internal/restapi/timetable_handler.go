package restapi

import (
	"io"
	"mime"
	"net/http"

	"fahrplan.dev/internal/app"
	"fahrplan.dev/internal/models"
	"fahrplan.dev/internal/timetable"
)

// search parses the request and runs the timetable search. On failure it
// writes the error response and returns nil.
func (api *RestAPI) search(w http.ResponseWriter, r *http.Request) *app.Result {
	ctx := r.Context()

	q, err := api.ParseQuery(ctx, r.URL.Query())
	if err != nil {
		api.timetableErrorResponse(w, r, err)
		return nil
	}

	result, err := api.SearchTimetable(ctx, q)
	if err != nil {
		api.timetableErrorResponse(w, r, err)
		return nil
	}
	return result
}

func (api *RestAPI) timetableJSONHandler(w http.ResponseWriter, r *http.Request) {
	result := api.search(w, r)
	if result == nil {
		return
	}

	entry := models.NewTimetableEntry(result.Query, result.Table, result.Connections)
	api.sendResponse(w, r, models.NewEntryResponse(entry, api.Clock))
}

func (api *RestAPI) timetableCSVHandler(w http.ResponseWriter, r *http.Request) {
	result := api.search(w, r)
	if result == nil {
		return
	}

	w.Header().Set("Content-Type", timetable.CSVContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": timetable.CSVFilename}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, result.CSV); err != nil {
		api.Logger.Warn("failed to write csv", "error", err)
	}
}
