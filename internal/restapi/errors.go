package restapi

import (
	"errors"
	"log/slog"
	"net/http"

	"fahrplan.dev/internal/app"
	"fahrplan.dev/internal/logging"
	"fahrplan.dev/internal/timetable"
)

// fetchFailedText is shown for every upstream, decoding or reshaping failure.
const fetchFailedText = app.FetchFailedMessage

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.Logger, "internal server error", err,
		slog.String("path", r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// timetableErrorResponse maps a search failure to 400 (missing parameter)
// or 502 (anything that went wrong fetching or reshaping).
func (api *RestAPI) timetableErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var missing *timetable.MissingParameterError
	if errors.As(err, &missing) {
		logging.FromContext(r.Context()).Warn("timetable request rejected",
			slog.String("parameter", missing.Name),
			slog.String("request_id", GetRequestID(r.Context())))
		api.sendError(w, r, http.StatusBadRequest, app.MissingParameterMessage)
		return
	}
	api.sendError(w, r, http.StatusBadGateway, fetchFailedText)
}
