package restapi

import (
	"net/http"

	"fahrplan.dev/internal/models"
)

// currentTimeHandler reports the server time and the default search date
// derived from it.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	data := models.NewCurrentTimeData(api.Clock.Now())
	api.sendResponse(w, r, models.NewEntryResponse(data, api.Clock))
}
