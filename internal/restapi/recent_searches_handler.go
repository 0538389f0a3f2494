package restapi

import (
	"net/http"
	"strconv"

	"fahrplan.dev/internal/models"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

func (api *RestAPI) recentSearchesHandler(w http.ResponseWriter, r *http.Request) {
	if api.SearchLog == nil {
		api.sendError(w, r, http.StatusServiceUnavailable, "search log disabled")
		return
	}

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			api.sendError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	limitExceeded := false
	if limit > maxRecentLimit {
		limit = maxRecentLimit
		limitExceeded = true
	}

	searches, err := api.SearchLog.Recent(r.Context(), limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.SearchEntry, 0, len(searches))
	for _, s := range searches {
		entries = append(entries, models.NewSearchEntry(s))
	}

	api.sendResponse(w, r, models.NewListResponse(entries, limitExceeded, api.Clock))
}
