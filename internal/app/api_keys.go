package app

import (
	"crypto/subtle"
	"net/http"
)

// RequestHasInvalidAPIKey reports whether r must be rejected. When no keys
// are configured every request is accepted.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	if !app.Config.RequiresAPIKey() {
		return false
	}
	return app.IsInvalidAPIKey(r.URL.Query().Get("key"))
}

func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.ApiKeys {
		// constant-time comparison
		if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) == 1 {
			return false
		}
	}

	return true
}
