package restapi

import (
	"net/http"

	"fahrplan.dev/internal/buildinfo"
	"fahrplan.dev/internal/models"
	"fahrplan.dev/internal/searchch"
)

func (api *RestAPI) configHandler(w http.ResponseWriter, r *http.Request) {
	props := models.BuildProperties{
		Branch:          buildinfo.Branch,
		BuildTime:       buildinfo.BuildTime,
		BuildHost:       buildinfo.Host,
		BuildVersion:    buildinfo.Version,
		CommitID:        buildinfo.CommitHash,
		CommitIDAbbrev:  buildinfo.ShortHash(),
		CommitTime:      buildinfo.CommitTime,
		CommitMessage:   buildinfo.CommitMessage,
		CommitUserName:  buildinfo.UserName,
		CommitUserEmail: buildinfo.UserEmail,
		Dirty:           buildinfo.Dirty,
		RemoteOriginURL: buildinfo.RemoteURL,
	}

	entry := models.ConfigModel{
		BuildProperties: props,
		Id:              "fahrplan-grid",
		Name:            "Fahrplan Grid",
		SearchURL:       api.Config.SearchURL,
		ResultCount:     searchch.ResultCount,
		Language:        api.Config.Language,
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, api.Clock))
}
