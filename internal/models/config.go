package models

// BuildProperties mirrors the git.* keys of the Spring-style git.properties
// block that timetable dashboards already parse.
type BuildProperties struct {
	Branch          string `json:"git.branch"`
	BuildTime       string `json:"git.build.time"`
	BuildHost       string `json:"git.build.host"`
	BuildVersion    string `json:"git.build.version"`
	CommitID        string `json:"git.commit.id"`
	CommitIDAbbrev  string `json:"git.commit.id.abbrev"`
	CommitTime      string `json:"git.commit.time"`
	CommitMessage   string `json:"git.commit.message.short"`
	CommitUserName  string `json:"git.commit.user.name"`
	CommitUserEmail string `json:"git.commit.user.email"`
	Dirty           string `json:"git.dirty"`
	RemoteOriginURL string `json:"git.remote.origin.url"`
}

// ConfigModel describes the running build and its upstream.
type ConfigModel struct {
	BuildProperties BuildProperties `json:"gitProperties"`
	Id              string          `json:"id"`
	Name            string          `json:"name"`
	SearchURL       string          `json:"searchUrl"`
	ResultCount     int             `json:"resultCount"`
	Language        string          `json:"language"`
}
