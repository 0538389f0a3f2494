package webui

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed static
var staticFS embed.FS

// startTime is the modification time reported for embedded assets.
var startTime = time.Now()

var allowedExtensions = map[string]bool{
	".css": true, ".js": true,
	".png": true, ".svg": true, ".ico": true,
}

func (webUI *WebUI) staticHandler(w http.ResponseWriter, r *http.Request) {
	fileName := r.PathValue("file")

	// Whitelist allowed extensions
	ext := strings.ToLower(path.Ext(fileName))
	if !allowedExtensions[ext] {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	if fileName == "" || strings.Contains(fileName, "..") || strings.ContainsAny(fileName, "/\\\x00") {
		slog.Warn("rejected static file request", "file", fileName)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	data, err := fs.ReadFile(staticFS, path.Join("static", fileName))
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, fileName, startTime, bytes.NewReader(data))
}
