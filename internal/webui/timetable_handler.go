package webui

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"fahrplan.dev/internal/app"
	"fahrplan.dev/internal/logging"
	"fahrplan.dev/internal/timetable"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// tableView collects the rendered table. It is the HTML implementation of
// the timetable sinks.
type tableView struct {
	Header []string
	Rows   []timetable.Row
}

func (v *tableView) AppendHeaderCell(label string) {
	v.Header = append(v.Header, label)
}

func (v *tableView) AppendRow(station string, times []string) {
	v.Rows = append(v.Rows, timetable.Row{Station: station, Times: times})
}

type timetablePage struct {
	Lang     string
	From     string
	To       string
	Time     string
	Date     string
	Alert    string
	Table    tableView
	CSVHref  template.URL
	Filename string
}

// csvDataURL returns the export as a data: URL so the download link works
// without a second request.
func csvDataURL(csv string) template.URL {
	return template.URL("data:" + timetable.CSVContentType + "," + url.PathEscape(csv))
}

func pageLang(lang, fallback string) string {
	if lang == "" {
		lang = fallback
	}
	if strings.EqualFold(lang, "en") {
		return "en"
	}
	return "de"
}

func (webUI *WebUI) timetableHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	values := r.URL.Query()

	page := timetablePage{
		Lang:     pageLang(values.Get("lang"), webUI.Config.Language),
		From:     values.Get("from"),
		To:       values.Get("to"),
		Time:     values.Get("time"),
		Date:     values.Get("date"),
		Filename: timetable.CSVFilename,
	}

	q, err := webUI.ParseQuery(ctx, values)
	if err != nil {
		page.Alert = app.MissingParameterMessage
		webUI.renderTimetable(w, r, http.StatusBadRequest, page)
		return
	}
	page.Time, page.Date = q.Time, q.Date
	page.Lang = pageLang(q.Lang, "")

	result, err := webUI.SearchTimetable(ctx, q)
	if err != nil {
		status := http.StatusBadGateway
		if app.IsUserError(err) {
			status = http.StatusBadRequest
		}
		page.Alert = app.FetchFailedMessage
		webUI.renderTimetable(w, r, status, page)
		return
	}

	result.Table.Render(&page.Table, &page.Table)
	page.CSVHref = csvDataURL(result.CSV)
	webUI.renderTimetable(w, r, http.StatusOK, page)
}

// renderTimetable buffers the page so a template failure can still send a 500.
func (webUI *WebUI) renderTimetable(w http.ResponseWriter, r *http.Request, status int, page timetablePage) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "timetable.html", page); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render timetable page", err,
			slog.String("path", r.URL.Path))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
