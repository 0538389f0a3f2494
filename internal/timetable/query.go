package timetable

import (
	"net/url"
	"strings"
	"time"
)

// DefaultTime is used when the caller does not ask for a departure time.
const DefaultTime = "04:00"

// Query is a validated timetable search.
type Query struct {
	From string
	To   string
	Time string
	Date string
	Lang string
}

// ParseQuery reads from, to, time, date and lang from values. from and to
// are required; time defaults to DefaultTime and date to now in Swiss
// local time.
func ParseQuery(values url.Values, now time.Time) (Query, error) {
	q := Query{
		From: strings.TrimSpace(values.Get("from")),
		To:   strings.TrimSpace(values.Get("to")),
		Time: strings.TrimSpace(values.Get("time")),
		Date: strings.TrimSpace(values.Get("date")),
		Lang: strings.ToLower(strings.TrimSpace(values.Get("lang"))),
	}

	if q.From == "" {
		return Query{}, &MissingParameterError{Name: "from"}
	}
	if q.To == "" {
		return Query{}, &MissingParameterError{Name: "to"}
	}
	if q.Time == "" {
		q.Time = DefaultTime
	}
	if q.Date == "" {
		q.Date = FormatDate(now)
	}

	return q, nil
}

// Labels returns the header captions for the query's language.
func (q Query) Labels() Labels {
	return LabelsFor(q.Lang)
}

// Values encodes the query back into URL parameters, omitting empty fields.
func (q Query) Values() url.Values {
	v := url.Values{}
	for _, kv := range [][2]string{{"from", q.From}, {"to", q.To}, {"time", q.Time}, {"date", q.Date}, {"lang", q.Lang}} {
		if kv[1] != "" {
			v.Set(kv[0], kv[1])
		}
	}
	return v
}
