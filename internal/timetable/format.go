package timetable

import (
	"strings"
	"time"
	_ "time/tzdata" // Europe/Zurich must resolve on hosts without zoneinfo
)

// SwissLocation is the zone search.ch expresses its wall-clock timestamps in.
var SwissLocation = mustLoadLocation("Europe/Zurich")

const (
	upstreamLayout = "2006-01-02 15:04:05"
	clockLayout    = "15:04"
	dateLayout     = "02/01/2006"
)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// ParseTimestamp reads a search.ch timestamp. Plain wall-clock values are
// taken as Swiss local time; RFC 3339 values are converted to it.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(upstreamLayout, s, SwissLocation); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, malformed("unparseable timestamp %q", s)
	}
	return t.In(SwissLocation), nil
}

// FormatClock renders a timestamp as two-digit 24-hour hours and minutes.
// A nil or blank timestamp renders as the empty string.
func FormatClock(ts *string) (string, error) {
	if ts == nil || strings.TrimSpace(*ts) == "" {
		return "", nil
	}
	t, err := ParseTimestamp(*ts)
	if err != nil {
		return "", err
	}
	return t.Format(clockLayout), nil
}

// FormatDate renders t in the day/month/year form the upstream expects.
func FormatDate(t time.Time) string {
	return t.In(SwissLocation).Format(dateLayout)
}
