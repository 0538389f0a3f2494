package models

import (
	"time"

	"fahrplan.dev/internal/timetable"
)

// CurrentTimeData reports the server clock and the search date it implies.
type CurrentTimeData struct {
	Time        int64  `json:"time"`
	ReadableUTC string `json:"readableTime"`
	DefaultDate string `json:"defaultDate"`
	DefaultTime string `json:"defaultTime"`
}

func NewCurrentTimeData(now time.Time) CurrentTimeData {
	return CurrentTimeData{
		Time:        now.UnixMilli(),
		ReadableUTC: now.UTC().Format(time.RFC3339),
		DefaultDate: timetable.FormatDate(now),
		DefaultTime: timetable.DefaultTime,
	}
}
