package models

import (
	"fahrplan.dev/internal/timetable"
)

// TimetableQuery echoes the effective search parameters.
type TimetableQuery struct {
	From string `json:"from"`
	To   string `json:"to"`
	Time string `json:"time"`
	Date string `json:"date"`
}

// TimetableEntry is the JSON form of a built timetable.
type TimetableEntry struct {
	Query       TimetableQuery                `json:"query"`
	Header      []string                      `json:"header"`
	Rows        []timetable.Row               `json:"rows"`
	Connections []timetable.ConnectionSummary `json:"connections"`
}

func NewTimetableEntry(q timetable.Query, table *timetable.Table, connections []timetable.ConnectionSummary) TimetableEntry {
	if connections == nil {
		connections = []timetable.ConnectionSummary{}
	}
	return TimetableEntry{
		Query: TimetableQuery{
			From: q.From,
			To:   q.To,
			Time: q.Time,
			Date: q.Date,
		},
		Header:      table.Header,
		Rows:        table.Grid.Rows(),
		Connections: connections,
	}
}
