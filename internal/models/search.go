package models

import (
	"fahrplan.dev/searchlog"
)

// SearchEntry is one row of the search log in API responses.
type SearchEntry struct {
	ID          int64  `json:"id"`
	From        string `json:"from"`
	To          string `json:"to"`
	Time        string `json:"time"`
	Date        string `json:"date"`
	Outcome     string `json:"outcome"`
	Connections int    `json:"connections"`
	Stations    int    `json:"stations"`
	RequestID   string `json:"requestId,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

func NewSearchEntry(s searchlog.Search) SearchEntry {
	return SearchEntry{
		ID:          s.ID,
		From:        s.Origin,
		To:          s.Destination,
		Time:        s.Time,
		Date:        s.Date,
		Outcome:     s.Outcome,
		Connections: s.Connections,
		Stations:    s.Stations,
		RequestID:   s.RequestID,
		CreatedAt:   s.CreatedAt,
	}
}
