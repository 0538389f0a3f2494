package searchlog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"fahrplan.dev/internal/logging"
)

// Search is one logged timetable query.
type Search struct {
	ID          int64
	Origin      string
	Destination string
	Time        string
	Date        string
	Outcome     string
	Connections int
	Stations    int
	RequestID   string
	CreatedAt   int64 // Unix milliseconds
}

const insertSearch = `INSERT INTO searches (
    origin, destination, departure_time, departure_date, outcome,
    connections, stations, request_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const listRecentSearches = `SELECT
    id, origin, destination, departure_time, departure_date, outcome,
    connections, stations, request_id, created_at
FROM searches
ORDER BY created_at DESC, id DESC
LIMIT ?`

// Record stores s and returns its row id.
func (c *Client) Record(ctx context.Context, s Search) (int64, error) {
	res, err := c.DB.ExecContext(ctx, insertSearch,
		s.Origin, s.Destination, s.Time, s.Date, s.Outcome,
		s.Connections, s.Stations, toNullString(s.RequestID), s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("unable to record search: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit searches, newest first.
func (c *Client) Recent(ctx context.Context, limit int) ([]Search, error) {
	if limit <= 0 {
		return []Search{}, nil
	}

	rows, err := c.DB.QueryContext(ctx, listRecentSearches, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to list searches: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows,
		c.logger.With(slog.String("component", "searchlog")),
		"database_rows")

	searches := []Search{}
	for rows.Next() {
		var s Search
		var requestID sql.NullString
		if err := rows.Scan(&s.ID, &s.Origin, &s.Destination, &s.Time, &s.Date, &s.Outcome,
			&s.Connections, &s.Stations, &requestID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("unable to scan search: %w", err)
		}
		s.RequestID = requestID.String
		searches = append(searches, s)
	}
	return searches, rows.Err()
}

// Count returns the number of logged searches.
func (c *Client) Count(ctx context.Context) (int, error) {
	var n int
	err := c.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM searches").Scan(&n)
	return n, err
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
