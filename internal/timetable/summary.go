package timetable

import (
	"math"

	"fahrplan.dev/internal/utils"
	"github.com/twpayne/go-polyline"
)

// ConnectionSummary is a compact description of one connection for API
// consumers that do not want the full grid.
type ConnectionSummary struct {
	Index           int      `json:"index"`
	From            string   `json:"from"`
	To              string   `json:"to"`
	Departure       string   `json:"departure"`
	Arrival         string   `json:"arrival"`
	DurationMinutes int      `json:"durationMinutes"`
	Lines           []string `json:"lines"`
	Polyline        string   `json:"polyline,omitempty"`
	DistanceMeters  float64  `json:"distanceMeters,omitempty"`
}

// Summarize returns one summary per connection in response order.
// Unparseable times render as empty strings here; Build is the strict path.
func Summarize(resp *Response) []ConnectionSummary {
	if resp == nil {
		return nil
	}

	summaries := make([]ConnectionSummary, 0, len(resp.Connections))
	for i, c := range resp.Connections {
		departure, _ := FormatClock(&c.Departure)
		arrival, _ := FormatClock(&c.Arrival)

		lines := []string{}
		for _, leg := range c.Legs {
			if leg.Line != "" {
				lines = append(lines, leg.Line)
			}
		}

		coords := pathCoords(c.Legs)
		summaries = append(summaries, ConnectionSummary{
			Index:           i,
			From:            c.From,
			To:              c.To,
			Departure:       departure,
			Arrival:         arrival,
			DurationMinutes: int(c.Duration / 60),
			Lines:           lines,
			Polyline:        encodePath(coords),
			DistanceMeters:  math.Round(utils.PathLength(coords)),
		})
	}
	return summaries
}

// pathCoords collects the coordinates of every leg origin, stop and exit that
// carries them, in travel order.
func pathCoords(legs []Leg) [][]float64 {
	var coords [][]float64
	add := func(lat, lon *float64) {
		if lat == nil || lon == nil {
			return
		}
		coords = append(coords, []float64{*lat, *lon})
	}

	for _, leg := range legs {
		add(leg.Lat, leg.Lon)
		for _, stop := range leg.Stops {
			add(stop.Lat, stop.Lon)
		}
		if leg.Exit != nil {
			add(leg.Exit.Lat, leg.Exit.Lon)
		}
	}
	return coords
}

func encodePath(coords [][]float64) string {
	if len(coords) < 2 {
		return ""
	}
	return string(polyline.EncodeCoords(coords))
}
