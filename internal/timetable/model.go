// Package timetable reshapes a search.ch route response into a grid of
// per-station times, one column per connection, and renders that grid as
// table rows and CSV.
package timetable

// Response is the subset of the search.ch route.json payload the grid needs.
// Count is a pointer so a missing "count" can be told apart from zero.
type Response struct {
	Count       *int         `json:"count"`
	Connections []Connection `json:"connections"`
}

// Connection is one itinerary option from origin to destination.
type Connection struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Departure string  `json:"departure"`
	Arrival   string  `json:"arrival"`
	Duration  float64 `json:"duration"`
	Legs      []Leg   `json:"legs"`
}

// Leg is one segment of a connection. The final leg of a search.ch
// connection usually carries no name of its own, only an exit.
type Leg struct {
	Name      string   `json:"name,omitempty"`
	Departure *string  `json:"departure,omitempty"`
	Arrival   *string  `json:"arrival,omitempty"`
	Type      string   `json:"type,omitempty"`
	Line      string   `json:"line,omitempty"`
	Terminal  string   `json:"terminal,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
	Exit      *Exit    `json:"exit,omitempty"`
	Stops     []Stop   `json:"stops,omitempty"`
}

type Exit struct {
	Name    string   `json:"name"`
	Arrival *string  `json:"arrival,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Stop is an intermediate station passed during a leg.
type Stop struct {
	Name      string   `json:"name"`
	Arrival   *string  `json:"arrival,omitempty"`
	Departure *string  `json:"departure,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
}

// stationKey returns the label the leg contributes to the grid: its own
// name, or the exit name when the leg has none.
func (l Leg) stationKey() (string, bool) {
	if l.Name != "" {
		return l.Name, true
	}
	if l.Exit != nil && l.Exit.Name != "" {
		return l.Exit.Name, true
	}
	return "", false
}
