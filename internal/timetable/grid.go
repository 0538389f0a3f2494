package timetable

// Row is one station line of the grid.
type Row struct {
	Station string   `json:"station"`
	Times   []string `json:"times"`
}

// Grid maps station names to one time string per connection. Stations keep
// the order in which they were first seen; every row has exactly Width slots.
type Grid struct {
	width int
	order []string
	rows  map[string][]string
}

// NewGrid returns an empty grid whose rows are width slots long.
func NewGrid(width int) *Grid {
	return &Grid{
		width: width,
		rows:  make(map[string][]string),
	}
}

// Set writes value into the station's slot for column, creating the row on
// first sight. An existing value in that slot is overwritten.
func (g *Grid) Set(station string, column int, value string) {
	row, ok := g.rows[station]
	if !ok {
		row = make([]string, g.width)
		g.rows[station] = row
		g.order = append(g.order, station)
	}
	row[column] = value
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Len() int {
	return len(g.order)
}

// Stations returns the station names in first-seen order.
func (g *Grid) Stations() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Times returns a copy of the station's row, or nil if the station is unknown.
func (g *Grid) Times(station string) []string {
	row, ok := g.rows[station]
	if !ok {
		return nil
	}
	out := make([]string, len(row))
	copy(out, row)
	return out
}

// Rows returns every row in first-seen order.
func (g *Grid) Rows() []Row {
	rows := make([]Row, 0, len(g.order))
	for _, station := range g.order {
		rows = append(rows, Row{Station: station, Times: g.Times(station)})
	}
	return rows
}
