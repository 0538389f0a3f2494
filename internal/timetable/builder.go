package timetable

// Labels are the header captions of the grid.
type Labels struct {
	Station    string
	Connection string
}

var (
	GermanLabels  = Labels{Station: "Haltestelle", Connection: "Verbindung"}
	EnglishLabels = Labels{Station: "Station", Connection: "Connection"}
)

// LabelsFor picks header captions by language code, defaulting to German.
func LabelsFor(lang string) Labels {
	if lang == "en" {
		return EnglishLabels
	}
	return GermanLabels
}

// Table is a built grid together with its header row.
type Table struct {
	Header []string
	Grid   *Grid
}

// Build reshapes resp into a Table. Each connection fills one column: the
// first leg contributes its departure, later legs their arrival, and every
// intermediate stop its arrival. Build does not modify resp.
func Build(resp *Response, labels Labels) (*Table, error) {
	if resp == nil || resp.Count == nil {
		return nil, malformed("missing count")
	}
	count := *resp.Count
	if count < 0 {
		return nil, malformed("negative count %d", count)
	}
	if len(resp.Connections) > count {
		return nil, malformed("%d connections exceed count %d", len(resp.Connections), count)
	}

	header := make([]string, 0, count+1)
	header = append(header, labels.Station)
	for i := 0; i < count; i++ {
		header = append(header, labels.Connection)
	}

	grid := NewGrid(count)
	for column, connection := range resp.Connections {
		for legIndex, leg := range connection.Legs {
			station, ok := leg.stationKey()
			if !ok {
				return nil, malformed("connection %d leg %d has no name", column, legIndex)
			}

			relevant := leg.Arrival
			if legIndex == 0 {
				relevant = leg.Departure
			}
			clock, err := FormatClock(relevant)
			if err != nil {
				return nil, err
			}
			grid.Set(station, column, clock)

			for stopIndex, stop := range leg.Stops {
				if stop.Name == "" {
					return nil, malformed("connection %d leg %d stop %d has no name", column, legIndex, stopIndex)
				}
				arrival, err := FormatClock(stop.Arrival)
				if err != nil {
					return nil, err
				}
				grid.Set(stop.Name, column, arrival)
			}
		}
	}

	return &Table{Header: header, Grid: grid}, nil
}
