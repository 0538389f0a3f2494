package timetable

// HeaderSink receives header cells in column order.
type HeaderSink interface {
	AppendHeaderCell(label string)
}

// BodySink receives grid rows in first-seen station order.
type BodySink interface {
	AppendRow(station string, times []string)
}

// Render pushes the header cells and rows of t into the given sinks.
func (t *Table) Render(header HeaderSink, body BodySink) {
	for _, label := range t.Header {
		header.AppendHeaderCell(label)
	}
	for _, row := range t.Grid.Rows() {
		body.AppendRow(row.Station, row.Times)
	}
}
