package timetable

import (
	"bytes"
	"encoding/csv"
	"io"
)

const (
	// CSVFilename is the name offered to browsers for the export.
	CSVFilename = "timetable.csv"
	// CSVContentType is the media type of the export.
	CSVContentType = "text/csv;charset=utf-8"
)

// WriteCSV writes the header line and one line per grid row. Fields that
// contain separators, quotes or line breaks are quoted.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Grid.Rows() {
		record := make([]string, 0, len(row.Times)+1)
		record = append(record, row.Station)
		record = append(record, row.Times...)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the export as a string.
func (t *Table) CSV() (string, error) {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
