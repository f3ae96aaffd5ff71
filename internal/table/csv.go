package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FromCSV reads a header-rowed delimited file into a Table. All cells come
// in as strings; empty cells become nil so that "absent" survives the trip.
func FromCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read header row: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	t := Table{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("failed to read data row: %w", err)
		}
		row := make(Row, len(columns))
		for i, c := range columns {
			if i >= len(record) || strings.TrimSpace(record[i]) == "" {
				row[c] = nil
				continue
			}
			row[c] = record[i]
		}
		t.Append(row)
	}
	return t, nil
}

// WriteCSV writes the table as comma-delimited text. Missing cells are
// written as empty fields.
func (t Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			record[i] = FormatValue(r[c])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
