package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the header followed by every row. Absent cells are empty.
func WriteCSV(w io.Writer, t Tabular) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}

	for _, r := range t.Rows() {
		record := make([]string, len(r))
		for i, v := range r {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
