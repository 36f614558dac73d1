package export

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable draws t as a box table for terminals.
func RenderTable(t Tabular) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault

	header := t.Header()
	row := make(table.Row, len(header))
	for i, h := range header {
		row[i] = h
	}
	tw.AppendHeader(row)

	for _, r := range t.Rows() {
		cells := make(table.Row, len(r))
		for i, v := range r {
			cells[i] = formatCell(v)
		}
		tw.AppendRow(cells)
	}
	return tw.Render()
}
