package table

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// PeriodColumn is the label of the leading period column of every WideTable.
const PeriodColumn = "날짜"

// WideTable is a period-indexed table with one column per series label.
// A cell with no observation is absent, never zero.
type WideTable struct {
	periods  []string
	labels   []string
	rowIndex map[string]int
	colIndex map[string]int
	cells    [][]*float64
}

// NewWideTable returns an empty table with only the period column.
func NewWideTable() *WideTable {
	return &WideTable{
		periods:  []string{},
		labels:   []string{},
		rowIndex: make(map[string]int),
		colIndex: make(map[string]int),
	}
}

func (t *WideTable) addPeriod(period string) {
	if _, ok := t.rowIndex[period]; ok {
		return
	}
	t.rowIndex[period] = len(t.periods)
	t.periods = append(t.periods, period)
}

func (t *WideTable) addLabel(label string) {
	if _, ok := t.colIndex[label]; ok {
		return
	}
	t.colIndex[label] = len(t.labels)
	t.labels = append(t.labels, label)
}

// Len returns the number of rows.
func (t *WideTable) Len() int {
	return len(t.periods)
}

// Empty reports whether the table has no rows.
func (t *WideTable) Empty() bool {
	return len(t.periods) == 0
}

// Periods returns the row keys in order.
func (t *WideTable) Periods() []string {
	return append([]string(nil), t.periods...)
}

// Labels returns the series columns in order, without the period column.
func (t *WideTable) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Header returns every column name, PeriodColumn first.
func (t *WideTable) Header() []string {
	header := make([]string, 0, len(t.labels)+1)
	header = append(header, PeriodColumn)
	return append(header, t.labels...)
}

// Value returns the ratio at (period, label) and whether it was observed.
func (t *WideTable) Value(period, label string) (float64, bool) {
	row, ok := t.rowIndex[period]
	if !ok {
		return 0, false
	}
	col, ok := t.colIndex[label]
	if !ok {
		return 0, false
	}
	if cell := t.cells[row][col]; cell != nil {
		return *cell, true
	}
	return 0, false
}

// Rows returns the table as positional rows matching Header. Absent cells
// are nil.
func (t *WideTable) Rows() [][]interface{} {
	rows := make([][]interface{}, len(t.periods))
	for i, period := range t.periods {
		row := make([]interface{}, 0, len(t.labels)+1)
		row = append(row, period)
		for _, cell := range t.cells[i] {
			if cell == nil {
				row = append(row, nil)
				continue
			}
			row = append(row, *cell)
		}
		rows[i] = row
	}
	return rows
}

// Records returns one ordered record per row, keyed by Header.
func (t *WideTable) Records() []*orderedmap.OrderedMap[string, interface{}] {
	header := t.Header()
	records := make([]*orderedmap.OrderedMap[string, interface{}], 0, len(t.periods))
	for _, row := range t.Rows() {
		record := orderedmap.New[string, interface{}](len(header))
		for i, key := range header {
			record.Set(key, row[i])
		}
		records = append(records, record)
	}
	return records
}

// MarshalJSON encodes the table as an array of row objects with the period
// key first and absent cells as null.
func (t *WideTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Records())
}
