package table

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const shapeItems = "item-list"

// Record is one loosely-typed row with its fields in response order.
type Record = orderedmap.OrderedMap[string, interface{}]

// ItemList is a row-oriented table built from a response "items" array.
type ItemList struct {
	LastBuildDate string
	Total         int
	Start         int
	Display       int

	columns []string
	items   []*Record
}

type itemsEnvelope struct {
	LastBuildDate string     `json:"lastBuildDate"`
	Total         int        `json:"total"`
	Start         int        `json:"start"`
	Display       int        `json:"display"`
	Items         *[]*Record `json:"items"`
}

// DecodeItemList parses a body carrying an "items" array. An empty array is a
// valid empty list; a missing key is a *ShapeError.
func DecodeItemList(body []byte) (*ItemList, error) {
	if len(body) == 0 {
		return nil, shapeErrorf(shapeItems, "empty body")
	}

	var env itemsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ShapeError{Shape: shapeItems, Reason: "invalid JSON", Err: err}
	}
	if env.Items == nil {
		return nil, shapeErrorf(shapeItems, "missing items")
	}

	list := &ItemList{
		LastBuildDate: env.LastBuildDate,
		Total:         env.Total,
		Start:         env.Start,
		Display:       env.Display,
		columns:       []string{},
		items:         make([]*Record, 0, len(*env.Items)),
	}

	seen := make(map[string]bool)
	for i, item := range *env.Items {
		if item == nil {
			return nil, shapeErrorf(shapeItems, "items[%d] is null", i)
		}
		for pair := item.Oldest(); pair != nil; pair = pair.Next() {
			if !seen[pair.Key] {
				seen[pair.Key] = true
				list.columns = append(list.columns, pair.Key)
			}
		}
		list.items = append(list.items, item)
	}
	return list, nil
}

func (l *ItemList) Len() int {
	return len(l.items)
}

// Header returns the union of item keys in first-seen order.
func (l *ItemList) Header() []string {
	return append([]string(nil), l.columns...)
}

// Item returns the i-th record.
func (l *ItemList) Item(i int) *Record {
	return l.items[i]
}

// Value returns field key of the i-th item.
func (l *ItemList) Value(i int, key string) (interface{}, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i].Get(key)
}

// Rows returns the items as positional rows matching Header. Missing fields
// are nil.
func (l *ItemList) Rows() [][]interface{} {
	rows := make([][]interface{}, len(l.items))
	for i, item := range l.items {
		row := make([]interface{}, len(l.columns))
		for j, key := range l.columns {
			if v, ok := item.Get(key); ok {
				row[j] = v
			}
		}
		rows[i] = row
	}
	return rows
}

func (l *ItemList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.items)
}
