package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// Tabular is anything with a header and positional rows, such as
// *table.WideTable and *table.ItemList. Absent cells are nil.
type Tabular interface {
	Header() []string
	Rows() [][]interface{}
}

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatCSV, FormatXLSX, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// FormatForPath picks a format from a file extension, falling back to def.
func FormatForPath(path string, def Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSON
	case ".txt":
		return FormatTable
	}
	return def
}

// Write renders t to w in the given format.
func Write(w io.Writer, t Tabular, format Format) error {
	switch format {
	case FormatTable:
		_, err := io.WriteString(w, RenderTable(t)+"\n")
		return err
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t, DefaultSheet)
	case FormatJSON:
		return WriteJSON(w, t)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteJSON writes indented JSON. Values that implement json.Marshaler keep
// their own layout, so a WideTable becomes an array of records.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatCell renders one cell as text; nil is the empty string.
func formatCell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Sprint(c)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}
