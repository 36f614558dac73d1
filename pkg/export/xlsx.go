package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const DefaultSheet = "naver"

// WriteXLSX writes t as a single-sheet workbook. Numbers stay numeric and
// absent cells are left blank.
func WriteXLSX(w io.Writer, t Tabular, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := t.Header()
	for col, h := range header {
		if err := setCell(f, sheet, col+1, 1, h); err != nil {
			return err
		}
	}
	if len(header) > 0 {
		if err := boldRow(f, sheet, len(header)); err != nil {
			return err
		}
	}

	for i, r := range t.Rows() {
		for col, v := range r {
			if v == nil {
				continue
			}
			if m, ok := v.(map[string]interface{}); ok {
				v = formatCell(m)
			} else if s, ok := v.([]interface{}); ok {
				v = formatCell(s)
			}
			if err := setCell(f, sheet, col+1, i+2, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func setCell(f *excelize.File, sheet string, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, v)
}

func boldRow(f *excelize.File, sheet string, width int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
