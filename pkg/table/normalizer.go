package table

import "naver-go/pkg/logger"

// triple is one flattened (label, period, ratio) observation.
type triple struct {
	label  string
	period string
	ratio  float64
}

// NormalizeMultiSeries pivots title-labelled series into a WideTable.
// Rows follow the first appearance of each period across all series and
// columns the first appearance of each title. An empty input yields an
// empty table holding only the period column. A title equal to
// PeriodColumn is a *ShapeError.
func NormalizeMultiSeries(results []Series) (*WideTable, error) {
	triples := make([]triple, 0, countPoints(results))
	for i, s := range results {
		if s.Title == "" {
			return nil, shapeErrorf(shapeMulti, "results[%d] has no title", i)
		}
		if s.Title == PeriodColumn {
			return nil, shapeErrorf(shapeMulti, "results[%d] title %q collides with the period column", i, s.Title)
		}
		for j, p := range s.Data {
			if p.Period == "" {
				return nil, shapeErrorf(shapeMulti, "results[%d].data[%d] has no period", i, j)
			}
			triples = append(triples, triple{label: s.Title, period: p.Period, ratio: p.Ratio})
		}
	}
	return pivot(shapeMulti, triples), nil
}

// NormalizeGroupedSeries pivots the points of results[0] by their group
// label. Additional top-level series are ignored.
func NormalizeGroupedSeries(results []Series) (*WideTable, error) {
	if len(results) == 0 {
		return NewWideTable(), nil
	}

	s := results[0]
	triples := make([]triple, 0, len(s.Data))
	for j, p := range s.Data {
		group := p.Group
		if group == "" {
			group = s.Group
		}
		if group == "" {
			return nil, shapeErrorf(shapeGrouped, "results[0].data[%d] has no group", j)
		}
		if group == PeriodColumn {
			return nil, shapeErrorf(shapeGrouped, "results[0].data[%d] group %q collides with the period column", j, group)
		}
		if p.Period == "" {
			return nil, shapeErrorf(shapeGrouped, "results[0].data[%d] has no period", j)
		}
		triples = append(triples, triple{label: group, period: p.Period, ratio: p.Ratio})
	}
	return pivot(shapeGrouped, triples), nil
}

func pivot(shape string, triples []triple) *WideTable {
	t := NewWideTable()
	for _, tr := range triples {
		t.addPeriod(tr.period)
		t.addLabel(tr.label)
	}

	t.cells = make([][]*float64, len(t.periods))
	for i := range t.cells {
		t.cells[i] = make([]*float64, len(t.labels))
	}

	duplicates := 0
	for _, tr := range triples {
		row, col := t.rowIndex[tr.period], t.colIndex[tr.label]
		if t.cells[row][col] != nil {
			duplicates++
		}
		ratio := tr.ratio
		t.cells[row][col] = &ratio
	}

	if duplicates > 0 {
		logger.Component("table_normalizer").WithFields(map[string]interface{}{
			"shape":      shape,
			"duplicates": duplicates,
		}).Warn("Duplicate (period, label) observations; keeping the last value")
	}
	return t
}

func countPoints(results []Series) int {
	n := 0
	for _, s := range results {
		n += len(s.Data)
	}
	return n
}
