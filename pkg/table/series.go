package table

import (
	"encoding/json"
)

const (
	shapeMulti   = "multi-series"
	shapeGrouped = "grouped-series"
)

// Point is one observation of a trend series.
type Point struct {
	Period string  `json:"period"`
	Ratio  float64 `json:"ratio"`
	Group  string  `json:"group,omitempty"`
}

// Series is one keyword, category or breakdown trend as returned by DataLab.
type Series struct {
	Title    string   `json:"title,omitempty"`
	Group    string   `json:"group,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Category []string `json:"category,omitempty"`
	Keyword  []string `json:"keyword,omitempty"`
	Data     []Point  `json:"data"`
}

type rawPoint struct {
	Period *string  `json:"period"`
	Ratio  *float64 `json:"ratio"`
	Group  *string  `json:"group"`
}

type rawSeries struct {
	Title    *string    `json:"title"`
	Group    *string    `json:"group"`
	Keywords []string   `json:"keywords"`
	Category []string   `json:"category"`
	Keyword  []string   `json:"keyword"`
	Data     []rawPoint `json:"data"`
}

type rawEnvelope struct {
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	TimeUnit  string       `json:"timeUnit"`
	Results   *[]rawSeries `json:"results"`
}

// DecodeMultiSeries parses a DataLab body whose results are labelled by title.
func DecodeMultiSeries(body []byte) ([]Series, error) {
	raw, err := decodeEnvelope(shapeMulti, body)
	if err != nil {
		return nil, err
	}

	series := make([]Series, 0, len(raw))
	for i, rs := range raw {
		if rs.Title == nil {
			return nil, shapeErrorf(shapeMulti, "results[%d] has no title", i)
		}
		s, err := convertSeries(shapeMulti, i, rs, "")
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, nil
}

// DecodeGroupedSeries parses a DataLab breakdown body. Only results[0] is
// read; each point takes its group from the point itself or, failing that,
// from the series.
func DecodeGroupedSeries(body []byte) ([]Series, error) {
	raw, err := decodeEnvelope(shapeGrouped, body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []Series{}, nil
	}

	rs := raw[0]
	fallback := ""
	if rs.Group != nil {
		fallback = *rs.Group
	}
	s, err := convertSeries(shapeGrouped, 0, rs, fallback)
	if err != nil {
		return nil, err
	}
	for j, p := range s.Data {
		if p.Group == "" {
			return nil, shapeErrorf(shapeGrouped, "results[0].data[%d] has no group", j)
		}
	}
	return []Series{s}, nil
}

func decodeEnvelope(shape string, body []byte) ([]rawSeries, error) {
	if len(body) == 0 {
		return nil, shapeErrorf(shape, "empty body")
	}

	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ShapeError{Shape: shape, Reason: "invalid JSON", Err: err}
	}
	if env.Results == nil {
		return nil, shapeErrorf(shape, "missing results")
	}
	return *env.Results, nil
}

func convertSeries(shape string, index int, rs rawSeries, groupFallback string) (Series, error) {
	s := Series{
		Keywords: rs.Keywords,
		Category: rs.Category,
		Keyword:  rs.Keyword,
		Data:     make([]Point, 0, len(rs.Data)),
	}
	if rs.Title != nil {
		s.Title = *rs.Title
	}
	if rs.Group != nil {
		s.Group = *rs.Group
	}

	for j, rp := range rs.Data {
		if rp.Period == nil {
			return Series{}, shapeErrorf(shape, "results[%d].data[%d] has no period", index, j)
		}
		if rp.Ratio == nil {
			return Series{}, shapeErrorf(shape, "results[%d].data[%d] has no ratio", index, j)
		}
		p := Point{Period: *rp.Period, Ratio: *rp.Ratio, Group: groupFallback}
		if rp.Group != nil {
			p.Group = *rp.Group
		}
		s.Data = append(s.Data, p)
	}
	return s, nil
}

// ParseMultiSeries decodes and pivots a multi-series body in one step.
func ParseMultiSeries(body []byte) (*WideTable, error) {
	series, err := DecodeMultiSeries(body)
	if err != nil {
		return nil, err
	}
	return NormalizeMultiSeries(series)
}

// ParseGroupedSeries decodes and pivots a grouped breakdown body in one step.
func ParseGroupedSeries(body []byte) (*WideTable, error) {
	series, err := DecodeGroupedSeries(body)
	if err != nil {
		return nil, err
	}
	return NormalizeGroupedSeries(series)
}
