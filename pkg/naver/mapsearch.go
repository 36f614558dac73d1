package naver

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"
	"golang.org/x/text/unicode/norm"
	"naver-go/pkg/logger"
	"naver-go/pkg/params"
	"naver-go/pkg/table"
	"naver-go/pkg/transport"
)

const mapSearchPath = "/p/api/search/allSearch"

// MapSearchRequest queries the public map search used by map.naver.com.
// Coord is "lng;lat" and biases results toward that point.
type MapSearchRequest struct {
	Query string
	Type  string
	Coord string
	Page  int
	Extra *params.Options
}

// MapSearch calls the unauthenticated map search. No application
// credentials are sent to this host.
func (c *Client) MapSearch(ctx context.Context, req MapSearchRequest) (*table.Document, error) {
	payload := params.NewPayload().
		Require("query", norm.NFC.String(req.Query)).
		Default("type", req.Type, "all").
		Optional("searchCoord", req.Coord).
		Optional("page", req.Page).
		Merge(req.Extra)
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	treq := &transport.Request{
		Method: fasthttp.MethodGet,
		URL:    c.mapBaseURL + mapSearchPath,
		Header: []transport.Header{
			{Key: "Referer", Value: c.mapBaseURL + "/"},
		},
	}
	payload.EachQuery(treq.AddQuery)

	resp, err := c.doer.Do(ctx, treq)
	if err != nil {
		return nil, fmt.Errorf("map search: %w", err)
	}
	if err := resp.CheckStatus(); err != nil {
		c.log.WithFields(map[string]interface{}{
			"url":    logger.MaskURL(treq.URL),
			"status": resp.StatusCode,
		}).Warn("Map search returned non-success status")
		return nil, fmt.Errorf("map search: %w", err)
	}
	doc, err := table.DecodeDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("map search: %w", err)
	}
	return doc, nil
}
