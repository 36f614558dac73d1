package naver

import (
	"context"
	"fmt"

	"naver-go/pkg/params"
	"naver-go/pkg/table"
)

// TimeUnit is the DataLab aggregation interval.
type TimeUnit string

const (
	Daily   TimeUnit = "date"
	Weekly  TimeUnit = "week"
	Monthly TimeUnit = "month"
)

// KeywordGroup is one named set of search terms, charted as one series.
type KeywordGroup struct {
	GroupName string   `json:"groupName"`
	Keywords  []string `json:"keywords"`
}

// Audience narrows DataLab results. Empty fields are not sent.
type Audience struct {
	Device string
	Gender string
	Ages   []string
}

func (a Audience) apply(p *params.Payload) *params.Payload {
	return p.Optional("device", a.Device).
		Optional("gender", a.Gender).
		Optional("ages", a.Ages)
}

// Period is the date range and interval shared by every DataLab request.
type Period struct {
	StartDate string
	EndDate   string
	TimeUnit  TimeUnit
}

func (pr Period) payload() *params.Payload {
	return params.NewPayload().
		Require("startDate", pr.StartDate).
		Require("endDate", pr.EndDate).
		Require("timeUnit", pr.TimeUnit)
}

// SearchTrendRequest asks for the relative search volume of keyword groups.
type SearchTrendRequest struct {
	Period
	KeywordGroups []KeywordGroup
	Audience
	Extra *params.Options
}

// SearchTrend returns one column per keyword group.
func (c *Client) SearchTrend(ctx context.Context, req SearchTrendRequest) (*table.WideTable, error) {
	payload := req.Period.payload().Require("keywordGroups", req.KeywordGroups)
	req.Audience.apply(payload).Merge(req.Extra)

	return c.multiSeries(ctx, "search trend", "/v1/datalab/search", payload)
}

func (c *Client) multiSeries(ctx context.Context, op, path string, payload *params.Payload) (*table.WideTable, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	body, err := c.post(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	wide, err := table.ParseMultiSeries(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return wide, nil
}

func (c *Client) groupedSeries(ctx context.Context, op, path string, payload *params.Payload) (*table.WideTable, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	body, err := c.post(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	wide, err := table.ParseGroupedSeries(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return wide, nil
}
