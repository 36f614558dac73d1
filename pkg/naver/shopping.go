package naver

import (
	"context"

	"naver-go/pkg/params"
	"naver-go/pkg/table"
)

// Breakdown selects the audience dimension of a single-category query.
type Breakdown string

const (
	ByDevice Breakdown = "device"
	ByGender Breakdown = "gender"
	ByAge    Breakdown = "age"
)

// ParseBreakdown validates "device", "gender" or "age".
func ParseBreakdown(s string) (Breakdown, error) {
	switch b := Breakdown(s); b {
	case ByDevice, ByGender, ByAge:
		return b, nil
	}
	return "", &params.InvalidFieldError{Field: "breakdown", Value: s, Err: errUnknownBreakdown}
}

// CategoryParam names a series and lists the category codes or keywords
// that make it up.
type CategoryParam struct {
	Name  string   `json:"name"`
	Param []string `json:"param"`
}

// CategoryTrendRequest compares up to three shopping categories.
type CategoryTrendRequest struct {
	Period
	Category []CategoryParam
	Audience
	Extra *params.Options
}

// CategoryBreakdownRequest splits one shopping category by audience.
type CategoryBreakdownRequest struct {
	Period
	Category string
	Audience
	Extra *params.Options
}

// KeywordTrendRequest compares keywords inside one shopping category.
type KeywordTrendRequest struct {
	Period
	Category string
	Keyword  []CategoryParam
	Audience
	Extra *params.Options
}

// KeywordBreakdownRequest splits one keyword of a category by audience.
type KeywordBreakdownRequest struct {
	Period
	Category string
	Keyword  string
	Audience
	Extra *params.Options
}

// ShoppingCategoryTrend returns one column per category.
func (c *Client) ShoppingCategoryTrend(ctx context.Context, req CategoryTrendRequest) (*table.WideTable, error) {
	payload := req.Period.payload().Require("category", req.Category)
	req.Audience.apply(payload).Merge(req.Extra)

	return c.multiSeries(ctx, "shopping category trend", "/v1/datalab/shopping/categories", payload)
}

// ShoppingCategoryBreakdown returns one column per device, gender or age group.
func (c *Client) ShoppingCategoryBreakdown(ctx context.Context, by Breakdown, req CategoryBreakdownRequest) (*table.WideTable, error) {
	if _, err := ParseBreakdown(string(by)); err != nil {
		return nil, err
	}
	payload := req.Period.payload().Require("category", req.Category)
	req.Audience.apply(payload).Merge(req.Extra)

	return c.groupedSeries(ctx, "shopping category by "+string(by), "/v1/datalab/shopping/category/"+string(by), payload)
}

func (c *Client) ShoppingCategoryByDevice(ctx context.Context, req CategoryBreakdownRequest) (*table.WideTable, error) {
	return c.ShoppingCategoryBreakdown(ctx, ByDevice, req)
}

func (c *Client) ShoppingCategoryByGender(ctx context.Context, req CategoryBreakdownRequest) (*table.WideTable, error) {
	return c.ShoppingCategoryBreakdown(ctx, ByGender, req)
}

func (c *Client) ShoppingCategoryByAge(ctx context.Context, req CategoryBreakdownRequest) (*table.WideTable, error) {
	return c.ShoppingCategoryBreakdown(ctx, ByAge, req)
}

// ShoppingKeywordTrend returns one column per keyword series.
func (c *Client) ShoppingKeywordTrend(ctx context.Context, req KeywordTrendRequest) (*table.WideTable, error) {
	payload := req.Period.payload().
		Require("category", req.Category).
		Require("keyword", req.Keyword)
	req.Audience.apply(payload).Merge(req.Extra)

	return c.multiSeries(ctx, "shopping keyword trend", "/v1/datalab/shopping/category/keywords", payload)
}

// ShoppingKeywordBreakdown returns one column per device, gender or age group.
func (c *Client) ShoppingKeywordBreakdown(ctx context.Context, by Breakdown, req KeywordBreakdownRequest) (*table.WideTable, error) {
	if _, err := ParseBreakdown(string(by)); err != nil {
		return nil, err
	}
	payload := req.Period.payload().
		Require("category", req.Category).
		Require("keyword", req.Keyword)
	req.Audience.apply(payload).Merge(req.Extra)

	return c.groupedSeries(ctx, "shopping keyword by "+string(by), "/v1/datalab/shopping/category/keyword/"+string(by), payload)
}

func (c *Client) ShoppingKeywordByDevice(ctx context.Context, req KeywordBreakdownRequest) (*table.WideTable, error) {
	return c.ShoppingKeywordBreakdown(ctx, ByDevice, req)
}

func (c *Client) ShoppingKeywordByGender(ctx context.Context, req KeywordBreakdownRequest) (*table.WideTable, error) {
	return c.ShoppingKeywordBreakdown(ctx, ByGender, req)
}

func (c *Client) ShoppingKeywordByAge(ctx context.Context, req KeywordBreakdownRequest) (*table.WideTable, error) {
	return c.ShoppingKeywordBreakdown(ctx, ByAge, req)
}
