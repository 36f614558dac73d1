package service

import (
	"context"

	"naver-go/pkg/naver"
	"naver-go/pkg/ncloud"
	"naver-go/pkg/table"
)

// ConsumerAPI is the part of the Open API client the gateway exposes.
type ConsumerAPI interface {
	Search(ctx context.Context, kind naver.SearchKind, req naver.SearchRequest) (*table.ItemList, error)
	SearchTrend(ctx context.Context, req naver.SearchTrendRequest) (*table.WideTable, error)
	ShoppingCategoryTrend(ctx context.Context, req naver.CategoryTrendRequest) (*table.WideTable, error)
	ShoppingCategoryBreakdown(ctx context.Context, by naver.Breakdown, req naver.CategoryBreakdownRequest) (*table.WideTable, error)
	ShoppingKeywordTrend(ctx context.Context, req naver.KeywordTrendRequest) (*table.WideTable, error)
	ShoppingKeywordBreakdown(ctx context.Context, by naver.Breakdown, req naver.KeywordBreakdownRequest) (*table.WideTable, error)
}

// CloudAPI is the part of the cloud gateway client the gateway exposes.
type CloudAPI interface {
	Geocode(ctx context.Context, req ncloud.GeocodeRequest) (*table.Document, error)
	Translate(ctx context.Context, req ncloud.TranslateRequest) (*table.Document, error)
}

var (
	_ ConsumerAPI = (*naver.Client)(nil)
	_ CloudAPI    = (*ncloud.Client)(nil)
)
