package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"naver-go/pkg/naver"
	"naver-go/pkg/ncloud"
	"naver-go/pkg/params"
	"naver-go/pkg/table"
	"naver-go/pkg/transport"
)

type fakeConsumer struct {
	err error

	searchKind naver.SearchKind
	searchReq  naver.SearchRequest
	trendReq   naver.SearchTrendRequest
	breakdown  naver.Breakdown
	catTrend   naver.CategoryTrendRequest
	catBreak   naver.CategoryBreakdownRequest
	kwTrend    naver.KeywordTrendRequest
	kwBreak    naver.KeywordBreakdownRequest
	called     string
}

func wideFixture() *table.WideTable {
	wide, _ := table.NormalizeMultiSeries([]table.Series{
		{Title: "coffee", Data: []table.Point{{Period: "2023-01-01", Ratio: 10}}},
	})
	return wide
}

func (f *fakeConsumer) Search(ctx context.Context, kind naver.SearchKind, req naver.SearchRequest) (*table.ItemList, error) {
	f.called, f.searchKind, f.searchReq = "search", kind, req
	if f.err != nil {
		return nil, f.err
	}
	return table.DecodeItemList([]byte(`{"total":1,"start":1,"display":1,"items":[{"title":"t"}]}`))
}

func (f *fakeConsumer) SearchTrend(ctx context.Context, req naver.SearchTrendRequest) (*table.WideTable, error) {
	f.called, f.trendReq = "trend", req
	if f.err != nil {
		return nil, f.err
	}
	return wideFixture(), nil
}

func (f *fakeConsumer) ShoppingCategoryTrend(ctx context.Context, req naver.CategoryTrendRequest) (*table.WideTable, error) {
	f.called, f.catTrend = "category trend", req
	return wideFixture(), f.err
}

func (f *fakeConsumer) ShoppingCategoryBreakdown(ctx context.Context, by naver.Breakdown, req naver.CategoryBreakdownRequest) (*table.WideTable, error) {
	f.called, f.breakdown, f.catBreak = "category breakdown", by, req
	return wideFixture(), f.err
}

func (f *fakeConsumer) ShoppingKeywordTrend(ctx context.Context, req naver.KeywordTrendRequest) (*table.WideTable, error) {
	f.called, f.kwTrend = "keyword trend", req
	return wideFixture(), f.err
}

func (f *fakeConsumer) ShoppingKeywordBreakdown(ctx context.Context, by naver.Breakdown, req naver.KeywordBreakdownRequest) (*table.WideTable, error) {
	f.called, f.breakdown, f.kwBreak = "keyword breakdown", by, req
	return wideFixture(), f.err
}

type fakeCloud struct {
	err          error
	geocodeReq   ncloud.GeocodeRequest
	translateReq ncloud.TranslateRequest
}

func (f *fakeCloud) Geocode(ctx context.Context, req ncloud.GeocodeRequest) (*table.Document, error) {
	f.geocodeReq = req
	if f.err != nil {
		return nil, f.err
	}
	return table.DecodeDocument([]byte(`{"status":"OK","addresses":[]}`))
}

func (f *fakeCloud) Translate(ctx context.Context, req ncloud.TranslateRequest) (*table.Document, error) {
	f.translateReq = req
	if f.err != nil {
		return nil, f.err
	}
	return table.DecodeDocument([]byte(`{"message":{"result":{"translatedText":"Hello"}}}`))
}

func newApp(consumer *fakeConsumer, cloud *fakeCloud) *fiber.App {
	app := fiber.New()
	var c *Controller
	switch {
	case consumer != nil && cloud != nil:
		c = NewController(consumer, cloud)
	case consumer != nil:
		c = NewController(consumer, nil)
	case cloud != nil:
		c = NewController(nil, cloud)
	default:
		c = NewController(nil, nil)
	}
	c.Register(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(out)
}

func TestController_Health(t *testing.T) {
	app := newApp(&fakeConsumer{}, nil)

	status, body := do(t, app, "GET", "/healthz", "")
	assert.Equal(t, fiber.StatusOK, status)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]bool{"consumer": true, "cloud": false}, resp.APIs)
}

func TestController_Search(t *testing.T) {
	consumer := &fakeConsumer{}
	app := newApp(consumer, nil)

	status, body := do(t, app, "GET", "/v1/search/news?query=%EC%A3%BC%EC%8B%9D&display=5&sort=date&exclude=used", "")
	require.Equal(t, fiber.StatusOK, status, body)

	assert.Equal(t, naver.SearchNews, consumer.searchKind)
	assert.Equal(t, "주식", consumer.searchReq.Query)
	assert.Equal(t, 5, consumer.searchReq.Display)
	assert.Equal(t, "date", consumer.searchReq.Sort)
	v, ok := consumer.searchReq.Extra.Get("exclude")
	require.True(t, ok)
	assert.Equal(t, "used", v)
	assert.Equal(t, 1, consumer.searchReq.Extra.Len())

	assert.JSONEq(t, `{"lastBuildDate":"","total":1,"start":1,"display":1,"items":[{"title":"t"}]}`, body)
}

func TestController_Search_UnknownKind(t *testing.T) {
	status, _ := do(t, newApp(&fakeConsumer{}, nil), "GET", "/v1/search/video?query=x", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestController_SearchTrend(t *testing.T) {
	consumer := &fakeConsumer{}
	app := newApp(consumer, nil)

	status, body := do(t, app, "POST", "/v1/datalab/search", `{
		"startDate": "2023-01-01", "endDate": "2023-01-31", "timeUnit": "week",
		"keywordGroups": [{"groupName": "coffee", "keywords": ["커피"]}],
		"device": "mo", "ages": ["1"], "custom": 1
	}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, `[{"날짜":"2023-01-01","coffee":10}]`, body)

	req := consumer.trendReq
	assert.Equal(t, naver.Weekly, req.TimeUnit)
	assert.Equal(t, []naver.KeywordGroup{{GroupName: "coffee", Keywords: []string{"커피"}}}, req.KeywordGroups)
	assert.Equal(t, "mo", req.Device)
	assert.Equal(t, []string{"1"}, req.Ages)
	assert.Equal(t, 1, req.Extra.Len())
}

func TestController_SearchTrend_BadBody(t *testing.T) {
	status, _ := do(t, newApp(&fakeConsumer{}, nil), "POST", "/v1/datalab/search", `{"startDate": `)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, newApp(&fakeConsumer{}, nil), "POST", "/v1/datalab/search", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestController_Shopping(t *testing.T) {
	tests := []struct {
		path   string
		body   string
		called string
		check  func(t *testing.T, f *fakeConsumer)
	}{
		{
			"/v1/datalab/shopping/categories",
			`{"category":[{"name":"패션의류","param":["50000000"]}]}`,
			"category trend",
			func(t *testing.T, f *fakeConsumer) {
				assert.Equal(t, []naver.CategoryParam{{Name: "패션의류", Param: []string{"50000000"}}}, f.catTrend.Category)
			},
		},
		{
			"/v1/datalab/shopping/category/gender",
			`{"category":"50000000"}`,
			"category breakdown",
			func(t *testing.T, f *fakeConsumer) {
				assert.Equal(t, naver.ByGender, f.breakdown)
				assert.Equal(t, "50000000", f.catBreak.Category)
			},
		},
		{
			"/v1/datalab/shopping/category/keywords",
			`{"category":"50000000","keyword":[{"name":"정장","param":["정장"]}]}`,
			"keyword trend",
			func(t *testing.T, f *fakeConsumer) {
				assert.Equal(t, "50000000", f.kwTrend.Category)
				assert.Len(t, f.kwTrend.Keyword, 1)
			},
		},
		{
			"/v1/datalab/shopping/category/keyword/age",
			`{"category":"50000000","keyword":"정장"}`,
			"keyword breakdown",
			func(t *testing.T, f *fakeConsumer) {
				assert.Equal(t, naver.ByAge, f.breakdown)
				assert.Equal(t, "정장", f.kwBreak.Keyword)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			consumer := &fakeConsumer{}
			status, body := do(t, newApp(consumer, nil), "POST", tt.path, tt.body)
			require.Equal(t, fiber.StatusOK, status, body)
			assert.Equal(t, tt.called, consumer.called)
			tt.check(t, consumer)
		})
	}
}

func TestController_Shopping_UnknownEndpoint(t *testing.T) {
	status, _ := do(t, newApp(&fakeConsumer{}, nil), "POST", "/v1/datalab/shopping/brands", `{}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, newApp(&fakeConsumer{}, nil), "POST", "/v1/datalab/shopping/category/region", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestController_Geocode(t *testing.T) {
	cloud := &fakeCloud{}
	status, body := do(t, newApp(nil, cloud), "GET", "/v1/geocode?query=%EB%B6%88%EC%A0%95%EB%A1%9C&count=3", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, `{"status":"OK","addresses":[]}`, body)
	assert.Equal(t, "불정로", cloud.geocodeReq.Query)
	assert.Equal(t, 3, cloud.geocodeReq.Count)
}

func TestController_Translate(t *testing.T) {
	cloud := &fakeCloud{}
	status, body := do(t, newApp(nil, cloud), "POST", "/v1/translate", `{"source":"ko","target":"en","text":"안녕","honorific":true}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "Hello")
	assert.Equal(t, ncloud.TranslateRequest{Source: "ko", Target: "en", Text: "안녕", Honorific: true, Extra: cloud.translateReq.Extra}, cloud.translateReq)
}

func TestController_NotConfigured(t *testing.T) {
	app := newApp(nil, nil)

	status, _ := do(t, app, "GET", "/v1/search/news?query=x", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	status, _ = do(t, app, "GET", "/v1/geocode?query=x", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestController_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			"upstream status relayed",
			&transport.StatusError{StatusCode: 401, Body: []byte(`{"errorMessage":"Authentication failed","errorCode":"024"}`)},
			401,
			`{"errorMessage":"Authentication failed","errorCode":"024"}`,
		},
		{"missing field", &params.MissingFieldError{Field: "query"}, 400, ""},
		{"shape", &table.ShapeError{Shape: "item-list", Reason: "missing items"}, 502, ""},
		{"timeout", &transport.TransportError{Err: context.DeadlineExceeded}, 504, ""},
		{"connection", &transport.TransportError{Err: errors.New("connection refused")}, 502, ""},
		{"unknown", errors.New("boom"), 500, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, newApp(&fakeConsumer{err: tt.err}, nil), "GET", "/v1/search/news?query=x", "")
			assert.Equal(t, tt.status, status)
			if tt.body != "" {
				assert.Equal(t, tt.body, body)
			}
		})
	}
}
