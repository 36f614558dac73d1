package ncloud

import (
	"context"
	"encoding/json"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"naver-go/pkg/params"
	"naver-go/pkg/transport"
)

type stubDoer struct {
	last   *transport.Request
	calls  int
	status int
	body   string
}

func (d *stubDoer) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	d.last = req
	d.calls++
	status := d.status
	if status == 0 {
		status = fasthttp.StatusOK
	}
	return &transport.Response{Method: req.Method, URL: req.URL, StatusCode: status, Body: []byte(d.body)}, nil
}

func (d *stubDoer) query() url.Values {
	v := url.Values{}
	for _, q := range d.last.Query {
		v.Add(q.Key, q.Value)
	}
	return v
}

func (d *stubDoer) header(key string) string {
	for _, h := range d.last.Header {
		if h.Key == key {
			return h.Value
		}
	}
	return ""
}

func newStubClient(t *testing.T, doer *stubDoer) *Client {
	t.Helper()
	c, err := NewClient(Credentials{KeyID: "key-id", Key: "key"}, doer, WithBaseURL("http://gw.test"))
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Credentials{KeyID: "id"}, &stubDoer{})
	assert.Error(t, err)
}

func TestClient_Geocode(t *testing.T) {
	doer := &stubDoer{body: `{"status":"OK","meta":{"totalCount":1},"addresses":[{"roadAddress":"경기도 성남시 분당구 불정로 6","x":"127.10","y":"37.35"}]}`}
	c := newStubClient(t, doer)

	doc, err := c.Geocode(context.Background(), GeocodeRequest{Query: "분당구 불정로 6", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "meta", "addresses"}, doc.Keys())

	assert.Equal(t, "GET", doer.last.Method)
	assert.Equal(t, "http://gw.test/map-geocode/v2/geocode", doer.last.URL)
	assert.Equal(t, "분당구 불정로 6", doer.query().Get("query"))
	assert.Equal(t, "1", doer.query().Get("count"))
	assert.Equal(t, "key-id", doer.header(HeaderKeyID))
	assert.Equal(t, "key", doer.header(HeaderKey))
	assert.Empty(t, doer.header("Content-Type"), "GET requests carry no content type")
}

func TestClient_ReverseGeocode(t *testing.T) {
	doer := &stubDoer{body: `{"status":{"code":0},"results":[]}`}
	c := newStubClient(t, doer)

	_, err := c.ReverseGeocode(context.Background(), ReverseGeocodeRequest{
		Coords: "129.1133567,35.2982640",
		Orders: []string{"legalcode", "roadaddr"},
	})
	require.NoError(t, err)

	q := doer.query()
	assert.Equal(t, "http://gw.test/map-reversegeocode/v2/gc", doer.last.URL)
	assert.Equal(t, "129.1133567,35.2982640", q.Get("coords"))
	assert.Equal(t, "legalcode,roadaddr", q.Get("orders"))
	assert.Equal(t, "json", q.Get("output"))
}

func TestClient_ReverseGeocode_ExtraOverridesOutput(t *testing.T) {
	doer := &stubDoer{body: `<response/>`}
	c := newStubClient(t, doer)

	_, err := c.ReverseGeocode(context.Background(), ReverseGeocodeRequest{
		Coords: "127,37",
		Extra:  params.NewOptions().Set("output", "xml").Set("coords", "0,0"),
	})
	// The body is not JSON, so decoding fails after the request went out.
	require.Error(t, err)

	q := doer.query()
	assert.Equal(t, []string{"xml"}, q["output"])
	assert.Equal(t, "127,37", q.Get("coords"), "required fields stay put")
}

func TestClient_Summarize_ExtraReplacesOption(t *testing.T) {
	doer := &stubDoer{body: `{"summary":"요약"}`}
	c := newStubClient(t, doer)

	_, err := c.Summarize(context.Background(), SummaryRequest{
		Content: "본문",
		Extra:   params.NewOptions().Set("option", map[string]interface{}{"language": "ja"}),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"document":{"content":"본문"},"option":{"language":"ja"}}`, string(doer.last.Body))
}

func TestClient_Driving(t *testing.T) {
	doer := &stubDoer{body: `{"code":0,"message":"길찾기를 성공하였습니다.","route":{}}`}
	c := newStubClient(t, doer)

	req := DrivingRequest{
		Start:     "127.1058342,37.359708",
		Goal:      "129.075986,35.179470",
		Waypoints: []string{"127.12,37.36", "128.0,36.0"},
		Option:    "trafast",
	}

	_, err := c.Driving(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "http://gw.test/map-direction/v1/driving", doer.last.URL)
	assert.Equal(t, "127.12,37.36|128.0,36.0", doer.query().Get("waypoints"))
	assert.Equal(t, "trafast", doer.query().Get("option"))
	assert.False(t, doer.query().Has("cartype"))

	_, err = c.Driving15(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "http://gw.test/map-direction-15/v1/driving", doer.last.URL)
}

func TestClient_Driving_MissingGoal(t *testing.T) {
	doer := &stubDoer{}
	c := newStubClient(t, doer)

	_, err := c.Driving(context.Background(), DrivingRequest{Start: "127,37"})
	var missing *params.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "goal", missing.Field)
	assert.Zero(t, doer.calls)
}

func TestClient_Translate(t *testing.T) {
	doer := &stubDoer{body: `{"message":{"result":{"srcLangType":"ko","tarLangType":"en","translatedText":"Hello"}}}`}
	c := newStubClient(t, doer)

	doc, err := c.Translate(context.Background(), TranslateRequest{Source: "ko", Target: "en", Text: "안녕하세요"})
	require.NoError(t, err)

	var out struct {
		Message struct {
			Result struct {
				TranslatedText string `json:"translatedText"`
			} `json:"result"`
		} `json:"message"`
	}
	require.NoError(t, doc.Decode(&out))
	assert.Equal(t, "Hello", out.Message.Result.TranslatedText)

	assert.Equal(t, "POST", doer.last.Method)
	assert.Equal(t, "http://gw.test/nmt/v1/translation", doer.last.URL)
	assert.Equal(t, "application/json", doer.header("Content-Type"))
	assert.Equal(t, `{"source":"ko","target":"en","text":"안녕하세요"}`, string(doer.last.Body))
}

func TestClient_Translate_InvalidLanguage(t *testing.T) {
	tests := []struct {
		name  string
		req   TranslateRequest
		field string
	}{
		{"bad source", TranslateRequest{Source: "not a tag", Target: "en", Text: "x"}, "source"},
		{"bad target", TranslateRequest{Source: "ko", Target: "!!", Text: "x"}, "target"},
		{"auto target", TranslateRequest{Source: "ko", Target: AutoDetect, Text: "x"}, "target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &stubDoer{}
			c := newStubClient(t, doer)

			_, err := c.Translate(context.Background(), tt.req)
			var invalid *params.InvalidFieldError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Zero(t, doer.calls)
		})
	}
}

func TestClient_Translate_AutoSource(t *testing.T) {
	doer := &stubDoer{body: `{"message":{}}`}
	c := newStubClient(t, doer)

	_, err := c.Translate(context.Background(), TranslateRequest{Source: AutoDetect, Target: "zh-CN", Text: "hello", Honorific: true})
	require.NoError(t, err)
	assert.Equal(t, `{"source":"auto","target":"zh-CN","text":"hello","honorific":true}`, string(doer.last.Body))
}

func TestClient_DetectLanguage(t *testing.T) {
	doer := &stubDoer{body: `{"langCode":"ko"}`}
	c := newStubClient(t, doer)

	doc, err := c.DetectLanguage(context.Background(), "만나서 반갑습니다.")
	require.NoError(t, err)
	v, _ := doc.Get("langCode")
	assert.Equal(t, "ko", v)
	assert.Equal(t, "http://gw.test/langs/v1/dect", doer.last.URL)
	assert.Equal(t, `{"query":"만나서 반갑습니다."}`, string(doer.last.Body))
}

func TestClient_Summarize(t *testing.T) {
	doer := &stubDoer{body: `{"summary":"요약"}`}
	c := newStubClient(t, doer)

	_, err := c.Summarize(context.Background(), SummaryRequest{Title: "제목", Content: "본문", SummaryCount: 2})
	require.NoError(t, err)

	assert.Equal(t, "http://gw.test/text-summary/v1/summarize", doer.last.URL)
	assert.Equal(t,
		`{"document":{"title":"제목","content":"본문"},"option":{"language":"ko","model":"general","summaryCount":2}}`,
		string(doer.last.Body))

	_, err = c.Summarize(context.Background(), SummaryRequest{Title: "제목"})
	var missing *params.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "document.content", missing.Field)
}

func TestClient_GatewayStatusError(t *testing.T) {
	doer := &stubDoer{status: 401, body: `{"error":{"errorCode":"200","message":"Authentication Failed","details":"Invalid authentication information."}}`}
	c := newStubClient(t, doer)

	_, err := c.Geocode(context.Background(), GeocodeRequest{Query: "x"})
	var statusErr *transport.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 401, statusErr.StatusCode)
	assert.Equal(t, "200", statusErr.Code())
	assert.Equal(t, transport.KindUpstreamStatus, transport.Classify(err))
}

func TestClient_OverInmemoryServer(t *testing.T) {
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Request.Header.Peek(HeaderKeyID)) != "key-id" {
			ctx.SetStatusCode(fasthttp.StatusUnauthorized)
			return
		}
		var body map[string]string
		if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"langCode":"` + map[string]string{"hello": "en"}[body["query"]] + `"}`)
	}}
	go func() {
		_ = srv.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = ln.Close()
	})

	tr := transport.New(transport.Config{RequestTimeout: 2 * time.Second}, transport.WithDial(func(string) (net.Conn, error) {
		return ln.Dial()
	}))
	c, err := NewClient(Credentials{KeyID: "key-id", Key: "key"}, tr, WithBaseURL("http://gw.test"))
	require.NoError(t, err)

	doc, err := c.DetectLanguage(context.Background(), "hello")
	require.NoError(t, err)
	v, _ := doc.Get("langCode")
	assert.Equal(t, "en", v)
}
