package handler

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"naver-go/internal/service"
	"naver-go/pkg/logger"
	"naver-go/pkg/naver"
	"naver-go/pkg/ncloud"
	"naver-go/pkg/params"
	"naver-go/pkg/transport"
)

// Controller exposes the Naver clients over HTTP. Either API may be nil when
// its credentials are not configured; its routes then answer 503.
type Controller struct {
	consumer service.ConsumerAPI
	cloud    service.CloudAPI
	started  time.Time
	log      *logger.Logger
}

type StatusResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Uptime    string          `json:"uptime"`
	APIs      map[string]bool `json:"apis"`
}

func NewController(consumer service.ConsumerAPI, cloud service.CloudAPI) *Controller {
	return &Controller{
		consumer: consumer,
		cloud:    cloud,
		started:  time.Now(),
		log:      logger.Component("gateway"),
	}
}

func (h *Controller) Register(app fiber.Router) {
	app.Get("/healthz", h.Health)

	v1 := app.Group("/v1")
	v1.Get("/search/:kind", h.Search)
	v1.Post("/datalab/search", h.SearchTrend)
	v1.Post("/datalab/shopping/*", h.Shopping)
	v1.Get("/geocode", h.Geocode)
	v1.Post("/translate", h.Translate)
}

func (h *Controller) Health(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		APIs: map[string]bool{
			"consumer": h.consumer != nil,
			"cloud":    h.cloud != nil,
		},
	})
}

// Search forwards query, display, start and sort; every other query
// parameter is passed through as an extra.
func (h *Controller) Search(c *fiber.Ctx) error {
	if h.consumer == nil {
		return notConfigured(c, "consumer")
	}
	kind, err := naver.ParseSearchKind(c.Params("kind"))
	if err != nil {
		return h.fail(c, err)
	}

	req := naver.SearchRequest{
		Query:   c.Query("query"),
		Display: c.QueryInt("display"),
		Start:   c.QueryInt("start"),
		Sort:    c.Query("sort"),
		Extra:   queryExtras(c, "query", "display", "start", "sort"),
	}

	items, err := h.consumer.Search(c.UserContext(), kind, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"lastBuildDate": items.LastBuildDate,
		"total":         items.Total,
		"start":         items.Start,
		"display":       items.Display,
		"items":         items,
	})
}

type periodBody struct {
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	TimeUnit  naver.TimeUnit `json:"timeUnit"`
	Device    string         `json:"device"`
	Gender    string         `json:"gender"`
	Ages      []string       `json:"ages"`
}

var periodKeys = []string{"startDate", "endDate", "timeUnit", "device", "gender", "ages"}

func (b periodBody) period() naver.Period {
	return naver.Period{StartDate: b.StartDate, EndDate: b.EndDate, TimeUnit: b.TimeUnit}
}

func (b periodBody) audience() naver.Audience {
	return naver.Audience{Device: b.Device, Gender: b.Gender, Ages: b.Ages}
}

func (h *Controller) SearchTrend(c *fiber.Ctx) error {
	if h.consumer == nil {
		return notConfigured(c, "consumer")
	}

	var body struct {
		periodBody
		KeywordGroups []naver.KeywordGroup `json:"keywordGroups"`
	}
	extra, err := decodeBody(c.Body(), &body, append(periodKeys, "keywordGroups")...)
	if err != nil {
		return badRequest(c, err)
	}

	wide, err := h.consumer.SearchTrend(c.UserContext(), naver.SearchTrendRequest{
		Period:        body.period(),
		KeywordGroups: body.KeywordGroups,
		Audience:      body.audience(),
		Extra:         extra,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(wide)
}

// Shopping mirrors the upstream DataLab shopping paths, e.g.
// /v1/datalab/shopping/category/keyword/age.
func (h *Controller) Shopping(c *fiber.Ctx) error {
	if h.consumer == nil {
		return notConfigured(c, "consumer")
	}

	var body struct {
		periodBody
		Category json.RawMessage `json:"category"`
		Keyword  json.RawMessage `json:"keyword"`
	}
	extra, err := decodeBody(c.Body(), &body, append(periodKeys, "category", "keyword")...)
	if err != nil {
		return badRequest(c, err)
	}

	ctx := c.UserContext()
	endpoint := strings.Trim(c.Params("*"), "/")
	api := h.consumer

	switch {
	case endpoint == "categories":
		var category []naver.CategoryParam
		if err := decodeOptional(body.Category, &category); err != nil {
			return badRequest(c, err)
		}
		wide, err := api.ShoppingCategoryTrend(ctx, naver.CategoryTrendRequest{
			Period: body.period(), Category: category, Audience: body.audience(), Extra: extra,
		})
		return h.respond(c, wide, err)

	case endpoint == "category/keywords":
		var category string
		var keyword []naver.CategoryParam
		if err := decodeOptional(body.Category, &category); err != nil {
			return badRequest(c, err)
		}
		if err := decodeOptional(body.Keyword, &keyword); err != nil {
			return badRequest(c, err)
		}
		wide, err := api.ShoppingKeywordTrend(ctx, naver.KeywordTrendRequest{
			Period: body.period(), Category: category, Keyword: keyword, Audience: body.audience(), Extra: extra,
		})
		return h.respond(c, wide, err)

	case strings.HasPrefix(endpoint, "category/keyword/"):
		by, err := naver.ParseBreakdown(strings.TrimPrefix(endpoint, "category/keyword/"))
		if err != nil {
			return h.fail(c, err)
		}
		var category, keyword string
		if err := decodeOptional(body.Category, &category); err != nil {
			return badRequest(c, err)
		}
		if err := decodeOptional(body.Keyword, &keyword); err != nil {
			return badRequest(c, err)
		}
		wide, err := api.ShoppingKeywordBreakdown(ctx, by, naver.KeywordBreakdownRequest{
			Period: body.period(), Category: category, Keyword: keyword, Audience: body.audience(), Extra: extra,
		})
		return h.respond(c, wide, err)

	case strings.HasPrefix(endpoint, "category/"):
		by, err := naver.ParseBreakdown(strings.TrimPrefix(endpoint, "category/"))
		if err != nil {
			return h.fail(c, err)
		}
		var category string
		if err := decodeOptional(body.Category, &category); err != nil {
			return badRequest(c, err)
		}
		wide, err := api.ShoppingCategoryBreakdown(ctx, by, naver.CategoryBreakdownRequest{
			Period: body.period(), Category: category, Audience: body.audience(), Extra: extra,
		})
		return h.respond(c, wide, err)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown shopping endpoint: " + endpoint})
}

func (h *Controller) Geocode(c *fiber.Ctx) error {
	if h.cloud == nil {
		return notConfigured(c, "cloud")
	}

	doc, err := h.cloud.Geocode(c.UserContext(), ncloud.GeocodeRequest{
		Query:      c.Query("query"),
		Coordinate: c.Query("coordinate"),
		Filter:     c.Query("filter"),
		Language:   c.Query("language"),
		Page:       c.QueryInt("page"),
		Count:      c.QueryInt("count"),
		Extra:      queryExtras(c, "query", "coordinate", "filter", "language", "page", "count"),
	})
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(doc.Raw())
}

func (h *Controller) Translate(c *fiber.Ctx) error {
	if h.cloud == nil {
		return notConfigured(c, "cloud")
	}

	var body struct {
		Source      string `json:"source"`
		Target      string `json:"target"`
		Text        string `json:"text"`
		Honorific   bool   `json:"honorific"`
		GlossaryKey string `json:"glossaryKey"`
	}
	extra, err := decodeBody(c.Body(), &body, "source", "target", "text", "honorific", "glossaryKey")
	if err != nil {
		return badRequest(c, err)
	}

	doc, err := h.cloud.Translate(c.UserContext(), ncloud.TranslateRequest{
		Source:      body.Source,
		Target:      body.Target,
		Text:        body.Text,
		Honorific:   body.Honorific,
		GlossaryKey: body.GlossaryKey,
		Extra:       extra,
	})
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(doc.Raw())
}

func (h *Controller) respond(c *fiber.Ctx, v interface{}, err error) error {
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(v)
}

// fail maps a client error to a gateway response. Upstream status errors are
// relayed with their own status and body.
func (h *Controller) fail(c *fiber.Ctx, err error) error {
	kind := transport.Classify(err)
	status := fiber.StatusInternalServerError

	switch kind {
	case transport.KindInvalidRequest:
		status = fiber.StatusBadRequest
	case transport.KindUpstreamStatus:
		var statusErr *transport.StatusError
		errors.As(err, &statusErr)
		h.log.WithFields(map[string]interface{}{
			"path":       c.Path(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
			"status":     statusErr.StatusCode,
			"code":       statusErr.Code(),
		}).Warn("Relaying upstream error")
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Status(statusErr.StatusCode).Send(statusErr.Body)
	case transport.KindShape, transport.KindTransport:
		status = fiber.StatusBadGateway
	case transport.KindTimeout:
		status = fiber.StatusGatewayTimeout
	case transport.KindCanceled:
		status = fiber.StatusServiceUnavailable
	}

	h.log.WithError(err).WithFields(map[string]interface{}{
		"path":       c.Path(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		"kind":       kind.String(),
		"status":     status,
	}).Warn("Request failed")
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "kind": kind.String()})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "kind": transport.KindInvalidRequest.String()})
}

func notConfigured(c *fiber.Ctx, family string) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": family + " API credentials are not configured"})
}

// decodeBody fills v from a JSON object and returns the unknown keys as
// extras, in document order.
func decodeBody(data []byte, v interface{}, known ...string) (*params.Options, error) {
	if len(data) == 0 {
		return nil, errors.New("request body is required")
	}
	_, extra, err := params.SplitJSON(data, known...)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return extra, nil
}

func decodeOptional(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func queryExtras(c *fiber.Ctx, known ...string) *params.Options {
	skip := make(map[string]bool, len(known))
	for _, k := range known {
		skip[k] = true
	}

	extra := params.NewOptions()
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		if k := string(key); !skip[k] {
			extra.Set(k, string(value))
		}
	})
	return extra
}
