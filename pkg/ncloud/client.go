package ncloud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"
	"naver-go/pkg/logger"
	"naver-go/pkg/params"
	"naver-go/pkg/table"
	"naver-go/pkg/transport"
)

const (
	DefaultBaseURL = "https://naveropenapi.apigw.ntruss.com"

	HeaderKeyID = "X-NCP-APIGW-API-KEY-ID"
	HeaderKey   = "X-NCP-APIGW-API-KEY"
)

// Credentials is an API Gateway key pair from the NAVER Cloud console.
type Credentials struct {
	KeyID string
	Key   string
}

// Client calls the NAVER Cloud Platform AI·NAVER API family (maps, Papago,
// CLOVA Summary). It is safe for concurrent use.
type Client struct {
	doer    transport.Doer
	baseURL string
	headers []transport.Header
	log     *logger.Logger
}

type Option func(*Client)

// WithBaseURL overrides the API Gateway host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func NewClient(creds Credentials, doer transport.Doer, opts ...Option) (*Client, error) {
	if creds.KeyID == "" || creds.Key == "" {
		return nil, errors.New("ncloud: key id and key are required")
	}
	if doer == nil {
		doer = transport.New(transport.DefaultConfig())
	}

	c := &Client{
		doer:    doer,
		baseURL: DefaultBaseURL,
		headers: []transport.Header{
			{Key: HeaderKeyID, Value: creds.KeyID},
			{Key: HeaderKey, Value: creds.Key},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = logger.Component("ncloud_client").WithField("key_id", logger.MaskSecret(creds.KeyID))
	return c, nil
}

func (c *Client) getDocument(ctx context.Context, op, path string, payload *params.Payload) (*table.Document, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	req := &transport.Request{
		Method: fasthttp.MethodGet,
		URL:    c.baseURL + path,
		Header: c.headers[:len(c.headers):len(c.headers)],
	}
	payload.EachQuery(req.AddQuery)
	return c.send(ctx, op, req)
}

func (c *Client) postDocument(ctx context.Context, op, path string, payload *params.Payload) (*table.Document, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	body, err := payload.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%s: encode request body: %w", op, err)
	}
	req := &transport.Request{
		Method: fasthttp.MethodPost,
		URL:    c.baseURL + path,
		Header: c.headers[:len(c.headers):len(c.headers)],
		Body:   body,
	}
	req.SetHeader("Content-Type", "application/json")
	return c.send(ctx, op, req)
}

func (c *Client) send(ctx context.Context, op string, req *transport.Request) (*table.Document, error) {
	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := resp.CheckStatus(); err != nil {
		c.log.WithFields(map[string]interface{}{
			"operation": op,
			"url":       logger.MaskURL(req.URL),
			"status":    resp.StatusCode,
		}).Warn("Upstream returned non-success status")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	doc, err := table.DecodeDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc, nil
}
