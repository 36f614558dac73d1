package naver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"
	"naver-go/pkg/logger"
	"naver-go/pkg/params"
	"naver-go/pkg/transport"
)

const (
	DefaultBaseURL    = "https://openapi.naver.com"
	DefaultMapBaseURL = "https://map.naver.com"

	HeaderClientID     = "X-Naver-Client-Id"
	HeaderClientSecret = "X-Naver-Client-Secret"
)

var (
	errUnknownSearchKind = errors.New("unknown search kind")
	errUnknownBreakdown  = errors.New("unknown breakdown")
)

// Credentials is an Open API application key pair issued by Naver Developers.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Client calls the consumer Open API family (search, DataLab, utilities).
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	doer       transport.Doer
	baseURL    string
	mapBaseURL string
	headers    []transport.Header
	log        *logger.Logger
}

type Option func(*Client)

// WithBaseURL overrides the Open API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithMapBaseURL overrides the map search host.
func WithMapBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.mapBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewClient builds a client; a nil doer gets a default transport.
func NewClient(creds Credentials, doer transport.Doer, opts ...Option) (*Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, errors.New("naver: client id and client secret are required")
	}
	if doer == nil {
		doer = transport.New(transport.DefaultConfig())
	}

	c := &Client{
		doer:       doer,
		baseURL:    DefaultBaseURL,
		mapBaseURL: DefaultMapBaseURL,
		headers: []transport.Header{
			{Key: HeaderClientID, Value: creds.ClientID},
			{Key: HeaderClientSecret, Value: creds.ClientSecret},
			{Key: "Content-Type", Value: "application/json"},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = logger.Component("naver_client").WithField("client_id", logger.MaskSecret(creds.ClientID))
	return c, nil
}

// get sends payload as a query string to an Open API path.
func (c *Client) get(ctx context.Context, path string, payload *params.Payload) ([]byte, error) {
	req := &transport.Request{
		Method: fasthttp.MethodGet,
		URL:    c.baseURL + path,
		Header: c.headers[:len(c.headers):len(c.headers)],
	}
	payload.EachQuery(req.AddQuery)
	return c.send(ctx, req)
}

// post sends payload as a JSON body to an Open API path.
func (c *Client) post(ctx context.Context, path string, payload *params.Payload) ([]byte, error) {
	body, err := payload.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	req := &transport.Request{
		Method: fasthttp.MethodPost,
		URL:    c.baseURL + path,
		Header: c.headers[:len(c.headers):len(c.headers)],
		Body:   body,
	}
	return c.send(ctx, req)
}

func (c *Client) send(ctx context.Context, req *transport.Request) ([]byte, error) {
	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := resp.CheckStatus(); err != nil {
		c.log.WithFields(map[string]interface{}{
			"url":    logger.MaskURL(req.URL),
			"status": resp.StatusCode,
		}).Warn("Upstream returned non-success status")
		return nil, err
	}
	return resp.Body, nil
}
