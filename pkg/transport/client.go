package transport

import (
	"context"
	"errors"
	"time"

	"github.com/valyala/fasthttp"
	"naver-go/pkg/logger"
)

// Header is a single request header. Order is preserved on the wire.
type Header struct {
	Key   string
	Value string
}

// Request describes one upstream call.
type Request struct {
	Method string
	URL    string
	Header []Header
	Query  []Header
	Body   []byte
}

// AddQuery appends a query-string pair.
func (r *Request) AddQuery(key, value string) {
	r.Query = append(r.Query, Header{Key: key, Value: value})
}

// SetHeader appends a request header.
func (r *Request) SetHeader(key, value string) {
	r.Header = append(r.Header, Header{Key: key, Value: value})
}

// Response is a completed exchange with a copy of the body.
type Response struct {
	Method      string
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// CheckStatus returns a *StatusError for any non-2xx response.
func (r *Response) CheckStatus() error {
	if r.OK() {
		return nil
	}
	return &StatusError{
		Method:     r.Method,
		URL:        r.URL,
		StatusCode: r.StatusCode,
		Body:       r.Body,
	}
}

// Doer executes a single request. Implementations must be safe for
// concurrent use.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Client is the fasthttp-backed Doer.
type Client struct {
	config Config
	client *fasthttp.Client
	log    *logger.Logger
}

var _ Doer = (*Client)(nil)

type Option func(*options)

type options struct {
	dial fasthttp.DialFunc
}

// WithDial replaces the TCP dialer, e.g. with an in-memory listener.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(o *options) {
		o.dial = dial
	}
}

func New(config Config, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	config = config.withDefaults()

	return &Client{
		config: config,
		client: newFastHTTPClient(config, o.dial),
		log:    logger.Component("transport"),
	}
}

func (c *Client) Config() Config {
	return c.config
}

type exchange struct {
	resp *Response
	err  error
}

// Do sends the request and waits for the response, the request timeout or
// ctx, whichever comes first. Non-2xx responses are returned without error;
// use Response.CheckStatus.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()

	freq.SetRequestURI(req.URL)
	if len(req.Query) > 0 {
		args := freq.URI().QueryArgs()
		for _, q := range req.Query {
			args.Add(q.Key, q.Value)
		}
	}
	// Header names go out as given, e.g. X-NCP-APIGW-API-KEY-ID.
	freq.Header.DisableNormalizing()
	freq.Header.SetMethod(req.Method)
	freq.Header.Set("Accept", "application/json")
	for _, h := range req.Header {
		freq.Header.Set(h.Key, h.Value)
	}
	if len(req.Body) > 0 {
		freq.SetBody(req.Body)
	}

	deadline := time.Now().Add(c.config.RequestTimeout)
	ctxDeadline, hasCtxDeadline := ctx.Deadline()
	if hasCtxDeadline && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	start := time.Now()
	done := make(chan exchange, 1)
	go func() {
		defer fasthttp.ReleaseRequest(freq)
		defer fasthttp.ReleaseResponse(fresp)

		if err := c.client.DoDeadline(freq, fresp, deadline); err != nil {
			done <- exchange{err: err}
			return
		}
		done <- exchange{resp: &Response{
			Method:      req.Method,
			URL:         req.URL,
			StatusCode:  fresp.StatusCode(),
			ContentType: string(fresp.Header.ContentType()),
			Body:        append([]byte(nil), fresp.Body()...),
		}}
	}()

	select {
	case <-ctx.Done():
		c.log.WithField("url", logger.MaskURL(req.URL)).Debug("Request abandoned on context cancellation")
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: ctx.Err()}
	case ex := <-done:
		if ex.err != nil {
			err := ex.err
			// The fasthttp deadline may be the context's; report it as such.
			if errors.Is(err, fasthttp.ErrTimeout) && hasCtxDeadline && !time.Now().Before(ctxDeadline) {
				err = errors.Join(context.DeadlineExceeded, err)
			}
			c.log.WithError(err).WithFields(map[string]interface{}{
				"method": req.Method,
				"url":    logger.MaskURL(req.URL),
			}).Debug("Request failed")
			return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
		}

		c.log.WithFields(map[string]interface{}{
			"method":      req.Method,
			"url":         logger.MaskURL(req.URL),
			"status":      ex.resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("Request completed")
		return ex.resp, nil
	}
}
