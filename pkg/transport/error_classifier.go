package transport

import (
	"context"
	"errors"

	"github.com/valyala/fasthttp"
	"naver-go/pkg/params"
	"naver-go/pkg/table"
)

// ErrorKind groups client errors by what the caller can do about them.
type ErrorKind int

const (
	KindNone           ErrorKind = iota // no error
	KindInvalidRequest                  // rejected before sending
	KindTransport                       // connection-level failure
	KindTimeout                         // request or context deadline
	KindCanceled                        // context canceled
	KindUpstreamStatus                  // non-2xx from upstream
	KindShape                           // body did not match the expected shape
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidRequest:
		return "invalid_request"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	case KindUpstreamStatus:
		return "upstream_status"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by any client method to its kind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		missing   *params.MissingFieldError
		invalid   *params.InvalidFieldError
		status    *StatusError
		shape     *table.ShapeError
		transport *TransportError
	)

	switch {
	case errors.As(err, &missing), errors.As(err, &invalid):
		return KindInvalidRequest
	case errors.As(err, &status):
		return KindUpstreamStatus
	case errors.As(err, &shape):
		return KindShape
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, fasthttp.ErrTimeout):
		return KindTimeout
	case errors.As(err, &transport):
		return KindTransport
	}
	return KindUnknown
}

// IsRetryable reports whether repeating the same call could succeed. The
// client never retries by itself; callers decide.
func IsRetryable(err error) bool {
	switch Classify(err) {
	case KindTransport, KindTimeout:
		return true
	case KindUpstreamStatus:
		var status *StatusError
		errors.As(err, &status)
		return status.StatusCode == fasthttp.StatusTooManyRequests || status.StatusCode >= 500
	}
	return false
}
