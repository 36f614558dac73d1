package transport

import (
	"encoding/json"
	"fmt"

	"naver-go/pkg/logger"
)

// TransportError is a failure to complete the HTTP exchange at all: DNS,
// refused connection, timeout or cancellation.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, logger.MaskURL(e.URL), e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError carries a non-2xx upstream response so callers can inspect the
// status and body.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: upstream returned status %d: %s", e.Method, logger.MaskURL(e.URL), e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: upstream returned status %d: %s",
		e.Method, logger.MaskURL(e.URL), e.StatusCode, string(e.Body[:min(len(e.Body), 200)]))
}

// upstreamError covers both error envelopes:
// consumer  {"errorMessage": "...", "errorCode": "SE01"}
// gateway   {"error": {"errorCode": "200", "message": "...", "details": "..."}}
type upstreamError struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
	Error        *struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
		Details   string `json:"details"`
	} `json:"error"`
}

func (e *StatusError) parse() upstreamError {
	var ue upstreamError
	_ = json.Unmarshal(e.Body, &ue)
	return ue
}

// Code returns the upstream error code, if the body carries one.
func (e *StatusError) Code() string {
	ue := e.parse()
	if ue.Error != nil && ue.Error.ErrorCode != "" {
		return ue.Error.ErrorCode
	}
	return ue.ErrorCode
}

// Message returns the upstream error message, if the body carries one.
func (e *StatusError) Message() string {
	ue := e.parse()
	if ue.Error != nil && ue.Error.Message != "" {
		if ue.Error.Details != "" {
			return ue.Error.Message + " (" + ue.Error.Details + ")"
		}
		return ue.Error.Message
	}
	return ue.ErrorMessage
}
