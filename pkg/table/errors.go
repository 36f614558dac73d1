package table

import "fmt"

// ShapeError reports a response body that does not match the shape the
// caller asked to decode.
type ShapeError struct {
	Shape  string
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected %s response: %s: %v", e.Shape, e.Reason, e.Err)
	}
	return fmt.Sprintf("unexpected %s response: %s", e.Shape, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

func shapeErrorf(shape, format string, args ...interface{}) *ShapeError {
	return &ShapeError{Shape: shape, Reason: fmt.Sprintf(format, args...)}
}
