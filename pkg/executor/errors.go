package executor

import (
	"errors"
	"fmt"
)

var (
	ErrFatalConfig = errors.New("invalid executor configuration")
	ErrUpstream    = errors.New("upstream error")
	ErrNoExample   = errors.New("no example content")
	ErrRequest     = errors.New("request failed")
)

// UpstreamError is returned when the REST service responds with a status outside 2xx.
type UpstreamError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("server responded: %d %s (url: %s)", e.StatusCode, e.Reason, e.URL)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
