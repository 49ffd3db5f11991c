package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a by-id lookup finds no product in the channel.
var ErrNotFound = errors.New("product not found")

// ValidationError reports malformed tool input. No upstream request is made
// once one is produced.
type ValidationError struct {
	Argument string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Argument, e.Reason)
}

// UpstreamError wraps a transport or GraphQL failure returned by the catalog API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func invalid(argument, format string, args ...any) *ValidationError {
	return &ValidationError{Argument: argument, Reason: fmt.Sprintf(format, args...)}
}
