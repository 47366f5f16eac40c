package maverick

import (
	"fmt"
	"strings"
)

// NotFoundError indicates the upstream API has no site matching the
// requested identifier.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("site not found: %s", e.Identifier)
}

// AmbiguousNameError indicates a management request addressed a site by
// name and more than one site carries that name. The upstream signals
// this with a 403.
type AmbiguousNameError struct {
	Identifier string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("multiple sites found with name %q, use a site ID instead", e.Identifier)
}

// ValidationError carries the per-field validation messages returned by
// the upstream API on a 400 response.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages, "; "))
}

// ServerError covers 5xx responses and any status the client does not
// recognise. Body holds the raw (truncated) response body for diagnostics.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("maverick returned %d", e.StatusCode)
	}
	return fmt.Sprintf("maverick returned %d: %s", e.StatusCode, e.Body)
}

// NetworkError wraps transport-level failures. Timeout distinguishes a
// deadline expiry from other connection problems so callers can surface
// a different message.
type NetworkError struct {
	Err     error
	Timeout bool
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return "request timed out"
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
