package helix

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// maxErrorBody caps how much of an undecodable error body is kept on an
// HTTPStatusError.
const maxErrorBody = 1000

var (
	// ErrUnauthorized matches an HTTPStatusError with status 401.
	ErrUnauthorized = errors.New("helix: unauthorized")
	// ErrForbidden matches an HTTPStatusError with status 403.
	ErrForbidden = errors.New("helix: forbidden")
	// ErrNotFound matches an HTTPStatusError with status 404.
	ErrNotFound = errors.New("helix: not found")
	// ErrRateLimited matches an HTTPStatusError with status 429.
	ErrRateLimited = errors.New("helix: rate limited")

	// ErrNoNextPage is returned by Pager.Next once the server stops handing out cursors.
	ErrNoNextPage = errors.New("helix: no next page available")
	// ErrPagerConsumed is yielded when Pager.All is ranged over a second time.
	ErrPagerConsumed = errors.New("helix: pager already consumed")

	errMissingData = errors.New(`response has no "data" field`)
)

// TransportError is a network or IO failure reported by the transport.
type TransportError struct {
	Method string
	URI    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("helix transport error: %s %s: %v", e.Method, e.URI, e.Err)
}

// Unwrap implements errors.Unwrap so context errors can be matched.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DeserializeError is returned when a response body does not match the
// expected shape. Body holds the raw text for diagnosis.
type DeserializeError struct {
	URI    string
	Status int
	Body   string
	Err    error
}

// Error implements the error interface.
func (e *DeserializeError) Error() string {
	return fmt.Sprintf("helix deserialize error: %d at %s: %v", e.Status, e.URI, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// InvalidResponseError is returned when the body is well-formed but lacks
// something the endpoint guarantees, such as an entry in "data".
type InvalidResponseError struct {
	URI    string
	Status int
	Reason string
	Body   string
}

// Error implements the error interface.
func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("helix invalid response: %d at %s: %s", e.Status, e.URI, e.Reason)
}

// HTTPStatusError is a non-2xx response. ErrorLabel and Message come from
// the structured error body. When the body could not be decoded, RawBody
// holds it and ErrorLabel falls back to the status text.
type HTTPStatusError struct {
	Status     int    `json:"-"`
	ErrorLabel string `json:"error"`
	Message    string `json:"message"`
	URI        string `json:"-"`
	RawBody    string `json:"-"`

	// RateLimitReset is when the rate limit bucket refills, taken from the
	// Ratelimit-Reset header. Zero when absent.
	RateLimitReset time.Time `json:"-"`
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("helix api error: %d %s at %s", e.Status, e.ErrorLabel, e.URI)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RawBody != "" {
		msg += fmt.Sprintf(" (%s)", e.RawBody)
	}
	return msg
}

// Is maps the status code onto the package sentinels.
func (e *HTTPStatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}

// decodeHTTPError converts an unsuccessful response into an HTTPStatusError.
// The HTTP status is authoritative over any status echoed in the body. A
// body without an error label is kept raw.
func decodeHTTPError(uri string, status int, header http.Header, body []byte) *HTTPStatusError {
	e := &HTTPStatusError{}
	if err := json.Unmarshal(body, e); err != nil {
		e = &HTTPStatusError{}
	}
	if e.ErrorLabel == "" {
		e.ErrorLabel = http.StatusText(status)
		e.RawBody = truncate(string(body), maxErrorBody)
	}
	e.Status = status
	e.URI = uri
	e.RateLimitReset = parseRateLimitReset(header)
	return e
}

func parseRateLimitReset(header http.Header) time.Time {
	if header == nil {
		return time.Time{}
	}
	v := header.Get("Ratelimit-Reset")
	if v == "" {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
