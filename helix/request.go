package helix

import (
	"net/url"

	"github.com/google/go-querystring/query"

	"github.com/arvarik/twitch-go/types"
)

// Request describes one logical Helix call.
type Request interface {
	// Path is the resource path relative to the Helix base URL.
	Path() string
	// Method is the HTTP method.
	Method() string
	// Scopes lists the OAuth scopes the endpoint requires.
	Scopes() []types.Scope
}

// QueryRequest is a Request with query parameters.
type QueryRequest interface {
	Request
	Query() (url.Values, error)
}

// BodyRequest is a Request with a JSON body.
type BodyRequest interface {
	Request
	Body() any
}

// PaginatedRequest is a Request that accepts a forward cursor.
type PaginatedRequest interface {
	QueryRequest
	// WithCursor returns a copy of the request positioned at cursor.
	WithCursor(cursor types.Cursor) PaginatedRequest
}

// EncodeQuery encodes the url-tagged fields of v. Sequences become repeated
// key=value pairs and fields tagged omitempty are left out when unset.
func EncodeQuery(v any) (url.Values, error) {
	return query.Values(v)
}

func cursorPtr(c types.Cursor) *types.Cursor {
	return &c
}
