package helix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// Response is the uniform envelope of a successful call.
type Response[T any] struct {
	// Data is the endpoint specific payload.
	Data T
	// Pagination is the cursor for the next page, nil when the server sent none.
	Pagination *types.Cursor
	// Request is the request that produced this response.
	Request Request
	// Extra holds the envelope fields besides data and pagination, such as
	// "total" or "total_cost".
	Extra map[string]json.RawMessage
}

// ExtraInt reads an integer envelope field such as "total".
func (r *Response[T]) ExtraInt(key string) (int64, bool) {
	raw, ok := r.Extra[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

type pagination struct {
	Cursor *types.Cursor `json:"cursor"`
}

// DecodeResponse turns a raw status/body pair into a typed Response or a
// typed error. It performs no IO, so callers driving their own transport can
// reuse it. When strict is set, unknown fields inside "data" are rejected.
func DecodeResponse[T any](req Request, uri string, status int, header http.Header, body []byte, strict bool) (*Response[T], error) {
	if status < 200 || status > 299 {
		return nil, decodeHTTPError(uri, status, header, body)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &DeserializeError{URI: uri, Status: status, Body: string(body), Err: err}
	}

	rawData, ok := fields["data"]
	if !ok {
		return nil, &DeserializeError{URI: uri, Status: status, Body: string(body), Err: errMissingData}
	}

	var data T
	dec := json.NewDecoder(bytes.NewReader(rawData))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&data); err != nil {
		return nil, &DeserializeError{URI: uri, Status: status, Body: string(body), Err: err}
	}
	emptyNilSlice(&data)

	if err := validation.Validate(data); err != nil {
		return nil, &InvalidResponseError{URI: uri, Status: status, Reason: err.Error(), Body: string(body)}
	}

	resp := &Response[T]{Data: data, Request: req}

	if rawPage, ok := fields["pagination"]; ok {
		var p pagination
		if err := json.Unmarshal(rawPage, &p); err != nil {
			return nil, &DeserializeError{URI: uri, Status: status, Body: string(body), Err: fmt.Errorf("pagination: %w", err)}
		}
		resp.Pagination = p.Cursor
	}

	delete(fields, "data")
	delete(fields, "pagination")
	if len(fields) > 0 {
		resp.Extra = fields
	}

	return resp, nil
}

// emptyNilSlice turns a null "data" list into an empty one.
func emptyNilSlice[T any](v *T) {
	rv := reflect.ValueOf(v).Elem()
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	}
}

// Do executes req and decodes "data" into T.
func Do[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	raw, err := c.exchange(ctx, req)
	if err != nil {
		return nil, err
	}
	return DecodeResponse[T](req, raw.uri, raw.status, raw.header, raw.body, c.strict)
}

// DoSingle executes req for an endpoint that answers with a one element
// "data" list and returns that element.
func DoSingle[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	raw, err := c.exchange(ctx, req)
	if err != nil {
		return nil, err
	}
	list, err := DecodeResponse[[]T](req, raw.uri, raw.status, raw.header, raw.body, c.strict)
	if err != nil {
		return nil, err
	}
	if len(list.Data) == 0 {
		return nil, &InvalidResponseError{
			URI:    raw.uri,
			Status: raw.status,
			Reason: "expected an entry in `data`",
			Body:   string(raw.body),
		}
	}
	return &Response[T]{
		Data:       list.Data[0],
		Pagination: list.Pagination,
		Request:    req,
		Extra:      list.Extra,
	}, nil
}

// Send executes req for an endpoint that answers 204 No Content.
func Send(ctx context.Context, c *Client, req Request) error {
	raw, err := c.exchange(ctx, req)
	if err != nil {
		return err
	}
	if raw.status < 200 || raw.status > 299 {
		return decodeHTTPError(raw.uri, raw.status, raw.header, raw.body)
	}
	return nil
}
