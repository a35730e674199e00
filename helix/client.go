package helix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/arvarik/twitch-go/types"
)

const (
	defaultBaseURL = "https://api.twitch.tv/helix"
	userAgent      = "twitch-go/0.1"
)

// Doer sends one HTTP request and returns its response. *http.Client
// satisfies it; cancellation and timeouts are entirely its concern.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the core Helix API client. It holds no mutable state between
// calls and is safe for concurrent use.
type Client struct {
	httpClient  Doer
	baseURL     string
	clientID    string
	tokenSource oauth2.TokenSource
	scopes      []types.Scope
	strict      bool
	logger      hclog.Logger

	// Services used for communicating with the Helix endpoints.
	Users         *UsersService
	Channels      *ChannelsService
	Predictions   *PredictionsService
	Polls         *PollsService
	Subscriptions *SubscriptionsService
	EventSub      *EventSubService
	Videos        *VideosService
	Search        *SearchService
}

// NewClient creates a new Helix API client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		logger:     hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Users = &UsersService{client: c}
	c.Channels = &ChannelsService{client: c}
	c.Predictions = &PredictionsService{client: c}
	c.Polls = &PollsService{client: c}
	c.Subscriptions = &SubscriptionsService{client: c}
	c.EventSub = &EventSubService{client: c}
	c.Videos = &VideosService{client: c}
	c.Search = &SearchService{client: c}

	return c
}

// String keeps credentials out of logs and fmt output.
func (c *Client) String() string {
	return fmt.Sprintf("&{baseURL:%s clientID:%s token:<REDACTED>}", c.baseURL, c.clientID)
}

// GoString implements fmt.GoStringer with the same redaction as String.
func (c *Client) GoString() string {
	return c.String()
}

// NewHTTPRequest builds the wire request for req: method, URI with encoded
// query, authorization and client headers, and the JSON body if any.
func (c *Client) NewHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	uri := c.baseURL + "/" + strings.TrimPrefix(req.Path(), "/")

	if qr, ok := req.(QueryRequest); ok {
		q, err := qr.Query()
		if err != nil {
			return nil, fmt.Errorf("helix: encode query: %w", err)
		}
		if len(q) > 0 {
			uri += "?" + q.Encode()
		}
	}

	var body io.Reader
	if br, ok := req.(BodyRequest); ok {
		b, err := json.Marshal(br.Body())
		if err != nil {
			return nil, fmt.Errorf("helix: encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), uri, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.clientID != "" {
		httpReq.Header.Set("Client-Id", c.clientID)
	}
	if c.tokenSource != nil {
		tok, err := c.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("helix: obtain token: %w", err)
		}
		tok.SetAuthHeader(httpReq)
	}

	return httpReq, nil
}

// rawResponse is the status/headers/body triple handed back by the transport.
type rawResponse struct {
	uri    string
	status int
	header http.Header
	body   []byte
}

// exchange validates and encodes req, performs the single HTTP exchange and
// reads the whole body.
func (c *Client) exchange(ctx context.Context, req Request) (*rawResponse, error) {
	if v, ok := req.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("helix: invalid request: %w", err)
		}
	}

	c.checkScopes(req)

	httpReq, err := c.NewHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	uri := httpReq.URL.String()

	c.logger.Trace("sending request", "method", httpReq.Method, "path", httpReq.URL.Path)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: httpReq.Method, URI: uri, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: httpReq.Method, URI: uri, Err: err}
	}

	return &rawResponse{
		uri:    uri,
		status: resp.StatusCode,
		header: resp.Header,
		body:   body,
	}, nil
}

// checkScopes warns about scopes the token is known to lack. The server is
// the only authority, so the call goes ahead either way.
func (c *Client) checkScopes(req Request) {
	if c.scopes == nil {
		return
	}
	if missing := types.MissingScopes(c.scopes, req.Scopes()); len(missing) > 0 {
		c.logger.Warn("token may lack required scopes", "path", req.Path(), "missing", missing)
	}
}
