package helix

import (
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/arvarik/twitch-go/types"
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the transport used for requests.
// If this is not provided, an *http.Client with a 30 second timeout is used.
func WithHTTPClient(d Doer) Option {
	return func(client *Client) {
		client.httpClient = d
	}
}

// WithBaseURL overrides the default Helix base URL.
// This is primarily useful for testing or connecting to a proxy.
func WithBaseURL(url string) Option {
	return func(client *Client) {
		client.baseURL = url
	}
}

// WithClientID sets the application client id sent in the Client-Id header.
func WithClientID(id string) Option {
	return func(client *Client) {
		client.clientID = id
	}
}

// WithToken sets a static OAuth2 access token.
// This will set the Authorization: Bearer <token> header on all requests.
func WithToken(token string) Option {
	return func(client *Client) {
		if token == "" {
			client.tokenSource = nil
			return
		}
		client.tokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}
}

// WithTokenSource sets a source the client asks for a token on every call.
// Refresh and rotation are the source's business.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(client *Client) {
		client.tokenSource = ts
	}
}

// WithScopes declares the scopes the token is known to hold. Requests whose
// scopes are not covered log a warning but are still sent.
func WithScopes(scopes ...types.Scope) Option {
	return func(client *Client) {
		client.scopes = append([]types.Scope{}, scopes...)
	}
}

// WithStrictDecoding makes decoding of "data" fail on fields the response
// types do not know about.
func WithStrictDecoding(strict bool) Option {
	return func(client *Client) {
		client.strict = strict
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger hclog.Logger) Option {
	return func(client *Client) {
		if logger == nil {
			logger = hclog.NewNullLogger()
		}
		client.logger = logger
	}
}
