package helix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/arvarik/twitch-go/types"
)

func TestClient_Headers(t *testing.T) {
	testCases := []struct {
		name              string
		opts              []Option
		req               Request
		expectedHeaders   map[string]string
		unexpectedHeaders []string
	}{
		{
			name: "With Token",
			opts: []Option{WithToken("test-token")},
			req:  NewGetUsersByLoginRequest("twitchdev"),
			expectedHeaders: map[string]string{
				"Authorization": "Bearer test-token",
			},
		},
		{
			name:              "Without Token",
			req:               NewGetUsersByLoginRequest("twitchdev"),
			unexpectedHeaders: []string{"Authorization", "Client-Id"},
		},
		{
			name: "Client Id",
			opts: []Option{WithClientID("abc123")},
			req:  NewGetUsersByLoginRequest("twitchdev"),
			expectedHeaders: map[string]string{
				"Client-Id": "abc123",
			},
		},
		{
			name: "Standard Headers",
			req:  NewGetUsersByLoginRequest("twitchdev"),
			expectedHeaders: map[string]string{
				"Accept":     "application/json",
				"User-Agent": userAgent,
			},
		},
		{
			name: "Content-Type With Body",
			req:  NewEndPollRequest("141981764", "ed961efd", types.PollStatusTerminated),
			expectedHeaders: map[string]string{
				"Content-Type": "application/json",
			},
		},
		{
			name:              "Content-Type Without Body",
			req:               NewGetUsersByLoginRequest("twitchdev"),
			unexpectedHeaders: []string{"Content-Type"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got http.Header
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"data":[]}`))
			}))
			defer ts.Close()

			c := NewClient(append([]Option{WithBaseURL(ts.URL)}, tc.opts...)...)
			_, err := Do[[]User](context.Background(), c, tc.req)
			require.NoError(t, err)

			for k, v := range tc.expectedHeaders {
				assert.Equal(t, v, got.Get(k), "header %s", k)
			}
			for _, k := range tc.unexpectedHeaders {
				assert.Empty(t, got.Get(k), "header %s", k)
			}
		})
	}
}

func TestClient_Defaults(t *testing.T) {
	c := NewClient()

	assert.Equal(t, defaultBaseURL, c.baseURL)
	hc, ok := c.httpClient.(*http.Client)
	require.True(t, ok, "default transport is %T", c.httpClient)
	assert.Equal(t, 30*time.Second, hc.Timeout)
	assert.Nil(t, c.tokenSource)
	assert.False(t, c.strict)

	assert.NotNil(t, c.Users)
	assert.NotNil(t, c.Channels)
	assert.NotNil(t, c.Predictions)
	assert.NotNil(t, c.Polls)
	assert.NotNil(t, c.Subscriptions)
	assert.NotNil(t, c.EventSub)
	assert.NotNil(t, c.Videos)
	assert.NotNil(t, c.Search)
}

func TestClient_Options(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	c := NewClient(
		WithHTTPClient(custom),
		WithBaseURL("http://localhost:8080"),
		WithClientID("id"),
		WithStrictDecoding(true),
		WithScopes(types.ScopeChannelReadPolls),
		WithLogger(nil),
	)

	assert.Same(t, custom, c.httpClient)
	assert.Equal(t, "http://localhost:8080", c.baseURL)
	assert.True(t, c.strict)
	assert.Equal(t, []types.Scope{types.ScopeChannelReadPolls}, c.scopes)
	assert.NotNil(t, c.logger, "nil logger falls back to a null logger")

	c = NewClient(WithToken("abc"), WithToken(""))
	assert.Nil(t, c.tokenSource, "empty token clears the token source")
}

func TestClient_String_RedactsToken(t *testing.T) {
	c := NewClient(WithClientID("my-client"), WithToken("super-secret"))

	for _, s := range []string{c.String(), fmt.Sprintf("%v", c), fmt.Sprintf("%#v", c)} {
		assert.NotContains(t, s, "super-secret")
		assert.Contains(t, s, "<REDACTED>")
	}
}

type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("refresh failed")
}

func TestClient_TokenSourceError(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL), WithTokenSource(failingTokenSource{}))
	_, err := c.Users.GetByLogin(context.Background(), "twitchdev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh failed")
	assert.False(t, called, "no request is sent")
}

func TestClient_InvalidRequestNotSent(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	c := newMockClient(ts)
	_, err := c.Polls.Create(context.Background(), NewCreatePollRequest("141981764", "Heads or Tails?", []string{"Heads"}, time.Minute, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
	assert.False(t, called, "no request is sent")
}

func TestClient_MissingScopeWarns(t *testing.T) {
	ts := newMockServer(t)
	defer ts.Close()

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Warn})
	c := newMockClient(ts, WithScopes(types.ScopeUserReadEmail), WithLogger(logger))

	// The call still goes ahead; the server decides.
	_, err := c.Polls.Get(context.Background(), NewGetPollsRequest("141981764", nil))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "channel:read:polls")

	buf.Reset()
	_, err = c.Users.GetByLogin(context.Background(), "twitchdev")
	require.NoError(t, err)
	assert.Zero(t, buf.Len(), "no warning for an unscoped endpoint: %q", buf.String())
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	_, err := c.Users.GetByLogin(context.Background(), "twitchdev")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.MethodGet, te.Method)
	assert.Contains(t, te.URI, "/users?login=twitchdev")
}
