package helix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvarik/twitch-go/types"
)

const testURI = "https://api.twitch.tv/helix/test"

func TestDecodeResponse_HTTPError(t *testing.T) {
	body := []byte(`{"error":"Not Found","message":"twitchdev has no subscription to twitchpresents","status":404}`)
	header := http.Header{"Ratelimit-Reset": []string{"1700000000"}}

	_, err := DecodeResponse[[]User](nil, testURI, http.StatusNotFound, header, body, false)

	var httpErr *HTTPStatusError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Not Found", httpErr.ErrorLabel)
	assert.Equal(t, "twitchdev has no subscription to twitchpresents", httpErr.Message)
	assert.Equal(t, testURI, httpErr.URI)
	assert.Empty(t, httpErr.RawBody)
	assert.Equal(t, int64(1700000000), httpErr.RateLimitReset.Unix())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestDecodeResponse_HTTPErrorUndecodable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "html", body: "<html>bad gateway</html>"},
		{name: "null", body: "null"},
		{name: "empty object", body: "{}"},
		{name: "unrelated object", body: `{"foo":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResponse[[]User](nil, testURI, http.StatusBadGateway, nil, []byte(tt.body), false)

			var httpErr *HTTPStatusError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadGateway, httpErr.Status)
			assert.Equal(t, "Bad Gateway", httpErr.ErrorLabel)
			assert.Equal(t, tt.body, httpErr.RawBody)
			assert.True(t, httpErr.RateLimitReset.IsZero())
			assert.Contains(t, err.Error(), tt.body)
		})
	}
}

func TestDecodeResponse_StatusWins(t *testing.T) {
	body := []byte(`{"error":"Unauthorized","message":"invalid token","status":404}`)
	_, err := DecodeResponse[[]User](nil, testURI, http.StatusUnauthorized, nil, body, false)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestHTTPStatusError_Sentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		err := error(&HTTPStatusError{Status: tt.status})
		assert.True(t, errors.Is(err, tt.want), "status %d", tt.status)
	}
	assert.False(t, errors.Is(&HTTPStatusError{Status: 500}, ErrNotFound))
}

func TestDecodeResponse_Deserialize(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `not json`},
		{name: "missing data", body: `{"pagination":{}}`},
		{name: "type mismatch", body: `{"data":{"id":"1"}}`},
		{name: "bad pagination", body: `{"data":[],"pagination":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResponse[[]User](nil, testURI, http.StatusOK, nil, []byte(tt.body), false)

			var de *DeserializeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.body, de.Body)
			assert.Equal(t, http.StatusOK, de.Status)
			assert.Equal(t, testURI, de.URI)
		})
	}
}

func TestDecodeResponse_NullDataIsEmpty(t *testing.T) {
	resp, err := DecodeResponse[[]User](nil, testURI, http.StatusOK, nil, []byte(`{"data":null}`), false)
	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Nil(t, resp.Pagination)
}

func TestDecodeResponse_Strict(t *testing.T) {
	body := []byte(`{"data":[{"id":"1","login":"a","unknown_field":true,"created_at":"2016-12-14T20:32:28Z"}]}`)

	resp, err := DecodeResponse[[]User](nil, testURI, http.StatusOK, nil, body, false)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)

	_, err = DecodeResponse[[]User](nil, testURI, http.StatusOK, nil, body, true)
	var de *DeserializeError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Err.Error(), "unknown_field")
}

func TestDecodeResponse_Invalid(t *testing.T) {
	body := []byte(`{"data":[{"id":"","login":"twitchdev","created_at":"2016-12-14T20:32:28Z"}]}`)
	_, err := DecodeResponse[[]User](nil, testURI, http.StatusOK, nil, body, false)

	var ie *InvalidResponseError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, string(body), ie.Body)
}

// withoutField decodes the single record in a "data" list, drops the field
// at path and encodes the envelope again.
func withoutField(t *testing.T, body string, path ...string) []byte {
	t.Helper()
	var env struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	require.Len(t, env.Data, 1)

	obj := env.Data[0]
	for _, p := range path[:len(path)-1] {
		list, ok := obj[p].([]any)
		require.True(t, ok, "%s is not a list", p)
		require.NotEmpty(t, list)
		obj = list[0].(map[string]any)
	}
	last := path[len(path)-1]
	require.Contains(t, obj, last)
	delete(obj, last)

	out, err := json.Marshal(env)
	require.NoError(t, err)
	return out
}

func TestDecodeResponse_MissingRequiredField(t *testing.T) {
	poll := `{"data":[` + fmt.Sprintf(pollJSON, "ACTIVE") + `]}`
	prediction := fmt.Sprintf(predictionPage, "")
	user := `{"data":[{"id":"141981764","login":"twitchdev","display_name":"TwitchDev","created_at":"2016-12-14T20:32:28Z"}]}`
	channel := `{"data":[{"broadcaster_id":"141981764","broadcaster_login":"twitchdev","title":"","tags":[]}]}`
	sub := `{"data":[{"broadcaster_id":"141981764","user_id":"527115020","tier":"1000"}]}`

	tests := []struct {
		record string
		body   string
		path   []string
		decode func([]byte) error
	}{
		{"poll", poll, []string{"id"}, decodeAs[[]Poll]},
		{"poll", poll, []string{"title"}, decodeAs[[]Poll]},
		{"poll", poll, []string{"choices"}, decodeAs[[]Poll]},
		{"poll", poll, []string{"status"}, decodeAs[[]Poll]},
		{"poll", poll, []string{"started_at"}, decodeAs[[]Poll]},
		{"poll", poll, []string{"choices", "id"}, decodeAs[[]Poll]},
		{"poll", poll, []string{"choices", "title"}, decodeAs[[]Poll]},
		{"prediction", prediction, []string{"id"}, decodeAs[[]Prediction]},
		{"prediction", prediction, []string{"broadcaster_id"}, decodeAs[[]Prediction]},
		{"prediction", prediction, []string{"title"}, decodeAs[[]Prediction]},
		{"prediction", prediction, []string{"outcomes"}, decodeAs[[]Prediction]},
		{"prediction", prediction, []string{"status"}, decodeAs[[]Prediction]},
		{"prediction", prediction, []string{"created_at"}, decodeAs[[]Prediction]},
		{"prediction", prediction, []string{"outcomes", "id"}, decodeAs[[]Prediction]},
		{"prediction", prediction, []string{"outcomes", "color"}, decodeAs[[]Prediction]},
		{"user", user, []string{"id"}, decodeAs[[]User]},
		{"user", user, []string{"login"}, decodeAs[[]User]},
		{"user", user, []string{"created_at"}, decodeAs[[]User]},
		{"channel", channel, []string{"broadcaster_id"}, decodeAs[[]ChannelInformation]},
		{"channel", channel, []string{"broadcaster_login"}, decodeAs[[]ChannelInformation]},
		{"sub", sub, []string{"tier"}, decodeAs[[]BroadcasterSubscription]},
		{"sub", sub, []string{"user_id"}, decodeAs[[]BroadcasterSubscription]},
	}
	for _, tt := range tests {
		t.Run(tt.record+"/"+strings.Join(tt.path, "."), func(t *testing.T) {
			require.NoError(t, tt.decode([]byte(tt.body)), "complete record decodes")

			err := tt.decode(withoutField(t, tt.body, tt.path...))
			var ie *InvalidResponseError
			require.ErrorAs(t, err, &ie)
		})
	}
}

func TestDecodeResponse_NullStatus(t *testing.T) {
	body := strings.Replace(fmt.Sprintf(pollJSON, "ACTIVE"), `"ACTIVE"`, "null", 1)
	_, err := DecodeResponse[[]Poll](nil, testURI, http.StatusOK, nil, []byte(`{"data":[`+body+`]}`), false)

	var ie *InvalidResponseError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Reason, "status")
}

func TestDecodeResponse_AbsentTagsAreEmpty(t *testing.T) {
	body := []byte(`{"data":[{"broadcaster_id":"141981764","broadcaster_login":"twitchdev"}]}`)
	resp, err := DecodeResponse[[]ChannelInformation](nil, testURI, http.StatusOK, nil, body, false)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.NotNil(t, resp.Data[0].Tags)
	assert.Empty(t, resp.Data[0].Tags)
}

func decodeAs[T any](body []byte) error {
	_, err := DecodeResponse[T](nil, testURI, http.StatusOK, nil, body, false)
	return err
}

func TestDecodeResponse_ExtraAndPagination(t *testing.T) {
	body := []byte(`{"data":[],"total":3,"total_cost":2,"max_total_cost":10000,"pagination":{"cursor":"eyJiIjpudWxs"}}`)
	req := NewGetUsersByIDRequest("1")

	resp, err := DecodeResponse[[]User](req, testURI, http.StatusOK, nil, body, false)
	require.NoError(t, err)

	require.NotNil(t, resp.Pagination)
	assert.Equal(t, types.Cursor("eyJiIjpudWxs"), *resp.Pagination)
	assert.Same(t, req, resp.Request)
	assert.NotContains(t, resp.Extra, "data")
	assert.NotContains(t, resp.Extra, "pagination")

	total, ok := resp.ExtraInt("total")
	assert.True(t, ok)
	assert.Equal(t, int64(3), total)

	_, ok = resp.ExtraInt("missing")
	assert.False(t, ok)

	costs := Costs(resp)
	assert.Equal(t, SubscriptionCosts{Total: 3, TotalCost: 2, MaxTotalCost: 10000}, costs)
}

func TestDoSingle_EmptyData(t *testing.T) {
	ts := newMockServer(t)
	defer ts.Close()
	c := newMockClient(ts)

	_, err := c.Subscriptions.CheckUser(context.Background(), NewCheckUserSubscriptionRequest("empty"))

	var ie *InvalidResponseError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Reason, "data")
}

func TestSend_Error(t *testing.T) {
	ts := newMockServer(t)
	defer ts.Close()
	c := newMockClient(ts)

	err := Send(context.Background(), c, &DeleteEventSubSubscriptionRequest{ID: "x"})
	require.NoError(t, err)

	var httpErr *HTTPStatusError
	err = c.EventSub.Delete(context.Background(), "")
	require.Error(t, err)
	// Validation catches the empty id before it reaches the server.
	assert.False(t, errors.As(err, &httpErr))
}
