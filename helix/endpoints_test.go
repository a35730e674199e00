package helix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvarik/twitch-go/eventsub"
	"github.com/arvarik/twitch-go/types"
)

// captureServer answers every request with response and records the last
// request body and query.
func captureServer(t *testing.T, status int, response string) (*httptest.Server, *map[string]any, *string) {
	t.Helper()
	body := map[string]any{}
	var query string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &body), "request body is not JSON")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	return ts, &body, &query
}

func TestUsers(t *testing.T) {
	ts := newMockServer(t)
	defer ts.Close()
	c := newMockClient(ts)
	ctx := context.Background()

	user, err := c.Users.GetByLogin(ctx, "twitchdev")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, types.UserID("141981764"), user.ID)
	assert.Equal(t, types.BroadcasterTypePartner, user.BroadcasterType)
	assert.Equal(t, types.UserTypeNone, user.Type)
	assert.Nil(t, user.Email)
	assert.Equal(t, 2016, user.CreatedAt.Year())

	missing, err := c.Users.GetByLogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = c.Users.GetByID(ctx, "0")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUsers_Validate(t *testing.T) {
	ids := make([]types.UserID, 101)
	for i := range ids {
		ids[i] = fmt.Sprint(i)
	}
	assert.Error(t, NewGetUsersByIDRequest(ids...).Validate())
	assert.NoError(t, NewGetUsersByIDRequest(ids[:100]...).Validate())
}

func TestChannels(t *testing.T) {
	ts := newMockServer(t)
	defer ts.Close()
	c := newMockClient(ts)

	ch, err := c.Channels.GetByID(context.Background(), "141981764")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "Science & Technology", ch.GameName)
	assert.NotNil(t, ch.Tags)
	assert.Empty(t, ch.Tags)

	q, err := NewGetChannelInformationRequest("1", "2").Query()
	require.NoError(t, err)
	assert.Equal(t, "broadcaster_id=1&broadcaster_id=2", q.Encode())
}

func TestSubscriptions_CheckUser(t *testing.T) {
	ts := newMockServer(t)
	defer ts.Close()
	c := newMockClient(ts)
	ctx := context.Background()

	resp, err := c.Subscriptions.CheckUser(ctx, NewCheckUserSubscriptionRequest("149747285"))
	require.NoError(t, err)
	assert.Equal(t, types.SubscriptionTier1, resp.Data.Tier)
	assert.False(t, resp.Data.IsGift)
	assert.Nil(t, resp.Data.GifterLogin)

	_, err = c.Subscriptions.CheckUser(ctx, NewCheckUserSubscriptionRequest("twitchpresents"))
	assert.ErrorIs(t, err, ErrNotFound)
	var httpErr *HTTPStatusError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "twitchdev has no subscription to twitchpresents", httpErr.Message)
}

func TestSubscriptions_GetBroadcaster(t *testing.T) {
	ts, _, query := captureServer(t, http.StatusOK, `{
		"data": [{
			"broadcaster_id": "141981764",
			"broadcaster_login": "twitchdev",
			"broadcaster_name": "TwitchDev",
			"gifter_id": "12826",
			"gifter_login": "twitch",
			"gifter_name": "Twitch",
			"is_gift": true,
			"tier": "4000",
			"plan_name": "Channel Subscription (twitchdev)",
			"user_id": "527115020",
			"user_name": "twitchgaming",
			"user_login": "twitchgaming"
		}],
		"pagination": {"cursor": "xxxx"},
		"total": 13,
		"points": 13
	}`)
	defer ts.Close()
	c := newMockClient(ts)

	resp, err := c.Subscriptions.GetBroadcaster(context.Background(), NewGetBroadcasterSubscriptionsRequest("141981764", &GetBroadcasterSubscriptionsOptions{First: 1}))
	require.NoError(t, err)
	assert.Equal(t, "broadcaster_id=141981764&first=1", *query)
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].Tier.IsOther())
	assert.Equal(t, "4000", resp.Data[0].Tier.String())

	points, ok := resp.ExtraInt("points")
	assert.True(t, ok)
	assert.Equal(t, int64(13), points)
}

func TestPolls_Create(t *testing.T) {
	ts, body, _ := captureServer(t, http.StatusOK, `{"data":[`+fmt.Sprintf(pollJSON, "ACTIVE")+`]}`)
	defer ts.Close()
	c := newMockClient(ts)

	req := NewCreatePollRequest("141981764", "Heads or Tails?", []string{"Heads", "Tails"}, 30*time.Minute, &CreatePollOptions{ChannelPointsPerVote: 100})
	resp, err := c.Polls.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.PollStatusActive, resp.Data.Status)
	assert.Len(t, resp.Data.Choices, 2)

	assert.Equal(t, map[string]any{
		"broadcaster_id":                "141981764",
		"title":                         "Heads or Tails?",
		"choices":                       []any{map[string]any{"title": "Heads"}, map[string]any{"title": "Tails"}},
		"duration":                      float64(1800),
		"channel_points_voting_enabled": true,
		"channel_points_per_vote":       float64(100),
	}, *body)
}

func TestPolls_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *CreatePollRequest
	}{
		{"one choice", NewCreatePollRequest("1", "t", []string{"a"}, time.Minute, nil)},
		{"too short", NewCreatePollRequest("1", "t", []string{"a", "b"}, 10*time.Second, nil)},
		{"too long", NewCreatePollRequest("1", "t", []string{"a", "b"}, time.Hour, nil)},
		{"no title", NewCreatePollRequest("1", "", []string{"a", "b"}, time.Minute, nil)},
		{"long choice", NewCreatePollRequest("1", "t", []string{"a", "this choice title is far too long"}, time.Minute, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestPolls_End(t *testing.T) {
	ts := newMockServer(t)
	defer ts.Close()
	c := newMockClient(ts)
	ctx := context.Background()

	resp, err := c.Polls.End(ctx, NewEndPollRequest("141981764", "ed961efd-8a3f-4cf5-a9d0-e616c590cd2a", types.PollStatusArchived))
	require.NoError(t, err)
	assert.Equal(t, types.PollStatusArchived, resp.Data.Status)

	_, err = c.Polls.End(ctx, NewEndPollRequest("141981764", "ed961efd-8a3f-4cf5-a9d0-e616c590cd2a", types.PollStatusActive))
	assert.Error(t, err)
}

func TestEventSub_Create(t *testing.T) {
	ts, body, _ := captureServer(t, http.StatusAccepted,
		`{"data":[`+subscriptionJSON+`],"total":1,"total_cost":1,"max_total_cost":10000}`)
	defer ts.Close()
	c := newMockClient(ts)

	req := NewCreateEventSubSubscriptionRequest(
		eventsub.StreamOnlineV1{BroadcasterUserID: "1234"},
		eventsub.WebhookTransport("https://this-is-a-callback.com", "s3cre7w0rd!"),
	)
	resp, err := c.EventSub.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"type":      "stream.online",
		"version":   "1",
		"condition": map[string]any{"broadcaster_user_id": "1234"},
		"transport": map[string]any{
			"method":   "webhook",
			"callback": "https://this-is-a-callback.com",
			"secret":   "s3cre7w0rd!",
		},
	}, *body)

	sub := resp.Data
	assert.Equal(t, eventsub.StatusVerificationPending, sub.Status)
	assert.True(t, sub.Status.Active())
	assert.Equal(t, eventsub.Key{Type: eventsub.EventTypeStreamOnline, Version: "1"}, sub.Key())
	assert.Equal(t, "1234", sub.Condition["broadcaster_user_id"])
	assert.Equal(t, SubscriptionCosts{Total: 1, TotalCost: 1, MaxTotalCost: 10000}, Costs(resp))
}

func TestEventSub_CreateValidation(t *testing.T) {
	cond := eventsub.StreamOfflineV1{BroadcasterUserID: "1234"}
	tests := []struct {
		name    string
		req     *CreateEventSubSubscriptionRequest
		wantErr bool
	}{
		{"valid", NewCreateEventSubSubscriptionRequest(cond, eventsub.WebhookTransport("https://example.com/cb", "0123456789")), false},
		{"no condition", NewCreateEventSubSubscriptionRequest(nil, eventsub.WebhookTransport("https://example.com/cb", "0123456789")), true},
		{"http callback", NewCreateEventSubSubscriptionRequest(cond, eventsub.WebhookTransport("http://example.com/cb", "0123456789")), true},
		{"short secret", NewCreateEventSubSubscriptionRequest(cond, eventsub.WebhookTransport("https://example.com/cb", "short")), true},
		{"no method", NewCreateEventSubSubscriptionRequest(cond, eventsub.Transport{}), true},
		{"websocket", NewCreateEventSubSubscriptionRequest(cond, eventsub.Transport{Method: eventsub.TransportWebSocket, SessionID: "s"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventSub_CreateScopes(t *testing.T) {
	req := NewCreateEventSubSubscriptionRequest(eventsub.ChannelPollBeginBeta{BroadcasterUserID: "1"}, eventsub.Transport{})
	assert.Equal(t, []types.Scope{types.ScopeChannelReadPolls}, req.Scopes())
	assert.Nil(t, NewCreateEventSubSubscriptionRequest(nil, eventsub.Transport{}).Scopes())
}

func TestEventSub_GetAndDelete(t *testing.T) {
	ts := newMockServer(t)
	defer ts.Close()
	c := newMockClient(ts)
	ctx := context.Background()

	subs, err := c.EventSub.All(&GetEventSubSubscriptionsRequest{Status: eventsub.StatusEnabled}).Collect(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "26b1c993-bfcf-44d9-b876-379dacafe75a", subs[0].ID)

	require.NoError(t, c.EventSub.Delete(ctx, subs[0].ID))

	both := &GetEventSubSubscriptionsRequest{Status: eventsub.StatusEnabled, UserID: "1"}
	assert.Error(t, both.Validate())
}

const videoJSON = `{
	"id": "335921245",
	"stream_id": null,
	"user_id": "141981764",
	"user_login": "twitchdev",
	"user_name": "TwitchDev",
	"title": "Twitch Developers 101",
	"description": "Welcome to Twitch development!",
	"created_at": "2018-11-14T21:30:18Z",
	"published_at": "2018-11-14T22:04:30Z",
	"url": "https://www.twitch.tv/videos/335921245",
	"thumbnail_url": "https://static-cdn.jtvnw.net/cf_vods/d2nvs31859zcd8/twitchdev/335921245/%{width}x%{height}.jpg",
	"viewable": "public",
	"view_count": 1863062,
	"language": "en",
	"type": "upload",
	"duration": "3m21s",
	"muted_segments": null
}`

func TestVideos_GetByUser(t *testing.T) {
	ts, _, query := captureServer(t, http.StatusOK, `{"data":[`+videoJSON+`],"pagination":{}}`)
	defer ts.Close()
	c := newMockClient(ts)

	req := NewGetVideosByUserRequest("141981764", &GetVideosOptions{
		Period: types.VideoPeriodWeek,
		Sort:   VideoSortViews,
		Type:   types.VideoTypeArchive,
		First:  5,
	})
	resp, err := c.Videos.Get(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "first=5&period=week&sort=views&type=archive&user_id=141981764", *query)

	require.Len(t, resp.Data, 1)
	v := resp.Data[0]
	assert.Equal(t, types.VideoID("335921245"), v.ID)
	assert.Nil(t, v.StreamID)
	assert.Equal(t, types.VideoPrivacyPublic, v.Viewable)
	assert.Equal(t, types.VideoTypeUpload, v.Type)
	assert.Equal(t, int64(1863062), v.ViewCount)
	assert.Nil(t, resp.Pagination)
}

func TestVideos_ByIDOmitsFilters(t *testing.T) {
	ts, _, query := captureServer(t, http.StatusOK, `{"data":[`+videoJSON+`]}`)
	defer ts.Close()
	c := newMockClient(ts)

	_, err := c.Videos.Get(context.Background(), NewGetVideosByIDRequest("335921245", "335921246"))
	require.NoError(t, err)
	assert.Equal(t, "id=335921245&id=335921246", *query)
}

func TestVideos_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *GetVideosRequest
		wantErr bool
	}{
		{"by user", NewGetVideosByUserRequest("1", nil), false},
		{"by game", NewGetVideosByGameRequest("509670", &GetVideosOptions{Sort: VideoSortTrending}), false},
		{"no lookup", &GetVideosRequest{}, true},
		{"two lookups", &GetVideosRequest{UserID: "1", GameID: "2"}, true},
		{"bad sort", NewGetVideosByUserRequest("1", &GetVideosOptions{Sort: "oldest"}), true},
		{"page too large", NewGetVideosByUserRequest("1", &GetVideosOptions{First: 101}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVideos_MissingID(t *testing.T) {
	ts, _, _ := captureServer(t, http.StatusOK, `{"data":[{"user_id":"141981764","created_at":"2018-11-14T21:30:18Z"}]}`)
	defer ts.Close()
	c := newMockClient(ts)

	_, err := c.Videos.Get(context.Background(), NewGetVideosByUserRequest("141981764", nil))
	var ie *InvalidResponseError
	require.ErrorAs(t, err, &ie)
}

func TestSearch_Categories(t *testing.T) {
	var queries []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/categories", r.URL.Path)
		queries = append(queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("after") == "" {
			_, _ = w.Write([]byte(`{"data":[{"box_art_url":"https://static-cdn.jtvnw.net/ttv-boxart/33214-52x72.jpg","name":"Fortnite","id":"33214"}],"pagination":{"cursor":"eyJiIjpudWxs"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"box_art_url":"","name":"Fortnite Creative","id":"517263"}],"pagination":{}}`))
	}))
	defer ts.Close()
	c := newMockClient(ts)

	categories, err := c.Search.AllCategories(NewSearchCategoriesRequest("fort", 1)).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.TwitchCategory{
		{BoxArtURL: "https://static-cdn.jtvnw.net/ttv-boxart/33214-52x72.jpg", ID: "33214", Name: "Fortnite"},
		{ID: "517263", Name: "Fortnite Creative"},
	}, categories)
	assert.Equal(t, []string{"first=1&query=fort", "after=eyJiIjpudWxs&first=1&query=fort"}, queries)

	_, err = c.Search.Categories(context.Background(), NewSearchCategoriesRequest("", 0))
	assert.Error(t, err, "an empty query is rejected")
}

func TestChannels_StartCommercial(t *testing.T) {
	ts, body, _ := captureServer(t, http.StatusOK, `{"data":[{"length":60,"message":"","retry_after":480}]}`)
	defer ts.Close()
	c := newMockClient(ts)

	req := NewStartCommercialRequest("141981764", types.CommercialLength60)
	assert.Equal(t, []types.Scope{types.ScopeChannelEditCommercial}, req.Scopes())

	resp, err := c.Channels.StartCommercial(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"broadcaster_id": "141981764", "length": float64(60)}, *body)
	assert.Equal(t, types.CommercialLength60, resp.Data.Length)
	assert.Equal(t, int64(480), resp.Data.RetryAfter)

	assert.Error(t, NewStartCommercialRequest("141981764", types.CommercialLength(45)).Validate())
	assert.Error(t, NewStartCommercialRequest("", types.CommercialLength30).Validate())
}
