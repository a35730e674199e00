package helix

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const predictionPage = `{
	"data": [
		{
			"id": "d6676d5c-c86e-44d2-bfc4-100fb48f0656",
			"broadcaster_id": "55696719",
			"broadcaster_name": "TwitchDev",
			"broadcaster_login": "twitchdev",
			"title": "Will there be any leaks today?",
			"winning_outcome_id": null,
			"outcomes": [
				{"id": "021e9234-5893-49b4-982e-cfe9a0aaddd9", "title": "Yes", "users": 0, "channel_points": 0, "top_predictors": null, "color": "BLUE"},
				{"id": "ded84c26-13cb-4b48-8cb5-5bae3ec3a66e", "title": "No", "users": 0, "channel_points": 0, "top_predictors": null, "color": "PINK"}
			],
			"prediction_window": 600,
			"status": "ACTIVE",
			"created_at": "2021-04-28T16:03:06.320848689Z",
			"ended_at": null,
			"locked_at": null
		}
	],
	"pagination": {%s}
}`

const pollJSON = `{
	"id": "ed961efd-8a3f-4cf5-a9d0-e616c590cd2a",
	"broadcaster_id": "141981764",
	"broadcaster_name": "TwitchDev",
	"broadcaster_login": "twitchdev",
	"title": "Heads or Tails?",
	"choices": [
		{"id": "4c123012-1351-4f33-84b7-43856e7a0f47", "title": "Heads", "votes": 0, "channel_points_votes": 0, "bits_votes": 0},
		{"id": "279087e3-54a7-467e-bcd0-c1393fcea4f0", "title": "Tails", "votes": 0, "channel_points_votes": 0, "bits_votes": 0}
	],
	"bits_voting_enabled": false,
	"bits_per_vote": 0,
	"channel_points_voting_enabled": false,
	"channel_points_per_vote": 0,
	"status": "%s",
	"duration": 1800,
	"started_at": "2021-03-19T06:08:33.871278372Z"
}`

const subscriptionJSON = `{
	"id": "26b1c993-bfcf-44d9-b876-379dacafe75a",
	"status": "webhook_callback_verification_pending",
	"type": "stream.online",
	"version": "1",
	"cost": 1,
	"condition": {"broadcaster_user_id": "1234"},
	"transport": {"method": "webhook", "callback": "https://this-is-a-callback.com"},
	"created_at": "2020-11-10T14:32:18.730260295Z"
}`

// newMockServer creates an httptest.Server answering the Helix routes the
// tests exercise with literal payloads.
func newMockServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("login") {
		case "twitchdev":
			_, _ = w.Write([]byte(`{"data":[{
				"id": "141981764",
				"login": "twitchdev",
				"display_name": "TwitchDev",
				"type": "",
				"broadcaster_type": "partner",
				"description": "Supporting third-party developers building Twitch integrations.",
				"profile_image_url": "https://static-cdn.jtvnw.net/profile.png",
				"offline_image_url": "https://static-cdn.jtvnw.net/offline.png",
				"view_count": 5980557,
				"created_at": "2016-12-14T20:32:28Z"
			}]}`))
		default:
			_, _ = w.Write([]byte(`{"data":[]}`))
		}
	})

	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{
			"broadcaster_id": "141981764",
			"broadcaster_login": "twitchdev",
			"broadcaster_name": "TwitchDev",
			"broadcaster_language": "en",
			"game_id": "509670",
			"game_name": "Science & Technology",
			"title": "TwitchDev Monthly Update // May 6, 2021",
			"delay": 0,
			"tags": null
		}]}`))
	})

	mux.HandleFunc("/subscriptions/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("broadcaster_id") {
		case "149747285":
			_, _ = w.Write([]byte(`{"data":[{
				"broadcaster_id": "149747285",
				"broadcaster_name": "TwitchPresents",
				"broadcaster_login": "twitchpresents",
				"is_gift": false,
				"tier": "1000"
			}]}`))
		case "empty":
			_, _ = w.Write([]byte(`{"data":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not Found","message":"twitchdev has no subscription to twitchpresents","status":404}`))
		}
	})

	mux.HandleFunc("/polls", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body map[string]any
		if r.Method != http.MethodGet {
			raw, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(raw, &body), "poll body is not JSON")
		}
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"data":[` + fmt.Sprintf(pollJSON, "ACTIVE") + `]}`))
		case http.MethodPatch:
			_, _ = w.Write([]byte(`{"data":[` + fmt.Sprintf(pollJSON, body["status"].(string)) + `]}`))
		default:
			_, _ = w.Write([]byte(`{"data":[` + fmt.Sprintf(pollJSON, "COMPLETED") + `],"pagination":{}}`))
		}
	})

	mux.HandleFunc("/eventsub/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"data":[` + subscriptionJSON + `],"total":1,"total_cost":1,"max_total_cost":10000}`))
		case http.MethodDelete:
			if r.URL.Query().Get("id") == "" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"Bad Request","message":"missing id","status":400}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`{"data":[` + subscriptionJSON + `],"total":1,"total_cost":1,"max_total_cost":10000,"pagination":{}}`))
		}
	})

	return httptest.NewServer(mux)
}

func newMockClient(ts *httptest.Server, opts ...Option) *Client {
	base := []Option{
		WithBaseURL(ts.URL),
		WithClientID("test-client-id"),
		WithToken("test-token"),
	}
	return NewClient(append(base, opts...)...)
}
