// Package eventsubtest builds signed EventSub webhook requests for tests.
package eventsubtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"github.com/arvarik/twitch-go/eventsub"
)

// Request describes a webhook delivery. Zero fields get defaults: a random
// message id and the current time.
type Request struct {
	Secret    string
	MessageID string
	Timestamp time.Time
	Type      eventsub.MessageType
	// Key fills the subscription type and version headers when set.
	Key  eventsub.Key
	Body []byte
	// Signature overrides the computed signature.
	Signature string
}

// NewRequest returns a signed POST request as Twitch would send it.
func NewRequest(target string, r Request) *http.Request {
	id := r.MessageID
	if id == "" {
		id = uuid.NewString()
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	stamp := ts.UTC().Format(time.RFC3339Nano)
	sig := r.Signature
	if sig == "" {
		sig = eventsub.ComputeSignature(r.Secret, id, stamp, r.Body)
	}

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(r.Body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(eventsub.HeaderMessageID, id)
	req.Header.Set(eventsub.HeaderMessageTimestamp, stamp)
	req.Header.Set(eventsub.HeaderMessageSignature, sig)
	req.Header.Set(eventsub.HeaderMessageRetry, "0")
	if r.Type != "" {
		req.Header.Set(eventsub.HeaderMessageType, string(r.Type))
	}
	if r.Key.Type != "" {
		req.Header.Set(eventsub.HeaderSubscriptionType, string(r.Key.Type))
		req.Header.Set(eventsub.HeaderSubscriptionVersion, r.Key.Version)
	}
	return req
}

// Subscription returns an enabled webhook subscription for key.
func Subscription(key eventsub.Key, condition map[string]string) eventsub.Subscription {
	return eventsub.Subscription{
		ID:        uuid.NewString(),
		Type:      key.Type,
		Version:   key.Version,
		Status:    eventsub.StatusEnabled,
		Cost:      0,
		Condition: condition,
		Transport: eventsub.Transport{
			Method:   eventsub.TransportWebhook,
			Callback: "https://example.com/webhooks/callback",
		},
		CreatedAt: time.Date(2021, 7, 15, 17, 8, 42, 0, time.UTC),
	}
}

// NotificationBody encodes a notification envelope around the raw event.
func NotificationBody(sub eventsub.Subscription, event json.RawMessage) []byte {
	return mustMarshal(struct {
		Subscription eventsub.Subscription `json:"subscription"`
		Event        json.RawMessage       `json:"event"`
	}{sub, event})
}

// VerificationBody encodes a verification challenge envelope.
func VerificationBody(sub eventsub.Subscription, challenge string) []byte {
	return mustMarshal(eventsub.VerificationChallenge{Subscription: sub, Challenge: challenge})
}

// RevocationBody encodes a revocation envelope.
func RevocationBody(sub eventsub.Subscription) []byte {
	return mustMarshal(eventsub.Revocation{Subscription: sub})
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
