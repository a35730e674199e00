package eventsub

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// EventType is the dotted name of an EventSub subscription type.
type EventType string

const (
	EventTypeChannelFollow             EventType = "channel.follow"
	EventTypeChannelUpdate             EventType = "channel.update"
	EventTypeChannelSubscribe          EventType = "channel.subscribe"
	EventTypeStreamOnline              EventType = "stream.online"
	EventTypeStreamOffline             EventType = "stream.offline"
	EventTypeChannelPollBegin          EventType = "channel.poll.begin"
	EventTypeChannelPollProgress       EventType = "channel.poll.progress"
	EventTypeChannelPollEnd            EventType = "channel.poll.end"
	EventTypeChannelPredictionBegin    EventType = "channel.prediction.begin"
	EventTypeChannelPredictionProgress EventType = "channel.prediction.progress"
	EventTypeChannelPredictionLock     EventType = "channel.prediction.lock"
	EventTypeChannelPredictionEnd      EventType = "channel.prediction.end"
	EventTypeUserAuthorizationRevoke   EventType = "user.authorization.revoke"
)

// Key identifies a payload shape: an event type at a specific version.
type Key struct {
	Type    EventType
	Version string
}

func (k Key) String() string {
	return string(k.Type) + "/" + k.Version
}

// ParseKey parses the "type/version" form produced by Key.String.
func ParseKey(s string) (Key, error) {
	typ, version, ok := strings.Cut(s, "/")
	if !ok || typ == "" || version == "" {
		return Key{}, fmt.Errorf("eventsub: malformed key %q, want type/version", s)
	}
	return Key{Type: EventType(typ), Version: version}, nil
}

// Status is the server-driven state of a subscription. Values this package
// does not list are passed through unchanged.
type Status string

const (
	StatusEnabled                      Status = "enabled"
	StatusVerificationPending          Status = "webhook_callback_verification_pending"
	StatusVerificationFailed           Status = "webhook_callback_verification_failed"
	StatusNotificationFailuresExceeded Status = "notification_failures_exceeded"
	StatusAuthorizationRevoked         Status = "authorization_revoked"
	StatusModeratorRemoved             Status = "moderator_removed"
	StatusUserRemoved                  Status = "user_removed"
	StatusVersionRemoved               Status = "version_removed"
)

// Active reports whether the subscription is enabled or still being verified.
func (s Status) Active() bool {
	return s == StatusEnabled || s == StatusVerificationPending
}

// TransportMethod is how notifications are delivered.
type TransportMethod string

const (
	TransportWebhook   TransportMethod = "webhook"
	TransportWebSocket TransportMethod = "websocket"
)

// Transport describes where notifications for a subscription go. Secret is
// only ever sent, never returned.
type Transport struct {
	Method    TransportMethod `json:"method"`
	Callback  string          `json:"callback,omitempty"`
	Secret    string          `json:"secret,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
}

// WebhookTransport returns a webhook transport delivering to callback,
// signed with secret.
func WebhookTransport(callback, secret string) Transport {
	return Transport{Method: TransportWebhook, Callback: callback, Secret: secret}
}

// Subscription describes a server-side subscription.
type Subscription struct {
	ID      types.EventSubID `json:"id"`
	Type    EventType        `json:"type"`
	Version string           `json:"version"`
	Status  Status           `json:"status"`
	Cost    int64            `json:"cost"`
	// Event-type specific condition, such as broadcaster_user_id.
	Condition map[string]string `json:"condition"`
	Transport Transport         `json:"transport"`
	CreatedAt time.Time         `json:"created_at"`
}

// Validate implements validation.Validatable.
func (s Subscription) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Type, validation.Required),
		validation.Field(&s.Version, validation.Required),
		validation.Field(&s.Status, validation.Required),
		validation.Field(&s.CreatedAt, validation.Required),
	)
}

// Key returns the (type, version) pair of the subscription.
func (s Subscription) Key() Key {
	return Key{Type: s.Type, Version: s.Version}
}
