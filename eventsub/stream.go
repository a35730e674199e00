package eventsub

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// StreamOnlineV1 subscribes to a broadcaster starting a stream.
type StreamOnlineV1 struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (StreamOnlineV1) EventType() EventType { return EventTypeStreamOnline }
func (StreamOnlineV1) Version() string { return "1" }
func (StreamOnlineV1) Scopes() []types.Scope { return nil }

// StreamOnlineV1Payload is sent when a stream goes live.
type StreamOnlineV1Payload struct {
	BroadcasterUser
	ID types.StreamID `json:"id"`
	// One of live, playlist, watch_party, premiere or rerun.
	Type      string    `json:"type"`
	StartedAt time.Time `json:"started_at"`
}

func (*StreamOnlineV1Payload) isEvent() {}

// Validate implements validation.Validatable.
func (p StreamOnlineV1Payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Type, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
	)
}

// StreamOfflineV1 subscribes to a broadcaster stopping a stream.
type StreamOfflineV1 struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (StreamOfflineV1) EventType() EventType { return EventTypeStreamOffline }
func (StreamOfflineV1) Version() string { return "1" }
func (StreamOfflineV1) Scopes() []types.Scope { return nil }

// StreamOfflineV1Payload is sent when a stream ends.
type StreamOfflineV1Payload struct {
	BroadcasterUser
}

func (*StreamOfflineV1Payload) isEvent() {}
