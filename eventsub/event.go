package eventsub

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// Condition is the typed condition of a subscription. Its type fixes the
// event type and version a subscription request is created for.
type Condition interface {
	EventType() EventType
	Version() string
	// Scopes lists the authorization the subscription requires.
	Scopes() []types.Scope
}

// ConditionKey returns the registry key a condition subscribes to.
func ConditionKey(c Condition) Key {
	return Key{Type: c.EventType(), Version: c.Version()}
}

// Event is a decoded notification payload. The set of implementations is
// closed: one pointer type per registered (type, version) pair plus
// *UnrecognizedEvent.
type Event interface {
	isEvent()
}

// UnrecognizedEvent carries the event of a notification whose (type,
// version) pair is not registered, untouched.
type UnrecognizedEvent struct {
	Key Key
	Raw json.RawMessage
}

func (*UnrecognizedEvent) isEvent() {}

// MarshalJSON writes the original event back out.
func (e *UnrecognizedEvent) MarshalJSON() ([]byte, error) {
	if len(e.Raw) == 0 {
		return []byte("null"), nil
	}
	return e.Raw, nil
}

// BroadcasterUser identifies the broadcaster an event happened on.
type BroadcasterUser struct {
	BroadcasterUserID    types.UserID      `json:"broadcaster_user_id"`
	BroadcasterUserLogin types.UserName    `json:"broadcaster_user_login"`
	BroadcasterUserName  types.DisplayName `json:"broadcaster_user_name"`
}

// Validate implements validation.Validatable.
func (b BroadcasterUser) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.BroadcasterUserID, validation.Required),
		validation.Field(&b.BroadcasterUserLogin, validation.Required),
	)
}

// EventUser identifies the user who caused an event.
type EventUser struct {
	UserID    types.UserID      `json:"user_id"`
	UserLogin types.UserName    `json:"user_login"`
	UserName  types.DisplayName `json:"user_name"`
}

// Validate implements validation.Validatable.
func (u EventUser) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.UserID, validation.Required),
		validation.Field(&u.UserLogin, validation.Required),
	)
}
