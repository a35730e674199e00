package eventsub

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType is the value of the Twitch-Eventsub-Message-Type header.
type MessageType string

const (
	MessageTypeNotification MessageType = "notification"
	MessageTypeVerification MessageType = "webhook_callback_verification"
	MessageTypeRevocation   MessageType = "revocation"
)

var (
	errMissingEvent     = errors.New("notification has no event")
	errMissingChallenge = errors.New("verification has no challenge")
)

// Message is a decoded webhook body: a *Notification, a
// *VerificationChallenge or a *Revocation.
type Message interface {
	// Sub returns the subscription the message belongs to.
	Sub() Subscription
	isMessage()
}

// Notification carries one event for a subscription.
type Notification struct {
	Subscription Subscription `json:"subscription"`
	Event        Event        `json:"event"`
}

func (n *Notification) Sub() Subscription { return n.Subscription }
func (*Notification) isMessage() {}

// VerificationChallenge is sent once after a webhook subscription is
// created. The challenge must be echoed back as the response body.
type VerificationChallenge struct {
	Subscription Subscription `json:"subscription"`
	Challenge    string       `json:"challenge"`
}

func (v *VerificationChallenge) Sub() Subscription { return v.Subscription }
func (*VerificationChallenge) isMessage() {}

// Revocation reports that a subscription is no longer active. The
// subscription status says why.
type Revocation struct {
	Subscription Subscription `json:"subscription"`
}

func (r *Revocation) Sub() Subscription { return r.Subscription }
func (*Revocation) isMessage() {}

type envelope struct {
	Subscription Subscription    `json:"subscription"`
	Event        json.RawMessage `json:"event"`
	Challenge    *string         `json:"challenge"`
}

func (e *envelope) hasEvent() bool {
	return len(e.Event) > 0 && !bytes.Equal(bytes.TrimSpace(e.Event), []byte("null"))
}

// ParseMessage decodes body according to the message type header.
// Notification events are decoded through the registry.
func (r *Registry) ParseMessage(typ MessageType, body []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DeserializeError{Body: string(body), Err: err}
	}
	key := env.Subscription.Key()

	switch typ {
	case MessageTypeNotification:
		if !env.hasEvent() {
			return nil, &DeserializeError{Key: key, Body: string(body), Err: errMissingEvent}
		}
		ev, err := r.DecodeEvent(key, env.Event)
		if err != nil {
			return nil, err
		}
		return &Notification{Subscription: env.Subscription, Event: ev}, nil
	case MessageTypeVerification:
		if env.Challenge == nil {
			return nil, &DeserializeError{Key: key, Body: string(body), Err: errMissingChallenge}
		}
		return &VerificationChallenge{Subscription: env.Subscription, Challenge: *env.Challenge}, nil
	case MessageTypeRevocation:
		return &Revocation{Subscription: env.Subscription}, nil
	default:
		return nil, &DeserializeError{Key: key, Body: string(body), Err: fmt.Errorf("unknown message type %q", typ)}
	}
}

// Parse decodes body when the message type header is not available,
// inferring the type from the fields present.
func (r *Registry) Parse(body []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DeserializeError{Body: string(body), Err: err}
	}
	switch {
	case env.Challenge != nil:
		return r.ParseMessage(MessageTypeVerification, body)
	case env.hasEvent():
		return r.ParseMessage(MessageTypeNotification, body)
	default:
		return r.ParseMessage(MessageTypeRevocation, body)
	}
}

// ParseMessage decodes body with the default registry.
func ParseMessage(typ MessageType, body []byte) (Message, error) {
	return DefaultRegistry().ParseMessage(typ, body)
}

// Parse decodes body with the default registry, inferring the message type.
func Parse(body []byte) (Message, error) {
	return DefaultRegistry().Parse(body)
}
