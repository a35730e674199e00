package eventsub

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/arvarik/twitch-go/types"
)

// Entry binds one (type, version) key to its payload decoder.
type Entry struct {
	Key Key
	// Scopes the subscription requires, taken from the condition type.
	Scopes []types.Scope
	// SubscriptionType is the stable name of the condition type, such as
	// "ChannelFollowV2".
	SubscriptionType string

	decode func(json.RawMessage) (Event, error)
}

// Decode decodes the event object of a notification into the entry's
// payload type and checks the fields the payload guarantees.
func (e Entry) Decode(raw json.RawMessage) (Event, error) {
	if e.decode == nil {
		return nil, &UnrecognizedEventError{Key: e.Key}
	}
	return e.decode(raw)
}

// Register builds the entry for condition C and payload P. The payload's
// pointer type must implement Event, which keeps the union closed.
func Register[C Condition, P any, PT interface {
	*P
	Event
}]() Entry {
	var c C
	key := ConditionKey(c)
	return Entry{
		Key:              key,
		Scopes:           c.Scopes(),
		SubscriptionType: reflect.TypeFor[C]().Name(),
		decode: func(raw json.RawMessage) (Event, error) {
			p := PT(new(P))
			if err := json.Unmarshal(raw, p); err != nil {
				return nil, &DeserializeError{Key: key, Body: string(raw), Err: err}
			}
			if err := validation.Validate(p); err != nil {
				return nil, &DeserializeError{Key: key, Body: string(raw), Err: err}
			}
			return p, nil
		},
	}
}

// Registry maps (type, version) keys to payload decoders. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	entries map[Key]Entry
}

// NewRegistry builds a registry from entries. Every duplicate key is
// reported.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make(map[Key]Entry, len(entries))}
	var result *multierror.Error
	for _, e := range entries {
		if _, dup := r.entries[e.Key]; dup {
			result = multierror.Append(result, fmt.Errorf("eventsub: duplicate registry entry %s", e.Key))
			continue
		}
		r.entries[e.Key] = e
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// Lookup returns the entry for k, or an *UnrecognizedEventError.
func (r *Registry) Lookup(k Key) (Entry, error) {
	e, ok := r.entries[k]
	if !ok {
		return Entry{}, &UnrecognizedEventError{Key: k}
	}
	return e, nil
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Or(cmp.Compare(a.Type, b.Type), cmp.Compare(a.Version, b.Version))
	})
	return keys
}

// DecodeEvent decodes raw as the payload registered for k. An unregistered
// key is not an error: the raw JSON comes back as an *UnrecognizedEvent.
func (r *Registry) DecodeEvent(k Key, raw json.RawMessage) (Event, error) {
	e, ok := r.entries[k]
	if !ok {
		return &UnrecognizedEvent{Key: k, Raw: bytes.Clone(raw)}, nil
	}
	return e.Decode(raw)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(
		Register[ChannelFollowV2, ChannelFollowV2Payload](),
		Register[ChannelUpdateV2, ChannelUpdateV2Payload](),
		Register[ChannelSubscribeV1, ChannelSubscribeV1Payload](),
		Register[StreamOnlineV1, StreamOnlineV1Payload](),
		Register[StreamOfflineV1, StreamOfflineV1Payload](),
		Register[ChannelPollBeginBeta, ChannelPollBeginBetaPayload](),
		Register[ChannelPollProgressBeta, ChannelPollProgressBetaPayload](),
		Register[ChannelPollEndBeta, ChannelPollEndBetaPayload](),
		Register[ChannelPredictionBeginBeta, ChannelPredictionBeginBetaPayload](),
		Register[ChannelPredictionProgressBeta, ChannelPredictionProgressBetaPayload](),
		Register[ChannelPredictionLockBeta, ChannelPredictionLockBetaPayload](),
		Register[ChannelPredictionEndBeta, ChannelPredictionEndBetaPayload](),
		Register[ChannelPredictionEndV1, ChannelPredictionEndV1Payload](),
		Register[UserAuthorizationRevokeV1, UserAuthorizationRevokeV1Payload](),
	)
	if err != nil {
		panic(err)
	}
	return r
})

// DefaultRegistry returns the registry of every payload this package
// defines.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}
