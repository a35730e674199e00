package eventsub

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// ChannelFollowV2 subscribes to new followers of a channel.
type ChannelFollowV2 struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
	// A moderator of the channel, or the broadcaster, whose token is used.
	ModeratorUserID types.UserID `json:"moderator_user_id"`
}

func (ChannelFollowV2) EventType() EventType { return EventTypeChannelFollow }
func (ChannelFollowV2) Version() string { return "2" }

func (ChannelFollowV2) Scopes() []types.Scope {
	return []types.Scope{types.ScopeModeratorReadFollowers}
}

// ChannelFollowV2Payload is sent when a user follows the channel.
type ChannelFollowV2Payload struct {
	EventUser
	BroadcasterUser
	FollowedAt time.Time `json:"followed_at"`
}

func (*ChannelFollowV2Payload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelFollowV2Payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.EventUser),
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.FollowedAt, validation.Required),
	)
}

// ChannelUpdateV2 subscribes to title and category changes of a channel.
type ChannelUpdateV2 struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelUpdateV2) EventType() EventType { return EventTypeChannelUpdate }
func (ChannelUpdateV2) Version() string { return "2" }
func (ChannelUpdateV2) Scopes() []types.Scope { return nil }

// ChannelUpdateV2Payload is sent when a broadcaster updates channel properties.
type ChannelUpdateV2Payload struct {
	BroadcasterUser
	Title        string           `json:"title"`
	Language     string           `json:"language"`
	CategoryID   types.CategoryID `json:"category_id"`
	CategoryName string           `json:"category_name"`
	// Content classification label ids; "array or null" on the wire.
	ContentClassificationLabels types.NullableSlice[string] `json:"content_classification_labels"`
}

func (*ChannelUpdateV2Payload) isEvent() {}

// UnmarshalJSON implements json.Unmarshaler. Absent labels decode like null
// ones.
func (p *ChannelUpdateV2Payload) UnmarshalJSON(data []byte) error {
	type plain ChannelUpdateV2Payload
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	if p.ContentClassificationLabels == nil {
		p.ContentClassificationLabels = types.NullableSlice[string]{}
	}
	return nil
}

// Validate implements validation.Validatable. Title and category may be
// cleared by the broadcaster.
func (p ChannelUpdateV2Payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.Language, validation.Required),
	)
}

// ChannelSubscribeV1 subscribes to new subscriptions to a channel. Resubs
// are not included.
type ChannelSubscribeV1 struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelSubscribeV1) EventType() EventType { return EventTypeChannelSubscribe }
func (ChannelSubscribeV1) Version() string { return "1" }

func (ChannelSubscribeV1) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadSubscriptions}
}

// ChannelSubscribeV1Payload is sent when a user subscribes to the channel.
type ChannelSubscribeV1Payload struct {
	EventUser
	BroadcasterUser
	Tier   types.SubscriptionTier `json:"tier"`
	IsGift bool                   `json:"is_gift"`
}

func (*ChannelSubscribeV1Payload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelSubscribeV1Payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.EventUser),
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.Tier),
	)
}
