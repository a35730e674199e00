package eventsub

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// ChannelPollBeginBeta subscribes to polls starting on a channel.
type ChannelPollBeginBeta struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPollBeginBeta) EventType() EventType { return EventTypeChannelPollBegin }
func (ChannelPollBeginBeta) Version() string { return "beta" }

func (ChannelPollBeginBeta) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPolls}
}

// ChannelPollBeginBetaPayload is sent when a poll begins.
type ChannelPollBeginBetaPayload struct {
	BroadcasterUser
	ID                  types.PollID       `json:"id"`
	Title               string             `json:"title"`
	Choices             []types.PollChoice `json:"choices"`
	BitsVoting          types.Voting       `json:"bits_voting"`
	ChannelPointsVoting types.Voting       `json:"channel_points_voting"`
	StartedAt           time.Time          `json:"started_at"`
	EndsAt              time.Time          `json:"ends_at"`
}

func (*ChannelPollBeginBetaPayload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelPollBeginBetaPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Choices, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
		validation.Field(&p.EndsAt, validation.Required),
	)
}

// ChannelPollProgressBeta subscribes to votes on a channel's polls.
type ChannelPollProgressBeta struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPollProgressBeta) EventType() EventType { return EventTypeChannelPollProgress }
func (ChannelPollProgressBeta) Version() string { return "beta" }

func (ChannelPollProgressBeta) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPolls}
}

// ChannelPollProgressBetaPayload is sent when a user responds to a poll.
// Choices include the running vote counts.
type ChannelPollProgressBetaPayload struct {
	BroadcasterUser
	ID                  types.PollID       `json:"id"`
	Title               string             `json:"title"`
	Choices             []types.PollChoice `json:"choices"`
	BitsVoting          types.Voting       `json:"bits_voting"`
	ChannelPointsVoting types.Voting       `json:"channel_points_voting"`
	StartedAt           time.Time          `json:"started_at"`
	EndsAt              time.Time          `json:"ends_at"`
}

func (*ChannelPollProgressBetaPayload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelPollProgressBetaPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Choices, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
		validation.Field(&p.EndsAt, validation.Required),
	)
}

// ChannelPollEndBeta subscribes to polls ending on a channel.
type ChannelPollEndBeta struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPollEndBeta) EventType() EventType { return EventTypeChannelPollEnd }
func (ChannelPollEndBeta) Version() string { return "beta" }

func (ChannelPollEndBeta) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPolls}
}

// ChannelPollEndBetaPayload is sent when a poll ends.
type ChannelPollEndBetaPayload struct {
	BroadcasterUser
	ID                  types.PollID       `json:"id"`
	Title               string             `json:"title"`
	Choices             []types.PollChoice `json:"choices"`
	BitsVoting          types.Voting       `json:"bits_voting"`
	ChannelPointsVoting types.Voting       `json:"channel_points_voting"`
	// One of completed, archived or terminated.
	Status    types.PollStatus `json:"status"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   time.Time        `json:"ended_at"`
}

func (*ChannelPollEndBetaPayload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelPollEndBetaPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Choices, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
		validation.Field(&p.Status, validation.Required),
		validation.Field(&p.EndedAt, validation.Required),
	)
}
