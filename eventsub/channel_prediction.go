package eventsub

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// ChannelPredictionBeginBeta subscribes to predictions starting on a channel.
type ChannelPredictionBeginBeta struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPredictionBeginBeta) EventType() EventType { return EventTypeChannelPredictionBegin }
func (ChannelPredictionBeginBeta) Version() string { return "beta" }

func (ChannelPredictionBeginBeta) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPredictions}
}

// ChannelPredictionBeginBetaPayload is sent when a prediction begins.
type ChannelPredictionBeginBetaPayload struct {
	BroadcasterUser
	ID        types.PredictionID        `json:"id"`
	Title     string                    `json:"title"`
	Outcomes  []types.PredictionOutcome `json:"outcomes"`
	StartedAt time.Time                 `json:"started_at"`
	LocksAt   time.Time                 `json:"locks_at"`
}

func (*ChannelPredictionBeginBetaPayload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelPredictionBeginBetaPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Outcomes, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
		validation.Field(&p.LocksAt, validation.Required),
	)
}

// ChannelPredictionProgressBeta subscribes to users participating in a
// channel's predictions.
type ChannelPredictionProgressBeta struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPredictionProgressBeta) EventType() EventType {
	return EventTypeChannelPredictionProgress
}

func (ChannelPredictionProgressBeta) Version() string { return "beta" }

func (ChannelPredictionProgressBeta) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPredictions}
}

// ChannelPredictionProgressBetaPayload is sent when users participate in a
// prediction.
type ChannelPredictionProgressBetaPayload struct {
	BroadcasterUser
	ID        types.PredictionID        `json:"id"`
	Title     string                    `json:"title"`
	Outcomes  []types.PredictionOutcome `json:"outcomes"`
	StartedAt time.Time                 `json:"started_at"`
	LocksAt   time.Time                 `json:"locks_at"`
}

func (*ChannelPredictionProgressBetaPayload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelPredictionProgressBetaPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Outcomes, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
		validation.Field(&p.LocksAt, validation.Required),
	)
}

// ChannelPredictionLockBeta subscribes to predictions locking on a channel.
type ChannelPredictionLockBeta struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPredictionLockBeta) EventType() EventType { return EventTypeChannelPredictionLock }
func (ChannelPredictionLockBeta) Version() string { return "beta" }

func (ChannelPredictionLockBeta) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPredictions}
}

// ChannelPredictionLockBetaPayload is sent when a prediction stops taking
// predictions.
type ChannelPredictionLockBetaPayload struct {
	BroadcasterUser
	ID        types.PredictionID        `json:"id"`
	Title     string                    `json:"title"`
	Outcomes  []types.PredictionOutcome `json:"outcomes"`
	StartedAt time.Time                 `json:"started_at"`
	LockedAt  time.Time                 `json:"locked_at"`
}

func (*ChannelPredictionLockBetaPayload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelPredictionLockBetaPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Outcomes, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
		validation.Field(&p.LockedAt, validation.Required),
	)
}

// ChannelPredictionEndBeta subscribes to predictions ending on a channel,
// as delivered during the beta.
type ChannelPredictionEndBeta struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPredictionEndBeta) EventType() EventType { return EventTypeChannelPredictionEnd }
func (ChannelPredictionEndBeta) Version() string { return "beta" }

func (ChannelPredictionEndBeta) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPredictions}
}

// ChannelPredictionEndBetaPayload is sent when a prediction ends. The beta
// shape always names a winner and repeats the lock time.
type ChannelPredictionEndBetaPayload struct {
	BroadcasterUser
	ID               types.PredictionID        `json:"id"`
	Title            string                    `json:"title"`
	WinningOutcomeID types.PredictionOutcomeID `json:"winning_outcome_id"`
	Outcomes         []types.PredictionOutcome `json:"outcomes"`
	// Resolved or canceled.
	Status    types.PredictionStatus `json:"status"`
	StartedAt time.Time              `json:"started_at"`
	LockedAt  time.Time              `json:"locked_at"`
	EndedAt   time.Time              `json:"ended_at"`
}

func (*ChannelPredictionEndBetaPayload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelPredictionEndBetaPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Outcomes, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
		validation.Field(&p.WinningOutcomeID, validation.Required),
		validation.Field(&p.Status, validation.Required),
		validation.Field(&p.LockedAt, validation.Required),
		validation.Field(&p.EndedAt, validation.Required),
	)
}

// ChannelPredictionEndV1 subscribes to predictions ending on a channel.
type ChannelPredictionEndV1 struct {
	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPredictionEndV1) EventType() EventType { return EventTypeChannelPredictionEnd }
func (ChannelPredictionEndV1) Version() string { return "1" }

func (ChannelPredictionEndV1) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPredictions}
}

// ChannelPredictionEndV1Payload is sent when a prediction ends. A canceled
// prediction has no winning outcome.
type ChannelPredictionEndV1Payload struct {
	BroadcasterUser
	ID               types.PredictionID         `json:"id"`
	Title            string                     `json:"title"`
	WinningOutcomeID *types.PredictionOutcomeID `json:"winning_outcome_id"`
	Outcomes         []types.PredictionOutcome  `json:"outcomes"`
	Status           types.PredictionStatus     `json:"status"`
	StartedAt        time.Time                  `json:"started_at"`
	EndedAt          time.Time                  `json:"ended_at"`
}

func (*ChannelPredictionEndV1Payload) isEvent() {}

// Validate implements validation.Validatable.
func (p ChannelPredictionEndV1Payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BroadcasterUser),
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Outcomes, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
		validation.Field(&p.Status, validation.Required),
		validation.Field(&p.EndedAt, validation.Required),
	)
}
