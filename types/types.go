// Package types holds the wire types shared by the helix and eventsub packages.
package types

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UserID is a Twitch user id.
type UserID = string

// UserName is a login name. Logins are never capitalized.
type UserName = string

// DisplayName is the capitalized display name of a user.
type DisplayName = string

// CategoryID is a game or category id.
type CategoryID = string

// PollID is the id of a channel poll.
type PollID = string

// PollChoiceID is the id of one choice in a poll.
type PollChoiceID = string

// PredictionID is the id of a channel points prediction.
type PredictionID = string

// PredictionOutcomeID is the id of one outcome of a prediction.
type PredictionOutcomeID = string

// EventSubID is the id of an EventSub subscription.
type EventSubID = string

// StreamID is the id of a live stream.
type StreamID = string

// VideoID is the id of a video.
type VideoID = string

// Cursor is an opaque pagination token. It is echoed back verbatim and never
// inspected.
type Cursor string

// TwitchCategory is a game or category.
type TwitchCategory struct {
	// Template URL for the game's box art.
	BoxArtURL string     `json:"box_art_url"`
	ID        CategoryID `json:"id"`
	Name      string     `json:"name"`
}

// Validate implements validation.Validatable.
func (c TwitchCategory) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required),
	)
}

// PollChoice is one choice of a poll, including its vote counts.
type PollChoice struct {
	ID                 PollChoiceID `json:"id"`
	Title              string       `json:"title"`
	BitsVotes          *int64       `json:"bits_votes,omitempty"`
	ChannelPointsVotes *int64       `json:"channel_points_votes,omitempty"`
	Votes              *int64       `json:"votes,omitempty"`
}

// Validate implements validation.Validatable.
func (c PollChoice) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Title, validation.Required),
	)
}

// Voting describes whether a poll accepts Bits or Channel Points votes.
type Voting struct {
	IsEnabled     bool  `json:"is_enabled"`
	AmountPerVote int64 `json:"amount_per_vote"`
}

// PredictionOutcome is one possible outcome of a prediction.
type PredictionOutcome struct {
	ID            PredictionOutcomeID `json:"id"`
	Title         string              `json:"title"`
	Users         *int64              `json:"users,omitempty"`
	ChannelPoints *int64              `json:"channel_points,omitempty"`
	// Top predictors is "array or null" on the wire; null decodes to empty.
	TopPredictors NullableSlice[TopPredictor] `json:"top_predictors"`
	Color         string                      `json:"color"`
}

// UnmarshalJSON implements json.Unmarshaler. An absent top_predictors
// decodes like a null one.
func (o *PredictionOutcome) UnmarshalJSON(data []byte) error {
	type plain PredictionOutcome
	if err := json.Unmarshal(data, (*plain)(o)); err != nil {
		return err
	}
	if o.TopPredictors == nil {
		o.TopPredictors = NullableSlice[TopPredictor]{}
	}
	return nil
}

// Validate implements validation.Validatable.
func (o PredictionOutcome) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.Title, validation.Required),
		validation.Field(&o.Color, validation.Required),
		validation.Field(&o.TopPredictors),
	)
}

// TopPredictor is a user who spent channel points on an outcome.
type TopPredictor struct {
	UserID            UserID      `json:"user_id"`
	UserLogin         UserName    `json:"user_login"`
	UserName          DisplayName `json:"user_name"`
	ChannelPointsWon  *int64      `json:"channel_points_won"`
	ChannelPointsUsed int64       `json:"channel_points_used"`
}

// Validate implements validation.Validatable.
func (p TopPredictor) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.UserID, validation.Required),
		validation.Field(&p.UserLogin, validation.Required),
	)
}
