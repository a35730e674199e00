package helix

import (
	"context"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// GetPredictionsRequest lists a channel's predictions. Prediction data is
// kept for 90 days.
type GetPredictionsRequest struct {
	// The broadcaster running predictions. Must match the user in the token.
	BroadcasterID types.UserID `url:"broadcaster_id"`
	// Filters results to specific predictions. Maximum: 25.
	ID    []types.PredictionID `url:"id,omitempty"`
	After *types.Cursor        `url:"after,omitempty"`
	// Maximum number of items per page. Maximum: 25.
	First *int `url:"first,omitempty"`
}

// GetPredictionsOptions are the optional fields of GetPredictionsRequest.
type GetPredictionsOptions struct {
	IDs   []types.PredictionID
	First int
}

// NewGetPredictionsRequest creates a request for broadcasterID. opts may be nil.
func NewGetPredictionsRequest(broadcasterID types.UserID, opts *GetPredictionsOptions) *GetPredictionsRequest {
	r := &GetPredictionsRequest{BroadcasterID: broadcasterID}
	if opts != nil {
		r.ID = opts.IDs
		if opts.First > 0 {
			first := opts.First
			r.First = &first
		}
	}
	return r
}

func (r *GetPredictionsRequest) Path() string { return "predictions" }
func (r *GetPredictionsRequest) Method() string { return http.MethodGet }
func (r *GetPredictionsRequest) Query() (url.Values, error) { return EncodeQuery(r) }

func (r *GetPredictionsRequest) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPredictions}
}

// WithCursor implements PaginatedRequest.
func (r *GetPredictionsRequest) WithCursor(cursor types.Cursor) PaginatedRequest {
	next := *r
	next.After = cursorPtr(cursor)
	return &next
}

// Validate implements validation.Validatable.
func (r *GetPredictionsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BroadcasterID, validation.Required),
		validation.Field(&r.ID, validation.Length(0, 25)),
		validation.Field(&r.First, validation.Min(1), validation.Max(25)),
	)
}

// Prediction is a channel points prediction.
type Prediction struct {
	ID               types.PredictionID `json:"id"`
	BroadcasterID    types.UserID       `json:"broadcaster_id"`
	BroadcasterName  types.DisplayName  `json:"broadcaster_name"`
	BroadcasterLogin types.UserName     `json:"broadcaster_login"`
	Title            string             `json:"title"`
	// Null while the prediction is active.
	WinningOutcomeID *types.PredictionOutcomeID `json:"winning_outcome_id"`
	Outcomes         []types.PredictionOutcome  `json:"outcomes"`
	// Total duration in seconds.
	PredictionWindow int64                  `json:"prediction_window"`
	Status           types.PredictionStatus `json:"status"`
	CreatedAt        time.Time              `json:"created_at"`
	EndedAt          *time.Time             `json:"ended_at"`
	LockedAt         *time.Time             `json:"locked_at"`
}

// Validate implements validation.Validatable.
func (p Prediction) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.BroadcasterID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Outcomes, validation.Required),
		validation.Field(&p.Status, validation.Required),
		validation.Field(&p.CreatedAt, validation.Required),
	)
}

// PredictionsService handles communication with the prediction related methods.
type PredictionsService struct {
	client *Client
}

// Get fetches one page of predictions.
func (s *PredictionsService) Get(ctx context.Context, req *GetPredictionsRequest) (*Response[[]Prediction], error) {
	return Do[[]Prediction](ctx, s.client, req)
}

// All returns a Pager over every prediction matching req.
func (s *PredictionsService) All(req *GetPredictionsRequest) *Pager[Prediction] {
	return NewPager[Prediction](s.client, req)
}
