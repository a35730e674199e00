package helix

import (
	"context"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// Poll is a channel poll.
type Poll struct {
	ID                         types.PollID       `json:"id"`
	BroadcasterID              types.UserID       `json:"broadcaster_id"`
	BroadcasterName            types.DisplayName  `json:"broadcaster_name"`
	BroadcasterLogin           types.UserName     `json:"broadcaster_login"`
	Title                      string             `json:"title"`
	Choices                    []types.PollChoice `json:"choices"`
	BitsVotingEnabled          bool               `json:"bits_voting_enabled"`
	BitsPerVote                int64              `json:"bits_per_vote"`
	ChannelPointsVotingEnabled bool               `json:"channel_points_voting_enabled"`
	ChannelPointsPerVote       int64              `json:"channel_points_per_vote"`
	Status                     types.PollStatus   `json:"status"`
	Duration                   int64              `json:"duration"`
	StartedAt                  time.Time          `json:"started_at"`
	EndedAt                    *time.Time         `json:"ended_at"`
}

// Validate implements validation.Validatable.
func (p Poll) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.BroadcasterID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Choices, validation.Required),
		validation.Field(&p.Status, validation.Required),
		validation.Field(&p.StartedAt, validation.Required),
	)
}

// GetPollsRequest lists a channel's polls. Poll data is kept for 90 days.
type GetPollsRequest struct {
	BroadcasterID types.UserID   `url:"broadcaster_id"`
	ID            []types.PollID `url:"id,omitempty"`
	After         *types.Cursor  `url:"after,omitempty"`
	First         *int           `url:"first,omitempty"`
}

// GetPollsOptions are the optional fields of GetPollsRequest.
type GetPollsOptions struct {
	IDs   []types.PollID
	First int
}

// NewGetPollsRequest creates a request for broadcasterID. opts may be nil.
func NewGetPollsRequest(broadcasterID types.UserID, opts *GetPollsOptions) *GetPollsRequest {
	r := &GetPollsRequest{BroadcasterID: broadcasterID}
	if opts != nil {
		r.ID = opts.IDs
		if opts.First > 0 {
			first := opts.First
			r.First = &first
		}
	}
	return r
}

func (r *GetPollsRequest) Path() string { return "polls" }
func (r *GetPollsRequest) Method() string { return http.MethodGet }
func (r *GetPollsRequest) Query() (url.Values, error) { return EncodeQuery(r) }

func (r *GetPollsRequest) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadPolls}
}

// WithCursor implements PaginatedRequest.
func (r *GetPollsRequest) WithCursor(cursor types.Cursor) PaginatedRequest {
	next := *r
	next.After = cursorPtr(cursor)
	return &next
}

// Validate implements validation.Validatable.
func (r *GetPollsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BroadcasterID, validation.Required),
		validation.Field(&r.ID, validation.Length(0, 20)),
		validation.Field(&r.First, validation.Min(1), validation.Max(20)),
	)
}

// NewPollChoice is a choice offered when creating a poll.
type NewPollChoice struct {
	Title string `json:"title"`
}

// Validate implements validation.Validatable.
func (c NewPollChoice) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.RuneLength(1, 25)),
	)
}

// CreatePollRequest creates a poll on the broadcaster's channel.
type CreatePollRequest struct {
	BroadcasterID types.UserID    `json:"broadcaster_id"`
	Title         string          `json:"title"`
	Choices       []NewPollChoice `json:"choices"`
	// Seconds the poll runs for, 15 to 1800.
	Duration                   int64  `json:"duration"`
	ChannelPointsVotingEnabled *bool  `json:"channel_points_voting_enabled,omitempty"`
	ChannelPointsPerVote       *int64 `json:"channel_points_per_vote,omitempty"`
}

// CreatePollOptions are the optional fields of CreatePollRequest.
type CreatePollOptions struct {
	// Enables channel points voting at the given cost per extra vote.
	ChannelPointsPerVote int64
}

// NewCreatePollRequest creates a poll request. opts may be nil.
func NewCreatePollRequest(broadcasterID types.UserID, title string, choices []string, duration time.Duration, opts *CreatePollOptions) *CreatePollRequest {
	r := &CreatePollRequest{
		BroadcasterID: broadcasterID,
		Title:         title,
		Duration:      int64(duration / time.Second),
	}
	for _, c := range choices {
		r.Choices = append(r.Choices, NewPollChoice{Title: c})
	}
	if opts != nil && opts.ChannelPointsPerVote > 0 {
		enabled := true
		perVote := opts.ChannelPointsPerVote
		r.ChannelPointsVotingEnabled = &enabled
		r.ChannelPointsPerVote = &perVote
	}
	return r
}

func (r *CreatePollRequest) Path() string { return "polls" }
func (r *CreatePollRequest) Method() string { return http.MethodPost }
func (r *CreatePollRequest) Body() any { return r }

func (r *CreatePollRequest) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelManagePolls}
}

// Validate implements validation.Validatable.
func (r *CreatePollRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BroadcasterID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 60)),
		validation.Field(&r.Choices, validation.Required, validation.Length(2, 5)),
		validation.Field(&r.Duration, validation.Required, validation.Min(int64(15)), validation.Max(int64(1800))),
		validation.Field(&r.ChannelPointsPerVote, validation.Min(int64(1)), validation.Max(int64(1000000))),
	)
}

// EndPollRequest ends an active poll, either showing the result
// (PollStatusTerminated) or hiding it (PollStatusArchived).
type EndPollRequest struct {
	BroadcasterID types.UserID     `json:"broadcaster_id"`
	ID            types.PollID     `json:"id"`
	Status        types.PollStatus `json:"status"`
}

// NewEndPollRequest creates an end poll request.
func NewEndPollRequest(broadcasterID types.UserID, id types.PollID, status types.PollStatus) *EndPollRequest {
	return &EndPollRequest{BroadcasterID: broadcasterID, ID: id, Status: status}
}

func (r *EndPollRequest) Path() string { return "polls" }
func (r *EndPollRequest) Method() string { return http.MethodPatch }
func (r *EndPollRequest) Body() any { return r }

func (r *EndPollRequest) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelManagePolls}
}

// Validate implements validation.Validatable.
func (r *EndPollRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BroadcasterID, validation.Required),
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Status, validation.Required, validation.In(types.PollStatusTerminated, types.PollStatusArchived)),
	)
}

// PollsService handles communication with the poll related methods.
type PollsService struct {
	client *Client
}

// Get fetches one page of polls.
func (s *PollsService) Get(ctx context.Context, req *GetPollsRequest) (*Response[[]Poll], error) {
	return Do[[]Poll](ctx, s.client, req)
}

// All returns a Pager over every poll matching req.
func (s *PollsService) All(req *GetPollsRequest) *Pager[Poll] {
	return NewPager[Poll](s.client, req)
}

// Create starts a poll and returns it.
func (s *PollsService) Create(ctx context.Context, req *CreatePollRequest) (*Response[Poll], error) {
	return DoSingle[Poll](ctx, s.client, req)
}

// End ends a poll and returns its final state.
func (s *PollsService) End(ctx context.Context, req *EndPollRequest) (*Response[Poll], error) {
	return DoSingle[Poll](ctx, s.client, req)
}
