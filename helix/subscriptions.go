package helix

import (
	"context"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// CheckUserSubscriptionRequest checks whether the token's user subscribes
// to a broadcaster.
type CheckUserSubscriptionRequest struct {
	// User ID of the broadcaster.
	BroadcasterID types.UserID `url:"broadcaster_id"`
	// Accounts to check. Defaults to the user in the token.
	UserID []types.UserID `url:"user_id,omitempty"`
}

// NewCheckUserSubscriptionRequest creates a request for broadcasterID.
func NewCheckUserSubscriptionRequest(broadcasterID types.UserID, userIDs ...types.UserID) *CheckUserSubscriptionRequest {
	return &CheckUserSubscriptionRequest{BroadcasterID: broadcasterID, UserID: userIDs}
}

func (r *CheckUserSubscriptionRequest) Path() string { return "subscriptions/user" }
func (r *CheckUserSubscriptionRequest) Method() string { return http.MethodGet }
func (r *CheckUserSubscriptionRequest) Query() (url.Values, error) { return EncodeQuery(r) }

func (r *CheckUserSubscriptionRequest) Scopes() []types.Scope {
	return []types.Scope{types.ScopeUserReadSubscriptions}
}

// Validate implements validation.Validatable.
func (r *CheckUserSubscriptionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BroadcasterID, validation.Required),
		validation.Field(&r.UserID, validation.Length(0, 100)),
	)
}

// UserSubscription is the answer to CheckUserSubscriptionRequest.
type UserSubscription struct {
	BroadcasterID    types.UserID      `json:"broadcaster_id"`
	BroadcasterLogin types.UserName    `json:"broadcaster_login"`
	BroadcasterName  types.DisplayName `json:"broadcaster_name"`
	IsGift           bool              `json:"is_gift"`
	// Set only when IsGift is true.
	GifterLogin *types.UserName        `json:"gifter_login,omitempty"`
	GifterName  *types.DisplayName     `json:"gifter_name,omitempty"`
	Tier        types.SubscriptionTier `json:"tier"`
}

// Validate implements validation.Validatable.
func (s UserSubscription) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.BroadcasterID, validation.Required),
		validation.Field(&s.Tier),
	)
}

// GetBroadcasterSubscriptionsRequest lists a broadcaster's subscribers.
type GetBroadcasterSubscriptionsRequest struct {
	BroadcasterID types.UserID   `url:"broadcaster_id"`
	UserID        []types.UserID `url:"user_id,omitempty"`
	After         *types.Cursor  `url:"after,omitempty"`
	First         *int           `url:"first,omitempty"`
}

// GetBroadcasterSubscriptionsOptions are the optional fields of
// GetBroadcasterSubscriptionsRequest.
type GetBroadcasterSubscriptionsOptions struct {
	UserIDs []types.UserID
	First   int
}

// NewGetBroadcasterSubscriptionsRequest creates a request for broadcasterID. opts may be nil.
func NewGetBroadcasterSubscriptionsRequest(broadcasterID types.UserID, opts *GetBroadcasterSubscriptionsOptions) *GetBroadcasterSubscriptionsRequest {
	r := &GetBroadcasterSubscriptionsRequest{BroadcasterID: broadcasterID}
	if opts != nil {
		r.UserID = opts.UserIDs
		if opts.First > 0 {
			first := opts.First
			r.First = &first
		}
	}
	return r
}

func (r *GetBroadcasterSubscriptionsRequest) Path() string { return "subscriptions" }
func (r *GetBroadcasterSubscriptionsRequest) Method() string { return http.MethodGet }
func (r *GetBroadcasterSubscriptionsRequest) Query() (url.Values, error) { return EncodeQuery(r) }

func (r *GetBroadcasterSubscriptionsRequest) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelReadSubscriptions}
}

// WithCursor implements PaginatedRequest.
func (r *GetBroadcasterSubscriptionsRequest) WithCursor(cursor types.Cursor) PaginatedRequest {
	next := *r
	next.After = cursorPtr(cursor)
	return &next
}

// Validate implements validation.Validatable.
func (r *GetBroadcasterSubscriptionsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BroadcasterID, validation.Required),
		validation.Field(&r.UserID, validation.Length(0, 100)),
		validation.Field(&r.First, validation.Min(1), validation.Max(100)),
	)
}

// BroadcasterSubscription is one subscriber of a broadcaster.
type BroadcasterSubscription struct {
	BroadcasterID    types.UserID           `json:"broadcaster_id"`
	BroadcasterLogin types.UserName         `json:"broadcaster_login"`
	BroadcasterName  types.DisplayName      `json:"broadcaster_name"`
	GifterID         types.UserID           `json:"gifter_id"`
	GifterLogin      types.UserName         `json:"gifter_login"`
	GifterName       types.DisplayName      `json:"gifter_name"`
	IsGift           bool                   `json:"is_gift"`
	PlanName         string                 `json:"plan_name"`
	Tier             types.SubscriptionTier `json:"tier"`
	UserID           types.UserID           `json:"user_id"`
	UserLogin        types.UserName         `json:"user_login"`
	UserName         types.DisplayName      `json:"user_name"`
}

// Validate implements validation.Validatable.
func (s BroadcasterSubscription) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.BroadcasterID, validation.Required),
		validation.Field(&s.UserID, validation.Required),
		validation.Field(&s.Tier),
	)
}

// SubscriptionsService handles communication with the subscription related methods.
type SubscriptionsService struct {
	client *Client
}

// CheckUser reports the token user's subscription to a broadcaster. A user
// without a subscription yields an HTTPStatusError matching ErrNotFound.
func (s *SubscriptionsService) CheckUser(ctx context.Context, req *CheckUserSubscriptionRequest) (*Response[UserSubscription], error) {
	return DoSingle[UserSubscription](ctx, s.client, req)
}

// GetBroadcaster fetches one page of a broadcaster's subscribers.
func (s *SubscriptionsService) GetBroadcaster(ctx context.Context, req *GetBroadcasterSubscriptionsRequest) (*Response[[]BroadcasterSubscription], error) {
	return Do[[]BroadcasterSubscription](ctx, s.client, req)
}

// AllBroadcaster returns a Pager over every subscriber matching req.
func (s *SubscriptionsService) AllBroadcaster(req *GetBroadcasterSubscriptionsRequest) *Pager[BroadcasterSubscription] {
	return NewPager[BroadcasterSubscription](s.client, req)
}
