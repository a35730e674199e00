package helix

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/eventsub"
	"github.com/arvarik/twitch-go/types"
)

// CreateEventSubSubscriptionRequest creates a subscription. The event type
// and version come from the condition's type, so a condition can only be
// sent with the type it was defined for.
type CreateEventSubSubscriptionRequest struct {
	Condition eventsub.Condition
	Transport eventsub.Transport
}

// NewCreateEventSubSubscriptionRequest creates a request subscribing to
// condition over transport.
func NewCreateEventSubSubscriptionRequest(condition eventsub.Condition, transport eventsub.Transport) *CreateEventSubSubscriptionRequest {
	return &CreateEventSubSubscriptionRequest{Condition: condition, Transport: transport}
}

func (r *CreateEventSubSubscriptionRequest) Path() string { return "eventsub/subscriptions" }
func (r *CreateEventSubSubscriptionRequest) Method() string { return http.MethodPost }

// Scopes returns the scopes of the condition.
func (r *CreateEventSubSubscriptionRequest) Scopes() []types.Scope {
	if r.Condition == nil {
		return nil
	}
	return r.Condition.Scopes()
}

type createSubscriptionBody struct {
	Type      eventsub.EventType `json:"type"`
	Version   string             `json:"version"`
	Condition eventsub.Condition `json:"condition"`
	Transport eventsub.Transport `json:"transport"`
}

// Body implements BodyRequest.
func (r *CreateEventSubSubscriptionRequest) Body() any {
	return createSubscriptionBody{
		Type:      r.Condition.EventType(),
		Version:   r.Condition.Version(),
		Condition: r.Condition,
		Transport: r.Transport,
	}
}

// Validate implements validation.Validatable.
func (r *CreateEventSubSubscriptionRequest) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.Condition, validation.Required),
	); err != nil {
		return err
	}
	t := &r.Transport
	if t.Method != eventsub.TransportWebhook {
		return validation.ValidateStruct(t,
			validation.Field(&t.Method, validation.Required),
		)
	}
	return validation.ValidateStruct(t,
		validation.Field(&t.Callback, validation.Required, validation.By(httpsURL)),
		validation.Field(&t.Secret, validation.Required, validation.Length(10, 100)),
	)
}

func httpsURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || !strings.EqualFold(u.Scheme, "https") || u.Host == "" {
		return validation.NewError("validation_is_https_url", "must be an https URL")
	}
	return nil
}

// GetEventSubSubscriptionsRequest lists the subscriptions of the client.
// At most one filter may be set.
type GetEventSubSubscriptionsRequest struct {
	Status eventsub.Status    `url:"status,omitempty"`
	Type   eventsub.EventType `url:"type,omitempty"`
	UserID types.UserID       `url:"user_id,omitempty"`
	After  *types.Cursor      `url:"after,omitempty"`
}

func (r *GetEventSubSubscriptionsRequest) Path() string { return "eventsub/subscriptions" }
func (r *GetEventSubSubscriptionsRequest) Method() string { return http.MethodGet }
func (r *GetEventSubSubscriptionsRequest) Query() (url.Values, error) { return EncodeQuery(r) }
func (r *GetEventSubSubscriptionsRequest) Scopes() []types.Scope { return nil }

// WithCursor implements PaginatedRequest.
func (r *GetEventSubSubscriptionsRequest) WithCursor(cursor types.Cursor) PaginatedRequest {
	next := *r
	next.After = cursorPtr(cursor)
	return &next
}

// Validate implements validation.Validatable.
func (r *GetEventSubSubscriptionsRequest) Validate() error {
	set := 0
	for _, f := range []string{string(r.Status), string(r.Type), r.UserID} {
		if f != "" {
			set++
		}
	}
	if set > 1 {
		return validation.NewError("validation_one_filter", "only one of status, type or user_id may be set")
	}
	return nil
}

// DeleteEventSubSubscriptionRequest deletes a subscription.
type DeleteEventSubSubscriptionRequest struct {
	ID types.EventSubID `url:"id"`
}

func (r *DeleteEventSubSubscriptionRequest) Path() string { return "eventsub/subscriptions" }
func (r *DeleteEventSubSubscriptionRequest) Method() string { return http.MethodDelete }
func (r *DeleteEventSubSubscriptionRequest) Query() (url.Values, error) { return EncodeQuery(r) }
func (r *DeleteEventSubSubscriptionRequest) Scopes() []types.Scope { return nil }

// Validate implements validation.Validatable.
func (r *DeleteEventSubSubscriptionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
	)
}

// SubscriptionCosts are the totals sent alongside subscription lists.
type SubscriptionCosts struct {
	// Total number of subscriptions the client has created.
	Total int64
	// Sum of the costs of the subscriptions.
	TotalCost int64
	// Maximum total cost the client may create.
	MaxTotalCost int64
}

// Costs reads the subscription totals from the envelope of a Create or Get
// response.
func Costs[T any](resp *Response[T]) SubscriptionCosts {
	var c SubscriptionCosts
	c.Total, _ = resp.ExtraInt("total")
	c.TotalCost, _ = resp.ExtraInt("total_cost")
	c.MaxTotalCost, _ = resp.ExtraInt("max_total_cost")
	return c
}

// EventSubService handles communication with the EventSub subscription
// methods. These calls require an app access token.
type EventSubService struct {
	client *Client
}

// Create creates a subscription and returns it. Webhook subscriptions start
// in the webhook_callback_verification_pending status.
func (s *EventSubService) Create(ctx context.Context, req *CreateEventSubSubscriptionRequest) (*Response[eventsub.Subscription], error) {
	return DoSingle[eventsub.Subscription](ctx, s.client, req)
}

// Get fetches one page of subscriptions.
func (s *EventSubService) Get(ctx context.Context, req *GetEventSubSubscriptionsRequest) (*Response[[]eventsub.Subscription], error) {
	return Do[[]eventsub.Subscription](ctx, s.client, req)
}

// All returns a Pager over every subscription matching req.
func (s *EventSubService) All(req *GetEventSubSubscriptionsRequest) *Pager[eventsub.Subscription] {
	return NewPager[eventsub.Subscription](s.client, req)
}

// Delete deletes the subscription with id.
func (s *EventSubService) Delete(ctx context.Context, id types.EventSubID) error {
	return Send(ctx, s.client, &DeleteEventSubSubscriptionRequest{ID: id})
}
