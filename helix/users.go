package helix

import (
	"context"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// GetUsersRequest looks up users by id and/or login.
type GetUsersRequest struct {
	ID    []types.UserID   `url:"id,omitempty"`
	Login []types.UserName `url:"login,omitempty"`
}

// NewGetUsersByIDRequest looks up users by id.
func NewGetUsersByIDRequest(ids ...types.UserID) *GetUsersRequest {
	return &GetUsersRequest{ID: ids}
}

// NewGetUsersByLoginRequest looks up users by login.
func NewGetUsersByLoginRequest(logins ...types.UserName) *GetUsersRequest {
	return &GetUsersRequest{Login: logins}
}

func (r *GetUsersRequest) Path() string { return "users" }
func (r *GetUsersRequest) Method() string { return http.MethodGet }
func (r *GetUsersRequest) Scopes() []types.Scope { return nil }
func (r *GetUsersRequest) Query() (url.Values, error) { return EncodeQuery(r) }

// Validate caps the lookup at 100 ids and logins combined.
func (r *GetUsersRequest) Validate() error {
	return validation.Validate(len(r.ID)+len(r.Login), validation.Max(100))
}

// User is a Twitch user as returned by Get Users.
type User struct {
	ID              types.UserID          `json:"id"`
	Login           types.UserName        `json:"login"`
	DisplayName     types.DisplayName     `json:"display_name"`
	Type            types.UserType        `json:"type"`
	BroadcasterType types.BroadcasterType `json:"broadcaster_type"`
	Description     string                `json:"description"`
	ProfileImageURL string                `json:"profile_image_url"`
	OfflineImageURL string                `json:"offline_image_url"`
	// Only present when the token carries user:read:email.
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate implements validation.Validatable.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Login, validation.Required),
		validation.Field(&u.CreatedAt, validation.Required),
	)
}

// UsersService handles communication with the user related methods.
type UsersService struct {
	client *Client
}

// Get fetches the users matching req.
func (s *UsersService) Get(ctx context.Context, req *GetUsersRequest) (*Response[[]User], error) {
	return Do[[]User](ctx, s.client, req)
}

// GetByLogin fetches a single user by login. It returns nil without an
// error when no such user exists.
func (s *UsersService) GetByLogin(ctx context.Context, login types.UserName) (*User, error) {
	return s.first(ctx, NewGetUsersByLoginRequest(login))
}

// GetByID fetches a single user by id. It returns nil without an error when
// no such user exists.
func (s *UsersService) GetByID(ctx context.Context, id types.UserID) (*User, error) {
	return s.first(ctx, NewGetUsersByIDRequest(id))
}

func (s *UsersService) first(ctx context.Context, req *GetUsersRequest) (*User, error) {
	resp, err := s.Get(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}
