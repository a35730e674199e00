package helix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// GetChannelInformationRequest fetches channel information for up to 100 broadcasters.
type GetChannelInformationRequest struct {
	BroadcasterID []types.UserID `url:"broadcaster_id"`
}

// NewGetChannelInformationRequest creates a request for one or more broadcasters.
func NewGetChannelInformationRequest(broadcasterID types.UserID, more ...types.UserID) *GetChannelInformationRequest {
	return &GetChannelInformationRequest{BroadcasterID: append([]types.UserID{broadcasterID}, more...)}
}

func (r *GetChannelInformationRequest) Path() string { return "channels" }
func (r *GetChannelInformationRequest) Method() string { return http.MethodGet }
func (r *GetChannelInformationRequest) Scopes() []types.Scope { return nil }
func (r *GetChannelInformationRequest) Query() (url.Values, error) { return EncodeQuery(r) }

// Validate implements validation.Validatable.
func (r *GetChannelInformationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BroadcasterID, validation.Required, validation.Length(1, 100)),
	)
}

// ChannelInformation describes a channel.
type ChannelInformation struct {
	BroadcasterID       types.UserID                `json:"broadcaster_id"`
	BroadcasterLogin    types.UserName              `json:"broadcaster_login"`
	BroadcasterName     types.DisplayName           `json:"broadcaster_name"`
	BroadcasterLanguage string                      `json:"broadcaster_language"`
	GameID              types.CategoryID            `json:"game_id"`
	GameName            string                      `json:"game_name"`
	Title               string                      `json:"title"`
	Delay               int64                       `json:"delay"`
	Tags                types.NullableSlice[string] `json:"tags"`
}

// Validate implements validation.Validatable.
func (ci ChannelInformation) Validate() error {
	return validation.ValidateStruct(&ci,
		validation.Field(&ci.BroadcasterID, validation.Required),
		validation.Field(&ci.BroadcasterLogin, validation.Required),
	)
}

// UnmarshalJSON implements json.Unmarshaler. Absent tags decode like null
// ones.
func (ci *ChannelInformation) UnmarshalJSON(data []byte) error {
	type plain ChannelInformation
	if err := json.Unmarshal(data, (*plain)(ci)); err != nil {
		return err
	}
	if ci.Tags == nil {
		ci.Tags = types.NullableSlice[string]{}
	}
	return nil
}

// StartCommercialRequest starts a commercial on the broadcaster's channel.
// The broadcaster must be live.
type StartCommercialRequest struct {
	BroadcasterID types.UserID           `json:"broadcaster_id"`
	Length        types.CommercialLength `json:"length"`
}

// NewStartCommercialRequest creates a request for a commercial of length.
func NewStartCommercialRequest(broadcasterID types.UserID, length types.CommercialLength) *StartCommercialRequest {
	return &StartCommercialRequest{BroadcasterID: broadcasterID, Length: length}
}

func (r *StartCommercialRequest) Path() string { return "channels/commercial" }
func (r *StartCommercialRequest) Method() string { return http.MethodPost }
func (r *StartCommercialRequest) Body() any { return r }

func (r *StartCommercialRequest) Scopes() []types.Scope {
	return []types.Scope{types.ScopeChannelEditCommercial}
}

// Validate implements validation.Validatable.
func (r *StartCommercialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BroadcasterID, validation.Required),
		validation.Field(&r.Length, validation.By(func(any) error {
			_, err := types.ParseCommercialLength(int(r.Length))
			return err
		})),
	)
}

// Commercial is the answer to StartCommercialRequest.
type Commercial struct {
	Length types.CommercialLength `json:"length"`
	// Why the commercial could not run, if it did not.
	Message string `json:"message"`
	// Seconds until the next commercial may run.
	RetryAfter int64 `json:"retry_after"`
}

// ChannelsService handles communication with the channel related methods.
type ChannelsService struct {
	client *Client
}

// Get fetches channel information for the broadcasters in req.
func (s *ChannelsService) Get(ctx context.Context, req *GetChannelInformationRequest) (*Response[[]ChannelInformation], error) {
	return Do[[]ChannelInformation](ctx, s.client, req)
}

// GetByID fetches a single channel. It returns nil without an error when
// the channel does not exist.
func (s *ChannelsService) GetByID(ctx context.Context, broadcasterID types.UserID) (*ChannelInformation, error) {
	resp, err := s.Get(ctx, NewGetChannelInformationRequest(broadcasterID))
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}

// StartCommercial runs a commercial and reports when the next one may run.
func (s *ChannelsService) StartCommercial(ctx context.Context, req *StartCommercialRequest) (*Response[Commercial], error) {
	return DoSingle[Commercial](ctx, s.client, req)
}
