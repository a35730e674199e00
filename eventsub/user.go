package eventsub

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arvarik/twitch-go/types"
)

// UserAuthorizationRevokeV1 subscribes to users revoking the authorization
// of the client. It needs an app access token and no scopes.
type UserAuthorizationRevokeV1 struct {
	ClientID string `json:"client_id"`
}

func (UserAuthorizationRevokeV1) EventType() EventType { return EventTypeUserAuthorizationRevoke }
func (UserAuthorizationRevokeV1) Version() string { return "1" }
func (UserAuthorizationRevokeV1) Scopes() []types.Scope { return nil }

// UserAuthorizationRevokeV1Payload is sent when a user revokes access.
// Login and name are null when the user no longer exists.
type UserAuthorizationRevokeV1Payload struct {
	ClientID  string             `json:"client_id"`
	UserID    types.UserID       `json:"user_id"`
	UserLogin *types.UserName    `json:"user_login"`
	UserName  *types.DisplayName `json:"user_name"`
}

func (*UserAuthorizationRevokeV1Payload) isEvent() {}

// Validate implements validation.Validatable.
func (p UserAuthorizationRevokeV1Payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ClientID, validation.Required),
		validation.Field(&p.UserID, validation.Required),
	)
}
