package types

// Scope represents an OAuth2 scope required to access specific Twitch API endpoints.
type Scope string

const (
	// ScopeChannelReadPolls allows reading a channel's polls.
	ScopeChannelReadPolls Scope = "channel:read:polls"

	// ScopeChannelManagePolls allows creating and ending polls.
	ScopeChannelManagePolls Scope = "channel:manage:polls"

	// ScopeChannelReadPredictions allows reading a channel's predictions.
	ScopeChannelReadPredictions Scope = "channel:read:predictions"

	// ScopeChannelManagePredictions allows creating, locking and resolving predictions.
	ScopeChannelManagePredictions Scope = "channel:manage:predictions"

	// ScopeChannelReadSubscriptions allows listing a broadcaster's subscribers.
	ScopeChannelReadSubscriptions Scope = "channel:read:subscriptions"

	// ScopeUserReadSubscriptions allows checking a user's own subscriptions.
	ScopeUserReadSubscriptions Scope = "user:read:subscriptions"

	// ScopeUserReadEmail allows reading the email of the authenticated user.
	ScopeUserReadEmail Scope = "user:read:email"

	// ScopeChannelEditCommercial allows starting commercials on a channel.
	ScopeChannelEditCommercial Scope = "channel:edit:commercial"

	// ScopeModeratorReadFollowers allows reading the followers of a moderated channel.
	ScopeModeratorReadFollowers Scope = "moderator:read:followers"
)

// MissingScopes returns the scopes in need that are not present in have,
// preserving the order of need.
func MissingScopes(have, need []Scope) []Scope {
	if len(need) == 0 {
		return nil
	}
	held := make(map[Scope]struct{}, len(have))
	for _, s := range have {
		held[s] = struct{}{}
	}
	var missing []Scope
	for _, s := range need {
		if _, ok := held[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}
