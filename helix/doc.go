// Package helix provides a typed Go client for the Twitch Helix REST API.
//
// A call is described by a Request value (path, method, required scopes and
// typed query or body fields). The Client encodes it, hands it to a
// pluggable transport (any Doer, *http.Client by default) and decodes the
// result into a typed Response or one of the errors in errors.go.
//
// # Quick Start
//
//	client := helix.NewClient(
//	    helix.WithClientID("your_client_id"),
//	    helix.WithToken("your_oauth2_token"),
//	)
//
//	user, err := client.Users.GetByLogin(ctx, "twitchdev")
//
// # Pagination
//
// Paginated requests can be walked with a Pager, either page by page or as
// a lazy sequence of items:
//
//	pager := client.Predictions.All(helix.NewGetPredictionsRequest("1234", nil))
//	for prediction, err := range pager.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(prediction.Title)
//	}
//
// # Retries and rate limits
//
// The client never retries and never throttles. Wrap the transport with
// NewRetryDoer or NewRateLimitedDoer to opt into either policy.
package helix
