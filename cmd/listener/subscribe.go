package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/arvarik/twitch-go/eventsub"
	"github.com/arvarik/twitch-go/helix"
	"github.com/arvarik/twitch-go/types"
)

// conditionTarget identifies whose events a subscription is for.
type conditionTarget struct {
	BroadcasterID types.UserID
	// ModeratorID defaults to BroadcasterID.
	ModeratorID types.UserID
	ClientID    string
}

// conditionFor builds the condition for key.
func conditionFor(key eventsub.Key, t conditionTarget) (eventsub.Condition, error) {
	b := t.BroadcasterID
	var c eventsub.Condition
	switch key {
	case eventsub.ConditionKey(eventsub.ChannelFollowV2{}):
		mod := t.ModeratorID
		if mod == "" {
			mod = b
		}
		c = eventsub.ChannelFollowV2{BroadcasterUserID: b, ModeratorUserID: mod}
	case eventsub.ConditionKey(eventsub.ChannelUpdateV2{}):
		c = eventsub.ChannelUpdateV2{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelSubscribeV1{}):
		c = eventsub.ChannelSubscribeV1{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.StreamOnlineV1{}):
		c = eventsub.StreamOnlineV1{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.StreamOfflineV1{}):
		c = eventsub.StreamOfflineV1{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelPollBeginBeta{}):
		c = eventsub.ChannelPollBeginBeta{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelPollProgressBeta{}):
		c = eventsub.ChannelPollProgressBeta{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelPollEndBeta{}):
		c = eventsub.ChannelPollEndBeta{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelPredictionBeginBeta{}):
		c = eventsub.ChannelPredictionBeginBeta{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelPredictionProgressBeta{}):
		c = eventsub.ChannelPredictionProgressBeta{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelPredictionLockBeta{}):
		c = eventsub.ChannelPredictionLockBeta{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelPredictionEndBeta{}):
		c = eventsub.ChannelPredictionEndBeta{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.ChannelPredictionEndV1{}):
		c = eventsub.ChannelPredictionEndV1{BroadcasterUserID: b}
	case eventsub.ConditionKey(eventsub.UserAuthorizationRevokeV1{}):
		if t.ClientID == "" {
			return nil, fmt.Errorf("%s needs a client id", key)
		}
		return eventsub.UserAuthorizationRevokeV1{ClientID: t.ClientID}, nil
	default:
		return nil, fmt.Errorf("no condition known for %s", key)
	}
	if b == "" {
		return nil, fmt.Errorf("%s needs a broadcaster id", key)
	}
	return c, nil
}

// newHelixClient returns a client authenticated with an app access token.
func newHelixClient(ctx context.Context, cfg twitchConfig, logger hclog.Logger, httpClient *http.Client) *helix.Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	return helix.NewClient(
		helix.WithBaseURL(cfg.HelixURL),
		helix.WithClientID(cfg.ClientID),
		helix.WithTokenSource(cc.TokenSource(tokenCtx)),
		helix.WithHTTPClient(helix.NewRateLimitedDoer(helix.NewRetryDoer(httpClient), helix.DefaultPointsPerMinute)),
		helix.WithLogger(logger.Named("helix")),
	)
}

// subscribeAll creates a webhook subscription for every key. It carries on
// past failures and returns them together.
func subscribeAll(ctx context.Context, c *helix.Client, transport eventsub.Transport, target conditionTarget, keys []eventsub.Key, logger hclog.Logger) error {
	var result *multierror.Error
	for _, key := range keys {
		cond, err := conditionFor(key, target)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		resp, err := c.EventSub.Create(ctx, helix.NewCreateEventSubSubscriptionRequest(cond, transport))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("subscribe %s: %w", key, err))
			continue
		}
		costs := helix.Costs(resp)
		logger.Info("subscribed",
			"subscription", key.String(),
			"id", resp.Data.ID,
			"status", resp.Data.Status,
			"total_cost", costs.TotalCost,
			"max_total_cost", costs.MaxTotalCost,
		)
	}
	return result.ErrorOrNil()
}

// listSubscriptions writes every subscription of the client as a table.
func listSubscriptions(ctx context.Context, c *helix.Client, status eventsub.Status, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tVERSION\tSTATUS\tCALLBACK")
	for sub, err := range c.EventSub.All(&helix.GetEventSubSubscriptionsRequest{Status: status}).All(ctx) {
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", sub.ID, sub.Type, sub.Version, sub.Status, sub.Transport.Callback)
	}
	return tw.Flush()
}

// unsubscribe deletes the subscriptions with the given ids.
func unsubscribe(ctx context.Context, c *helix.Client, ids []types.EventSubID, logger hclog.Logger) error {
	var result *multierror.Error
	for _, id := range ids {
		if err := c.EventSub.Delete(ctx, id); err != nil {
			result = multierror.Append(result, fmt.Errorf("delete %s: %w", id, err))
			continue
		}
		logger.Info("unsubscribed", "id", id)
	}
	return result.ErrorOrNil()
}
