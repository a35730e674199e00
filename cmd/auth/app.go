package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"
)

func (c *cli) appCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "app",
		Short: "Fetch an app access token with the client credentials grant",
		Long: `Fetches an app access token. App tokens carry no user scopes and are
what the EventSub subscription endpoints require for webhook transports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ep := c.endpoint()
			cfg := clientcredentials.Config{
				ClientID:     c.v.GetString("client-id"),
				ClientSecret: c.v.GetString("client-secret"),
				TokenURL:     ep.TokenURL,
				AuthStyle:    ep.AuthStyle,
			}

			c.logger.Debug("requesting app access token", "token_url", cfg.TokenURL)
			tok, err := cfg.Token(cmd.Context())
			if err != nil {
				return fmt.Errorf("client credentials grant: %w", err)
			}
			return c.finish(fromOAuth2(tok, nil))
		},
	}
}
