package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

func (c *cli) userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Fetch a user access token with the authorization code flow",
		Long: `Refreshes the cached user session when there is one. Otherwise prints
an authorization URL and waits for Twitch to redirect the browser to the
local callback server.

The redirect URI must be registered for the application in the Twitch
developer console.`,
		Args: cobra.NoArgs,
		RunE: c.runUser,
	}
	cmd.Flags().StringSlice("scopes", nil, "scopes to request, e.g. channel:read:polls")
	cmd.Flags().String("redirect-uri", defaultRedirectURI, "OAuth redirect URI served locally")
	cmd.Flags().Bool("no-refresh", false, "ignore the cached session and authorize again")
	return cmd
}

func (c *cli) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.v.GetString("client-id"),
		ClientSecret: c.v.GetString("client-secret"),
		Endpoint:     c.endpoint(),
		RedirectURL:  c.v.GetString("redirect-uri"),
		Scopes:       c.v.GetStringSlice("scopes"),
	}
}

func (c *cli) runUser(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := c.oauthConfig()

	if !c.v.GetBool("no-refresh") {
		cached, err := c.store().Load()
		if err != nil {
			c.logger.Warn("ignoring unreadable token cache", "error", err)
		}
		if cached != nil && cached.RefreshToken != "" {
			c.logger.Info("found cached session, refreshing")
			tok, err := refresh(ctx, cfg, cached.RefreshToken)
			if err == nil {
				return c.finish(fromOAuth2(tok, cached.Scopes))
			}
			c.logger.Warn("refresh failed, starting a new authorization", "error", err)
		}
	}

	tok, err := c.authorize(ctx, cfg)
	if err != nil {
		return err
	}
	return c.finish(fromOAuth2(tok, cfg.Scopes))
}

// refresh trades a refresh token for a new access token.
func refresh(ctx context.Context, cfg *oauth2.Config, refreshToken string) (*oauth2.Token, error) {
	// An empty access token is never valid, so the source refreshes at once.
	return cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
}

type callbackResult struct {
	tok *oauth2.Token
	err error
}

// authorize runs the browser half of the authorization code flow.
func (c *cli) authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	u, err := url.Parse(cfg.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("parse redirect uri: %w", err)
	}
	port := u.Port()
	if port == "" {
		port = "80"
	}

	state := uuid.NewString()
	fmt.Fprintf(c.out, "Open this URL in your browser to authorize:\n\n  %s\n\n", cfg.AuthCodeURL(state))

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.Handle(u.Path, callbackHandler(state, cfg.Exchange, results))

	ln, err := net.Listen("tcp", net.JoinHostPort(u.Hostname(), port))
	if err != nil {
		return nil, fmt.Errorf("listen for callback: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.logger.Info("waiting for authorization callback", "addr", ln.Addr().String())

	select {
	case res := <-results:
		return res.tok, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type exchangeFunc func(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)

// callbackHandler completes the flow for the first request carrying the
// expected state and reports the outcome on results.
func callbackHandler(state string, exchange exchangeFunc, results chan<- callbackResult) http.HandlerFunc {
	report := func(res callbackResult) {
		select {
		case results <- res:
		default:
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		if e := q.Get("error"); e != "" {
			err := fmt.Errorf("authorization denied: %s: %s", e, q.Get("error_description"))
			http.Error(w, err.Error(), http.StatusBadRequest)
			report(callbackResult{err: err})
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			report(callbackResult{err: errors.New("callback without authorization code")})
			return
		}

		tok, err := exchange(r.Context(), code)
		if err != nil {
			http.Error(w, "token exchange failed", http.StatusInternalServerError)
			report(callbackResult{err: fmt.Errorf("exchange code: %w", err)})
			return
		}
		_, _ = fmt.Fprintln(w, "Success! You can close this window and return to the terminal.")
		report(callbackResult{tok: tok})
	}
}
