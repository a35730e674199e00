// Command twitch-auth obtains Twitch OAuth tokens for use with the helix
// client: app access tokens through the client credentials grant, and user
// tokens through the authorization code flow with a local callback server.
// The session is cached in a YAML file so later runs only refresh it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

const (
	defaultTokenFile   = ".twitch_token.yaml"
	defaultRedirectURI = "http://localhost:3000/callback"

	twitchAuthURL  = "https://id.twitch.tv/oauth2/authorize"
	twitchTokenURL = "https://id.twitch.tv/oauth2/token"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(afero.NewOsFs(), os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cli carries the state shared by the subcommands.
type cli struct {
	v      *viper.Viper
	fs     afero.Fs
	out    io.Writer
	logger hclog.Logger
}

func newRootCmd(fsys afero.Fs, out io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), fs: fsys, out: out, logger: hclog.NewNullLogger()}

	root := &cobra.Command{
		Use:   "twitch-auth",
		Short: "Obtain Twitch OAuth tokens",
		Long: `twitch-auth fetches app and user access tokens for the Twitch API.

Settings are read from flags, TWITCH_* environment variables (for example
TWITCH_CLIENT_ID) and an optional YAML config file, in that order.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("client-id", "", "application client id")
	pf.String("client-secret", "", "application client secret")
	pf.String("token-file", defaultTokenFile, "file the token session is cached in")
	pf.String("output", "yaml", "output format: yaml or env")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error")
	pf.String("auth-url", twitchAuthURL, "authorization endpoint")
	pf.String("token-url", twitchTokenURL, "token endpoint")
	_ = pf.MarkHidden("auth-url")
	_ = pf.MarkHidden("token-url")

	root.AddCommand(c.appCmd(), c.userCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	c.v.SetFs(c.fs)
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	c.v.SetEnvPrefix("TWITCH")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if path := c.v.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "twitch-auth",
		Level:  hclog.LevelFromString(c.v.GetString("log-level")),
		Output: cmd.ErrOrStderr(),
	})

	if c.v.GetString("client-id") == "" || c.v.GetString("client-secret") == "" {
		return fmt.Errorf("client-id and client-secret are required (flags or TWITCH_CLIENT_ID / TWITCH_CLIENT_SECRET)")
	}
	return nil
}

func (c *cli) store() *tokenStore {
	return &tokenStore{fs: c.fs, path: c.v.GetString("token-file")}
}

func (c *cli) endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   c.v.GetString("auth-url"),
		TokenURL:  c.v.GetString("token-url"),
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

// finish caches tok and prints it.
func (c *cli) finish(tok storedToken) error {
	path := c.v.GetString("token-file")
	if err := c.store().Save(tok); err != nil {
		c.logger.Warn("could not cache token", "path", path, "error", err)
	} else {
		c.logger.Info("token cached", "path", path)
	}
	return writeToken(c.out, c.v.GetString("output"), tok)
}

func writeToken(w io.Writer, format string, tok storedToken) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(tok)
	case "env":
		_, err := fmt.Fprintf(w, "export TWITCH_TOKEN=%q\n", tok.AccessToken)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
