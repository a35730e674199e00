// Command twitch-listener receives Twitch EventSub webhooks, verifies and
// de-duplicates them, and forwards the decoded events to NATS or the log.
// It can also manage the client's webhook subscriptions.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arvarik/twitch-go/eventsub"
	"github.com/arvarik/twitch-go/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cli carries the state shared by the subcommands.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config
	logger  hclog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: hclog.NewNullLogger()}

	root := &cobra.Command{
		Use:   "twitch-listener",
		Short: "Receive Twitch EventSub webhooks",
		Long: `twitch-listener is an EventSub webhook receiver.

Configuration comes from an optional YAML file and TWITCH_* environment
variables, e.g. TWITCH_EVENTSUB_SECRET or TWITCH_NATS_URL.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "YAML config file")

	root.AddCommand(c.serveCmd(), c.subscribeCmd(), c.listCmd(), c.unsubscribeCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:       "twitch-listener",
		Level:      hclog.LevelFromString(cfg.Logging.Level),
		JSONFormat: cfg.Logging.JSON,
		Output:     cmd.ErrOrStderr(),
	})
	return nil
}

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook receiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.cfg.validateServe(); err != nil {
				return err
			}
			return serve(cmd.Context(), c.cfg, c.logger)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("dedup", "memory", "de-duplication backend: memory, redis or none")
	_ = c.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = c.v.BindPFlag("dedup.backend", cmd.Flags().Lookup("dedup"))
	return cmd
}

func (c *cli) subscribeCmd() *cobra.Command {
	var (
		target conditionTarget
		keys   []string
	)
	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Create webhook subscriptions pointing at this listener",
		Long: `Creates one webhook subscription per --type for the given broadcaster.
Types are written as type/version, e.g. stream.online/1 or
channel.poll.begin/beta.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.cfg.validateAPI(); err != nil {
				return err
			}
			parsed := make([]eventsub.Key, 0, len(keys))
			for _, k := range keys {
				key, err := eventsub.ParseKey(k)
				if err != nil {
					return err
				}
				parsed = append(parsed, key)
			}
			target.ClientID = c.cfg.Twitch.ClientID

			ctx := cmd.Context()
			client := newHelixClient(ctx, c.cfg.Twitch, c.logger, nil)
			transport := eventsub.WebhookTransport(c.cfg.EventSub.Callback, c.cfg.EventSub.Secret)
			return subscribeAll(ctx, client, transport, target, parsed, c.logger)
		},
	}
	cmd.Flags().StringVar(&target.BroadcasterID, "broadcaster-id", "", "broadcaster to subscribe to")
	cmd.Flags().StringVar(&target.ModeratorID, "moderator-id", "", "moderator for channel.follow (defaults to the broadcaster)")
	cmd.Flags().StringSliceVar(&keys, "type", []string{"stream.online/1", "stream.offline/1"}, "subscription types as type/version")
	cmd.Flags().String("callback", "", "public https URL of the webhook endpoint")
	_ = c.v.BindPFlag("eventsub.callback", cmd.Flags().Lookup("callback"))
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the client's subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.cfg.validateAPI(); err != nil {
				return err
			}
			client := newHelixClient(cmd.Context(), c.cfg.Twitch, c.logger, nil)
			return listSubscriptions(cmd.Context(), client, eventsub.Status(status), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only list subscriptions with this status")
	return cmd
}

func (c *cli) unsubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unsubscribe ID...",
		Short: "Delete subscriptions by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.validateAPI(); err != nil {
				return err
			}
			client := newHelixClient(cmd.Context(), c.cfg.Twitch, c.logger, nil)
			ids := make([]types.EventSubID, len(args))
			copy(ids, args)
			return unsubscribe(cmd.Context(), client, ids, c.logger)
		},
	}
}
