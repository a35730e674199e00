package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// config is the listener configuration. Every key can be set in the YAML
// config file or through a TWITCH_ environment variable with dots replaced
// by underscores, e.g. TWITCH_EVENTSUB_SECRET.
type config struct {
	Server   serverConfig   `mapstructure:"server"`
	Twitch   twitchConfig   `mapstructure:"twitch"`
	EventSub eventSubConfig `mapstructure:"eventsub"`
	Dedup    dedupConfig    `mapstructure:"dedup"`
	NATS     natsConfig     `mapstructure:"nats"`
	Logging  loggingConfig  `mapstructure:"logging"`
}

type serverConfig struct {
	Addr         string        `mapstructure:"addr"`
	Path         string        `mapstructure:"path"`
	MetricsPath  string        `mapstructure:"metrics_path"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// twitchConfig holds the application credentials used by the subscribe
// and list commands.
type twitchConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	TokenURL     string `mapstructure:"token_url"`
	HelixURL     string `mapstructure:"helix_url"`
}

type eventSubConfig struct {
	Secret        string        `mapstructure:"secret"`
	MaxMessageAge time.Duration `mapstructure:"max_message_age"`
	Callback      string        `mapstructure:"callback"`
}

type dedupConfig struct {
	// Backend is memory, redis or none.
	Backend  string        `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
	Prefix   string        `mapstructure:"prefix"`
}

type natsConfig struct {
	// URL enables forwarding to NATS when set.
	URL           string        `mapstructure:"url"`
	Name          string        `mapstructure:"name"`
	SubjectPrefix string        `mapstructure:"subject_prefix"`
	Token         string        `mapstructure:"token"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type loggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.path", "/eventsub")
	v.SetDefault("server.metrics_path", "/metrics")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")

	v.SetDefault("twitch.client_id", "")
	v.SetDefault("twitch.client_secret", "")
	v.SetDefault("twitch.token_url", "https://id.twitch.tv/oauth2/token")
	v.SetDefault("twitch.helix_url", "https://api.twitch.tv/helix")

	v.SetDefault("eventsub.secret", "")
	v.SetDefault("eventsub.max_message_age", "10m")
	v.SetDefault("eventsub.callback", "")

	v.SetDefault("dedup.backend", "memory")
	v.SetDefault("dedup.ttl", "10m")
	v.SetDefault("dedup.redis_url", "redis://localhost:6379/0")
	v.SetDefault("dedup.prefix", "twitch:eventsub:seen:")

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.name", "twitch-listener")
	v.SetDefault("nats.subject_prefix", "twitch.eventsub")
	v.SetDefault("nats.token", "")
	v.SetDefault("nats.reconnect_wait", "2s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)
}

// loadConfig reads the config file at path, if any, and the environment.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	setDefaults(v)

	v.SetEnvPrefix("TWITCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// validateServe checks what the serve command needs.
func (c *config) validateServe() error {
	var result *multierror.Error
	if c.EventSub.Secret == "" {
		result = multierror.Append(result, errors.New("eventsub.secret is required"))
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		result = multierror.Append(result, fmt.Errorf("server.path %q must start with /", c.Server.Path))
	}
	switch c.Dedup.Backend {
	case "memory", "redis", "none":
	default:
		result = multierror.Append(result, fmt.Errorf("dedup.backend %q is not one of memory, redis, none", c.Dedup.Backend))
	}
	return result.ErrorOrNil()
}

// validateAPI checks what the commands calling the Helix API need.
func (c *config) validateAPI() error {
	var result *multierror.Error
	if c.Twitch.ClientID == "" {
		result = multierror.Append(result, errors.New("twitch.client_id is required"))
	}
	if c.Twitch.ClientSecret == "" {
		result = multierror.Append(result, errors.New("twitch.client_secret is required"))
	}
	return result.ErrorOrNil()
}
