// Package forward publishes authenticated EventSub messages to NATS so
// other services can consume them without running a webhook receiver.
package forward

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/arvarik/twitch-go/eventsub"
)

// DefaultSubjectPrefix is the subject root events are published under.
const DefaultSubjectPrefix = "twitch.eventsub"

// Headers set on every published message.
const (
	HeaderMessageID           = "Twitch-Eventsub-Message-Id"
	HeaderMessageTimestamp    = "Twitch-Eventsub-Message-Timestamp"
	HeaderSubscriptionID      = "Twitch-Eventsub-Subscription-Id"
	HeaderSubscriptionType    = "Twitch-Eventsub-Subscription-Type"
	HeaderSubscriptionVersion = "Twitch-Eventsub-Subscription-Version"
)

// publisher is the part of *nats.Conn the forwarder uses.
type publisher interface {
	PublishMsg(m *nats.Msg) error
}

// Config holds the NATS connection settings.
type Config struct {
	// URL is the NATS server URL (e.g., "nats://localhost:4222").
	URL string
	// Name is the client name for connection identification.
	Name string
	// SubjectPrefix defaults to DefaultSubjectPrefix.
	SubjectPrefix string
	// MaxReconnects is the maximum number of reconnection attempts.
	// Use -1 for infinite reconnects.
	MaxReconnects int
	// ReconnectWait is the time to wait between reconnection attempts.
	ReconnectWait time.Duration
	// Timeout is the connection timeout.
	Timeout time.Duration
	// Token for token-based authentication (optional).
	Token string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		Name:          "twitch-eventsub",
		SubjectPrefix: DefaultSubjectPrefix,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		Timeout:       5 * time.Second,
	}
}

// NATS publishes messages to subjects named after their subscription:
// <prefix>.<type>.<version> for notifications and
// <prefix>.revocation.<type>.<version> for revocations.
type NATS struct {
	pub    publisher
	conn   *nats.Conn
	prefix string
}

// Connect dials NATS with cfg.
func Connect(cfg Config) (*NATS, error) {
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.Timeout),
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	f := newNATS(conn, cfg.SubjectPrefix)
	f.conn = conn
	return f, nil
}

func newNATS(pub publisher, prefix string) *NATS {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATS{pub: pub, prefix: prefix}
}

// Subject returns the subject notifications for key are published to.
func (f *NATS) Subject(key eventsub.Key) string {
	return f.prefix + "." + string(key.Type) + "." + key.Version
}

// Notify publishes the event of n as JSON. It has the signature of
// eventsub.NotificationFunc.
func (f *NATS) Notify(ctx context.Context, d *eventsub.Delivery, n *eventsub.Notification) error {
	data, err := json.Marshal(n.Event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return f.publish(ctx, f.Subject(n.Subscription.Key()), d, n.Subscription, data)
}

// Revoke publishes the revoked subscription as JSON. It has the signature
// of eventsub.RevocationFunc.
func (f *NATS) Revoke(ctx context.Context, d *eventsub.Delivery, r *eventsub.Revocation) error {
	data, err := json.Marshal(r.Subscription)
	if err != nil {
		return fmt.Errorf("marshal subscription: %w", err)
	}
	key := r.Subscription.Key()
	subject := f.prefix + ".revocation." + string(key.Type) + "." + key.Version
	return f.publish(ctx, subject, d, r.Subscription, data)
}

func (f *NATS) publish(ctx context.Context, subject string, d *eventsub.Delivery, sub eventsub.Subscription, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	// Nats-Msg-Id lets JetStream streams drop redeliveries.
	msg.Header.Set(nats.MsgIdHdr, d.MessageID)
	msg.Header.Set(HeaderMessageID, d.MessageID)
	msg.Header.Set(HeaderMessageTimestamp, d.Timestamp.UTC().Format(time.RFC3339Nano))
	msg.Header.Set(HeaderSubscriptionID, sub.ID)
	msg.Header.Set(HeaderSubscriptionType, string(sub.Type))
	msg.Header.Set(HeaderSubscriptionVersion, sub.Version)

	if err := f.pub.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection opened by Connect.
func (f *NATS) Close() error {
	if f.conn == nil {
		return nil
	}
	return f.conn.Drain()
}
