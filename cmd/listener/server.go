package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/arvarik/twitch-go/eventsub"
	"github.com/arvarik/twitch-go/eventsub/dedup"
	"github.com/arvarik/twitch-go/eventsub/forward"
)

// sink receives authenticated messages. forward.NATS is one; logSink is
// used when forwarding is off.
type sink interface {
	Notify(ctx context.Context, d *eventsub.Delivery, n *eventsub.Notification) error
	Revoke(ctx context.Context, d *eventsub.Delivery, r *eventsub.Revocation) error
}

// logSink writes every message to the log.
type logSink struct {
	logger hclog.Logger
}

func (s logSink) Notify(_ context.Context, d *eventsub.Delivery, n *eventsub.Notification) error {
	event, err := json.Marshal(n.Event)
	if err != nil {
		return err
	}
	s.logger.Info("notification",
		"message_id", d.MessageID,
		"subscription", n.Subscription.Key().String(),
		"event", string(event),
	)
	return nil
}

func (s logSink) Revoke(_ context.Context, d *eventsub.Delivery, r *eventsub.Revocation) error {
	s.logger.Warn("subscription revoked",
		"message_id", d.MessageID,
		"subscription_id", r.Subscription.ID,
		"subscription", r.Subscription.Key().String(),
		"status", r.Subscription.Status,
	)
	return nil
}

// newMux routes the webhook, metrics and health endpoints.
func newMux(cfg *config, logger hclog.Logger, reg *prometheus.Registry, d eventsub.Deduper, s sink) http.Handler {
	opts := []eventsub.HandlerOption{
		eventsub.OnNotification(s.Notify),
		eventsub.OnRevocation(s.Revoke),
		eventsub.WithLogger(logger.Named("webhook")),
		eventsub.WithMetrics(eventsub.NewMetrics(reg)),
		eventsub.WithReadOptions(eventsub.WithMaxMessageAge(cfg.EventSub.MaxMessageAge)),
	}
	if d != nil {
		opts = append(opts, eventsub.WithDeduper(d))
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Server.Path, eventsub.NewHandler(cfg.EventSub.Secret, opts...))
	mux.Handle(cfg.Server.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newDeduper builds the configured de-duplication store. The returned
// closer releases its connection.
func newDeduper(ctx context.Context, cfg dedupConfig) (eventsub.Deduper, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "none":
		return nil, noop, nil
	case "redis":
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		client := redis.NewClient(opt)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return dedup.NewRedis(client, cfg.Prefix, cfg.TTL), client.Close, nil
	default:
		return dedup.NewMemory(cfg.TTL), noop, nil
	}
}

// newSink connects to NATS when configured and falls back to logging.
func newSink(cfg natsConfig, logger hclog.Logger) (sink, func() error, error) {
	if cfg.URL == "" {
		return logSink{logger: logger.Named("events")}, func() error { return nil }, nil
	}

	fc := forward.DefaultConfig()
	fc.URL = cfg.URL
	fc.Name = cfg.Name
	fc.SubjectPrefix = cfg.SubjectPrefix
	fc.Token = cfg.Token
	if cfg.ReconnectWait > 0 {
		fc.ReconnectWait = cfg.ReconnectWait
	}

	n, err := forward.Connect(fc)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("forwarding to NATS", "url", cfg.URL, "subject_prefix", fc.SubjectPrefix)
	return n, n.Close, nil
}

// serve runs the listener until ctx is canceled.
func serve(ctx context.Context, cfg *config, logger hclog.Logger) error {
	d, closeDedup, err := newDeduper(ctx, cfg.Dedup)
	if err != nil {
		return err
	}
	defer func() { _ = closeDedup() }()

	s, closeSink, err := newSink(cfg.NATS, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSink(); err != nil {
			logger.Warn("failed to close sink", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newMux(cfg, logger, newRegistry(), d, s),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "path", cfg.Server.Path, "dedup", cfg.Dedup.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
