package eventsub

import (
	"context"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// Deduper remembers message ids so redelivered notifications are handled
// once. Implementations live in the dedup package.
type Deduper interface {
	// Seen records id and reports whether it had already been recorded.
	Seen(ctx context.Context, id string) (bool, error)
	// Forget removes id so a later redelivery is handled again.
	Forget(ctx context.Context, id string) error
}

// NotificationFunc handles one authenticated notification. Returning an
// error answers 500 so Twitch redelivers the message.
type NotificationFunc func(ctx context.Context, d *Delivery, n *Notification) error

// RevocationFunc handles one authenticated revocation.
type RevocationFunc func(ctx context.Context, d *Delivery, r *Revocation) error

// Handler is an http.Handler receiving EventSub webhooks.
//
//   - verification challenges are answered 200 with the challenge as body
//   - revocations are passed to the revocation callback, then answered 204
//   - notifications are de-duplicated, passed to the notification callback,
//     then answered 204
//   - requests failing authentication get 403, malformed ones 400
type Handler struct {
	secret         string
	onNotification NotificationFunc
	onRevocation   RevocationFunc
	dedup          Deduper
	logger         hclog.Logger
	metrics        *Metrics
	readOpts       []ReadOption
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// OnNotification sets the notification callback.
func OnNotification(fn NotificationFunc) HandlerOption {
	return func(h *Handler) {
		h.onNotification = fn
	}
}

// OnRevocation sets the revocation callback.
func OnRevocation(fn RevocationFunc) HandlerOption {
	return func(h *Handler) {
		h.onRevocation = fn
	}
}

// WithDeduper drops notifications whose message id d has already seen.
func WithDeduper(d Deduper) HandlerOption {
	return func(h *Handler) {
		h.dedup = d
	}
}

// WithLogger sets the logger. Rejections log at Debug, handled messages at
// Trace.
func WithLogger(l hclog.Logger) HandlerOption {
	return func(h *Handler) {
		if l == nil {
			l = hclog.NewNullLogger()
		}
		h.logger = l
	}
}

// WithMetrics records handler activity in m.
func WithMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithReadOptions passes opts to ReadRequest for every request.
func WithReadOptions(opts ...ReadOption) HandlerOption {
	return func(h *Handler) {
		h.readOpts = append(h.readOpts, opts...)
	}
}

// NewHandler returns a handler verifying requests with secret.
func NewHandler(secret string, opts ...HandlerOption) *Handler {
	h := &Handler{
		secret: secret,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d, err := ReadRequest(r, h.secret, h.readOpts...)
	if err != nil {
		status, reason := rejectStatus(err)
		h.logger.Debug("rejected webhook request", "reason", reason, "error", err)
		if h.metrics != nil {
			h.metrics.Rejected.WithLabelValues(reason).Inc()
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	ctx := r.Context()
	sub := d.Message.Sub()
	log := h.logger.With("message_id", d.MessageID, "subscription", sub.Key().String())

	switch m := d.Message.(type) {
	case *VerificationChallenge:
		log.Trace("answering verification challenge")
		h.count(MessageTypeVerification, sub)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(m.Challenge))

	case *Revocation:
		log.Trace("subscription revoked", "status", sub.Status)
		h.count(MessageTypeRevocation, sub)
		if h.onRevocation != nil {
			if err := h.onRevocation(ctx, d, m); err != nil {
				h.callbackFailed(log, MessageTypeRevocation, err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)

	case *Notification:
		if h.dedup != nil {
			seen, err := h.dedup.Seen(ctx, d.MessageID)
			if err != nil {
				log.Warn("de-duplication unavailable, handling message", "error", err)
			} else if seen {
				log.Trace("dropping duplicate notification")
				if h.metrics != nil {
					h.metrics.Duplicates.Inc()
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		log.Trace("handling notification")
		h.count(MessageTypeNotification, sub)
		if h.onNotification != nil {
			if err := h.onNotification(ctx, d, m); err != nil {
				h.callbackFailed(log, MessageTypeNotification, err)
				if h.dedup != nil {
					if ferr := h.dedup.Forget(ctx, d.MessageID); ferr != nil {
						log.Warn("failed to forget message id", "error", ferr)
					}
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) count(typ MessageType, sub Subscription) {
	if h.metrics != nil {
		h.metrics.Messages.WithLabelValues(string(typ), string(sub.Type)).Inc()
	}
}

func (h *Handler) callbackFailed(log hclog.Logger, typ MessageType, err error) {
	log.Error("callback failed", "message_type", typ, "error", err)
	if h.metrics != nil {
		h.metrics.CallbackErrors.WithLabelValues(string(typ)).Inc()
	}
}

func rejectStatus(err error) (int, string) {
	switch {
	case IsSignatureError(err):
		return http.StatusForbidden, "signature"
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	default:
		return http.StatusBadRequest, "malformed"
	}
}
