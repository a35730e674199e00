package eventsub

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Webhook request headers.
const (
	HeaderMessageID           = "Twitch-Eventsub-Message-Id"
	HeaderMessageRetry        = "Twitch-Eventsub-Message-Retry"
	HeaderMessageType         = "Twitch-Eventsub-Message-Type"
	HeaderMessageSignature    = "Twitch-Eventsub-Message-Signature"
	HeaderMessageTimestamp    = "Twitch-Eventsub-Message-Timestamp"
	HeaderSubscriptionType    = "Twitch-Eventsub-Subscription-Type"
	HeaderSubscriptionVersion = "Twitch-Eventsub-Subscription-Version"
)

// MaxBodySize caps how much of a webhook body is read.
const MaxBodySize = 1 << 20

// RecommendedMaxMessageAge is the replay window Twitch suggests enforcing.
const RecommendedMaxMessageAge = 10 * time.Minute

// Delivery is an authenticated webhook request.
type Delivery struct {
	MessageID string
	// Timestamp is the message timestamp header, parsed.
	Timestamp time.Time
	// Retry is the delivery attempt number Twitch reports, if any.
	Retry   string
	Message Message
	// Body is the raw body the signature was checked against.
	Body []byte
}

type readOptions struct {
	registry   *Registry
	maxAge     time.Duration
	now        func() time.Time
	maxBodyLen int64
}

// ReadOption configures ReadRequest.
type ReadOption func(*readOptions)

// WithRegistry decodes notifications with r instead of DefaultRegistry.
func WithRegistry(r *Registry) ReadOption {
	return func(o *readOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithMaxMessageAge rejects messages whose timestamp is older than d.
// Zero disables the check.
func WithMaxMessageAge(d time.Duration) ReadOption {
	return func(o *readOptions) {
		o.maxAge = d
	}
}

// WithClock replaces time.Now for the message age check.
func WithClock(now func() time.Time) ReadOption {
	return func(o *readOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMaxBodySize changes the body size cap.
func WithMaxBodySize(n int64) ReadOption {
	return func(o *readOptions) {
		if n > 0 {
			o.maxBodyLen = n
		}
	}
}

// ReadRequest authenticates an incoming webhook request and decodes its
// body. The signature is checked against the raw bytes before any JSON is
// parsed; a failure is a *SignatureVerificationError.
// Ensure your HTTP handler does NOT consume r.Body before calling this.
func ReadRequest(r *http.Request, secret string, opts ...ReadOption) (*Delivery, error) {
	o := readOptions{
		registry:   DefaultRegistry(),
		now:        time.Now,
		maxBodyLen: MaxBodySize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if r.Method != http.MethodPost {
		return nil, fmt.Errorf("eventsub: webhook must be a POST request, got %s", r.Method)
	}

	id := r.Header.Get(HeaderMessageID)
	ts := r.Header.Get(HeaderMessageTimestamp)
	sig := r.Header.Get(HeaderMessageSignature)

	var missing *multierror.Error
	for _, h := range [][2]string{
		{HeaderMessageID, id},
		{HeaderMessageTimestamp, ts},
		{HeaderMessageSignature, sig},
	} {
		if h[1] == "" {
			missing = multierror.Append(missing, fmt.Errorf("missing %s header", h[0]))
		}
	}
	if err := missing.ErrorOrNil(); err != nil {
		return nil, &SignatureVerificationError{Reason: "missing headers", Err: err}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, o.maxBodyLen+1))
	if err != nil {
		return nil, fmt.Errorf("eventsub: read webhook body: %w", err)
	}
	if int64(len(body)) > o.maxBodyLen {
		return nil, ErrBodyTooLarge
	}

	if err := Verify(secret, id, ts, body, sig); err != nil {
		return nil, err
	}

	sent, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, &SignatureVerificationError{Reason: "malformed timestamp", Err: err}
	}
	if o.maxAge > 0 && o.now().Sub(sent) > o.maxAge {
		return nil, &SignatureVerificationError{Reason: "message too old"}
	}

	var msg Message
	if typ := r.Header.Get(HeaderMessageType); typ != "" {
		msg, err = o.registry.ParseMessage(MessageType(typ), body)
	} else {
		msg, err = o.registry.Parse(body)
	}
	if err != nil {
		return nil, err
	}

	return &Delivery{
		MessageID: id,
		Timestamp: sent,
		Retry:     r.Header.Get(HeaderMessageRetry),
		Message:   msg,
		Body:      body,
	}, nil
}

// IsSignatureError reports whether err means the request was not
// authentic.
func IsSignatureError(err error) bool {
	var sigErr *SignatureVerificationError
	return errors.As(err, &sigErr)
}
