package helix

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryDoer is a Doer that retries requests answered with 429 Too Many
// Requests or a 5xx status. It waits with exponential backoff, or until the
// Ratelimit-Reset time when the server sends one, capped at a maximum wait.
// Transport errors are returned as they are.
type RetryDoer struct {
	next       Doer
	maxRetries int
	maxWait    time.Duration
	newBackOff func() backoff.BackOff
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

// RetryOption configures a RetryDoer.
type RetryOption func(*RetryDoer)

// WithRetryMax sets how many times a request is retried. Defaults to 3.
func WithRetryMax(n int) RetryOption {
	return func(d *RetryDoer) {
		if n >= 0 {
			d.maxRetries = n
		}
	}
}

// WithRetryMaxWait caps a single wait. Defaults to one minute.
func WithRetryMaxWait(w time.Duration) RetryOption {
	return func(d *RetryDoer) {
		if w > 0 {
			d.maxWait = w
		}
	}
}

// WithRetryBackOff sets the backoff policy. fn is called once per request
// so every request starts a fresh schedule.
func WithRetryBackOff(fn func() backoff.BackOff) RetryOption {
	return func(d *RetryDoer) {
		if fn != nil {
			d.newBackOff = fn
		}
	}
}

// NewRetryDoer wraps next with retries.
func NewRetryDoer(next Doer, opts ...RetryOption) *RetryDoer {
	d := &RetryDoer{
		next:       next,
		maxRetries: 3,
		maxWait:    time.Minute,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
		now:   time.Now,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// Do implements Doer. A request with a body is only retried when
// req.GetBody can replay it, which http.NewRequest arranges for the
// bodies this package sends.
func (d *RetryDoer) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	b := d.newBackOff()
	b.Reset()

	for attempt := 0; ; attempt++ {
		resp, err := d.next.Do(req)
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= d.maxRetries {
			return resp, nil
		}
		if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
			return resp, nil
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return resp, nil
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			if reset := parseRateLimitReset(resp.Header); !reset.IsZero() {
				if until := reset.Sub(d.now()); until > wait {
					wait = until
				}
			}
		}
		if wait > d.maxWait {
			wait = d.maxWait
		}

		// Drain body to reuse connection
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		if err := d.sleep(ctx, wait); err != nil {
			return nil, err
		}

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req = req.Clone(ctx)
			req.Body = body
		}
	}
}
