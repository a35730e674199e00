package helix

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPointsPerMinute is the Helix bucket size for an app or user token.
const DefaultPointsPerMinute = 800

// RateLimitedDoer is a Doer that waits for a local token bucket before
// every request so a client stays under the Helix rate limit. It adopts
// the bucket size the server reports in the Ratelimit-Limit header.
type RateLimitedDoer struct {
	next           Doer
	limiter        *rate.Limiter
	isAutoLimiting atomic.Bool
}

// NewRateLimitedDoer wraps next with a token bucket of pointsPerMinute,
// bursting up to the full bucket. A non-positive value means
// DefaultPointsPerMinute.
func NewRateLimitedDoer(next Doer, pointsPerMinute int) *RateLimitedDoer {
	if pointsPerMinute <= 0 {
		pointsPerMinute = DefaultPointsPerMinute
	}
	d := &RateLimitedDoer{
		next:    next,
		limiter: rate.NewLimiter(perMinute(pointsPerMinute), pointsPerMinute),
	}
	d.isAutoLimiting.Store(true)
	return d
}

func perMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60.0)
}

// Do implements Doer.
func (d *RateLimitedDoer) Do(req *http.Request) (*http.Response, error) {
	if d.isAutoLimiting.Load() {
		if err := d.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	resp, err := d.next.Do(req)
	if err != nil {
		return nil, err
	}

	if limit, err := strconv.Atoi(resp.Header.Get("Ratelimit-Limit")); err == nil && limit > 0 {
		if d.limiter.Burst() != limit {
			now := time.Now()
			d.limiter.SetLimitAt(now, perMinute(limit))
			d.limiter.SetBurstAt(now, limit)
		}
	}
	return resp, nil
}

// SetAutoLimiting enables or disables waiting on the local bucket.
func (d *RateLimitedDoer) SetAutoLimiting(enabled bool) {
	d.isAutoLimiting.Store(enabled)
}

// Limit returns the current bucket size in points per minute.
func (d *RateLimitedDoer) Limit() int {
	return d.limiter.Burst()
}
