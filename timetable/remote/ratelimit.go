package remote

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

const (
	decreaseFactor = 0.8 // back off hard when the timetable service struggles
	increaseFactor = 0.2
	minLimit       = 1 // requests per second
)

type RateLimiter interface {
	Succeed()
	Fail()
	Wait(context.Context) error
}

// AdaptiveRateLimiter lowers its rate on failed responses and slowly recovers on success
type AdaptiveRateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	limiter     *rate.Limiter
	maxIncrease rate.Limit
}

func NewAdaptiveRateLimiter(startingLimit rate.Limit, burst int, maxIncrease rate.Limit) *AdaptiveRateLimiter {
	return &AdaptiveRateLimiter{
		limit:       startingLimit,
		limiter:     rate.NewLimiter(startingLimit, burst),
		maxIncrease: maxIncrease,
	}
}

func (a *AdaptiveRateLimiter) Fail() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.setLimit(max(rate.Limit(float64(a.limit)*(1-decreaseFactor)), minLimit))
}

func (a *AdaptiveRateLimiter) Succeed() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.setLimit(min(rate.Limit(float64(a.limit)*(1+increaseFactor)), a.limit+a.maxIncrease))
}

func (a *AdaptiveRateLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

func (a *AdaptiveRateLimiter) Limit() rate.Limit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limit
}

func (a *AdaptiveRateLimiter) setLimit(newLimit rate.Limit) {
	a.limit = newLimit
	a.limiter.SetLimit(a.limit)
}

type rateLimitedRoundTripper struct {
	transport http.RoundTripper
	limiter   RateLimiter
}

// a missing timetable is an answer, not a failure
func (rt *rateLimitedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := rt.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := rt.transport.RoundTrip(req)
	if err != nil {
		rt.limiter.Fail()
		return nil, err
	}

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		rt.limiter.Fail()
	} else {
		rt.limiter.Succeed()
	}

	return resp, nil
}

func addRateLimiter(client *http.Client, limiter RateLimiter) {
	rt := &rateLimitedRoundTripper{
		limiter:   limiter,
		transport: client.Transport,
	}
	if rt.transport == nil {
		rt.transport = http.DefaultTransport
	}
	client.Transport = rt
}
