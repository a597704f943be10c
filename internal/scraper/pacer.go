package scraper

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/thoni-miguel/web-scraping-template/internal/config"
)

// pacer spaces out page navigations. It combines a token bucket capped at
// the configured requests per minute with a fixed inter-request delay.
type pacer struct {
	limiter *rate.Limiter
	delay   time.Duration
	first   bool
}

func newPacer(rl config.RateLimitConfig) *pacer {
	rpm := rl.RequestsPerMinute
	if rpm <= 0 {
		rpm = config.DefaultRequestsPerMinute
	}
	return &pacer{
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		delay:   time.Duration(rl.DelayMS) * time.Millisecond,
		first:   true,
	}
}

// wait blocks until the next request may go out. The very first request
// of a run is never delayed.
func (p *pacer) wait(ctx context.Context) error {
	if p.first {
		p.first = false
		return p.limiter.Wait(ctx)
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.limiter.Wait(ctx)
}
