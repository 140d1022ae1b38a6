package events

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultAttempts = 3
	defaultDelay    = time.Second
	maxDelay        = 30 * time.Second
)

// retryPolicy runs a handler up to attempts times, doubling the wait after
// each failure up to maxDelay. Zero values fall back to the defaults.
type retryPolicy struct {
	attempts int
	delay    time.Duration
}

func (p retryPolicy) normalized() retryPolicy {
	if p.attempts <= 0 {
		p.attempts = defaultAttempts
	}
	if p.delay <= 0 {
		p.delay = defaultDelay
	}
	return p
}

// do calls fn until it succeeds, the attempts run out or ctx ends. onRetry is
// called before each wait.
func (p retryPolicy) do(ctx context.Context, fn func(context.Context) error, onRetry func(attempt int, next time.Duration, err error)) error {
	p = p.normalized()
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == p.attempts {
			return fmt.Errorf("gave up after %d attempts: %w", p.attempts, err)
		}
		delay := p.backoff(attempt)
		if onRetry != nil {
			onRetry(attempt, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry interrupted: %w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}
}

// backoff is the wait after the given failed attempt: delay, 2*delay, 4*delay
// and so on, capped at maxDelay.
func (p retryPolicy) backoff(attempt int) time.Duration {
	d := p.delay
	for i := 1; i < attempt && d < maxDelay; i++ {
		d *= 2
	}
	return min(d, maxDelay)
}
