package viewstate

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy bounds gateway calls. Timeout applies per attempt; Attempts and
// the delays only apply to reads.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Timeout   time.Duration
}

// DefaultRetryPolicy is used when a controller is configured without one.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  3,
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  2 * time.Second,
		Timeout:   5 * time.Second,
	}
}

// Retry runs fn until it succeeds, the attempts are spent, or ctx ends.
// The delay between attempts doubles up to MaxDelay.
func Retry(ctx context.Context, p RetryPolicy, fn func(context.Context) error) error {
	attempts := max(1, p.Attempts)
	delay := p.BaseDelay

	var err error
	for i := range attempts {
		err = WithTimeout(ctx, p.Timeout, fn)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}

// WithTimeout runs fn under a derived context bounded by d. A zero d adds no bound.
func WithTimeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	if d <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}
