package retry

// Bounded retries for flaky remote calls
// Waits grow exponentially with full jitter; a 429 with a retry-after hint waits exactly that long

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

const defaultBaseDelay = 300 * time.Millisecond

type Options struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration // 0 means uncapped

	// Retryable overrides IsRetryable when set.
	Retryable func(error) bool
}

// HTTPError is a failed remote call reduced to its status code.
type HTTPError struct {
	StatusCode int
	Body       []byte
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("remote call failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote call failed with status %d: %s", e.StatusCode, e.Body)
}

// IsRetryable reports rate limiting and gateway/server hiccups.
func IsRetryable(err error) bool {
	var he *HTTPError
	if !errors.As(err, &he) {
		return false
	}
	return he.StatusCode == 429 || he.StatusCode == 500 || (he.StatusCode >= 502 && he.StatusCode <= 504)
}

// wait picks the pause after the failed attempt (0-based).
func (o Options) wait(attempt int, err error) time.Duration {
	var he *HTTPError
	if errors.As(err, &he) && he.StatusCode == 429 && he.RetryAfter > 0 {
		return o.capped(he.RetryAfter)
	}

	ceiling := o.capped(o.BaseDelay << min(attempt, 30))
	if ceiling <= 0 {
		return 0
	}
	return rand.N(ceiling + 1)
}

func (o Options) capped(d time.Duration) time.Duration {
	if o.MaxDelay > 0 && d > o.MaxDelay {
		return o.MaxDelay
	}
	return d
}

// Do runs fn once plus up to MaxRetries more times while the error is retryable.
// The last error is returned as-is; cancelling ctx stops waiting immediately.
func Do(ctx context.Context, opts Options, fn func() error) error {
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	retryable := opts.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil || attempt >= opts.MaxRetries || !retryable(err) {
			return err
		}

		timer := time.NewTimer(opts.wait(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
