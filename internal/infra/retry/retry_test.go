package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := &HTTPError{StatusCode: 400}
	err := Do(context.Background(), Options{MaxRetries: 5, BaseDelay: time.Millisecond}, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("err = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDo_CustomClassifier(t *testing.T) {
	flaky := errors.New("flaky")
	calls := 0
	err := Do(context.Background(), Options{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		Retryable:  func(err error) bool { return errors.Is(err, flaky) },
	}, func() error {
		calls++
		return flaky
	})
	if !errors.Is(err, flaky) {
		t.Fatalf("err = %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, Options{}, func() error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestOptionsWait_Bounds(t *testing.T) {
	opts := Options{BaseDelay: 10 * time.Millisecond, MaxDelay: 40 * time.Millisecond}
	for attempt := 0; attempt < 40; attempt++ {
		d := opts.wait(attempt, &HTTPError{StatusCode: 503})
		if d < 0 || d > 40*time.Millisecond {
			t.Fatalf("attempt %d: wait %v out of bounds", attempt, d)
		}
	}
}

func TestOptionsWait_HonoursRetryAfter(t *testing.T) {
	opts := Options{BaseDelay: time.Millisecond, MaxDelay: time.Minute}
	if d := opts.wait(0, &HTTPError{StatusCode: 429, RetryAfter: 7 * time.Second}); d != 7*time.Second {
		t.Fatalf("wait = %v, want 7s", d)
	}

	opts.MaxDelay = time.Second
	if d := opts.wait(0, &HTTPError{StatusCode: 429, RetryAfter: 7 * time.Second}); d != time.Second {
		t.Fatalf("wait = %v, want capped 1s", d)
	}
}

func TestIsRetryable(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !IsRetryable(&HTTPError{StatusCode: code}) {
			t.Errorf("status %d should retry", code)
		}
	}
	for _, code := range []int{400, 401, 403, 404, 501} {
		if IsRetryable(&HTTPError{StatusCode: code}) {
			t.Errorf("status %d should not retry", code)
		}
	}
	if IsRetryable(errors.New("plain")) || IsRetryable(nil) {
		t.Error("non-HTTP errors should not retry")
	}
}
