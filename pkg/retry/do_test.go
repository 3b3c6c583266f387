// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_RetrySuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, WithMaxAttempts(3), WithBackoff(Fixed(time.Millisecond)))
	if err != nil {
		t.Errorf("expected no error after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_MaxAttempts(t *testing.T) {
	attempts := 0
	want := errors.New("persistent error")
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return want
	}, WithMaxAttempts(3), WithBackoff(Fixed(0)))
	if !errors.Is(err, want) {
		t.Errorf("expected last error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_Permanent(t *testing.T) {
	attempts := 0
	want := errors.New("invalid appsecret")
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return Permanent(want)
	}, WithMaxAttempts(5), WithBackoff(Fixed(0)))
	if err != want {
		t.Errorf("expected unwrapped permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
}

func TestDo_CustomRetryIf(t *testing.T) {
	retryable := errors.New("retryable")
	fatal := errors.New("fatal")
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return retryable
		}
		return fatal
	}, WithMaxAttempts(5), WithBackoff(Fixed(0)), WithRetryIf(func(err error) bool {
		return errors.Is(err, retryable)
	}))
	if !errors.Is(err, fatal) {
		t.Errorf("expected fatal error, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestDo_OnRetry(t *testing.T) {
	var seen []int
	_ = Do(context.Background(), func(ctx context.Context) error {
		return errors.New("boom")
	}, WithMaxAttempts(3), WithBackoff(Fixed(time.Millisecond)), WithOnRetry(func(attempt int, err error, wait time.Duration) {
		seen = append(seen, attempt)
		if wait != time.Millisecond {
			t.Errorf("unexpected wait %v", wait)
		}
	}))
	// no callback after the final attempt
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("unexpected retry callbacks %v", seen)
	}
}

func TestDo_ContextCancellationDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	attempts := 0
	start := time.Now()
	err := Do(ctx, func(ctx context.Context) error {
		attempts++
		return errors.New("error")
	}, WithMaxAttempts(5), WithBackoff(Fixed(time.Second)))

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("cancellation should interrupt the backoff")
	}
}

func TestDo_NoRetryOnPreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, func(ctx context.Context) error {
		attempts++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Errorf("expected 0 attempts, got %d", attempts)
	}
}

func TestDo_NoRetryOnContextError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return context.DeadlineExceeded
	}, WithMaxAttempts(3), WithBackoff(Fixed(0)))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_MaxElapsedTime(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("error")
	}, WithMaxAttempts(100), WithBackoff(Fixed(20*time.Millisecond)), WithMaxElapsedTime(50*time.Millisecond))
	if err == nil {
		t.Error("expected error")
	}
	if attempts >= 100 {
		t.Errorf("elapsed limit should stop early, got %d attempts", attempts)
	}
}

func TestDo_NilOptionsKeepDefaults(t *testing.T) {
	attempts := 0
	//nolint:staticcheck
	err := Do(nil, func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return errors.New("once")
		}
		return nil
	}, WithBackoff(nil), WithJitter(nil), WithRetryIf(nil), WithMaxAttempts(0), WithBackoff(Fixed(0)))
	if err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("x"), true},
		{context.Canceled, false},
		{context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		if got := IsRetryableError(tt.err); got != tt.want {
			t.Errorf("IsRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestBackoff_Exponential(t *testing.T) {
	b := Exponential(100*time.Millisecond, time.Second)
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond, 800 * time.Millisecond, time.Second, time.Second}
	for i, w := range want {
		if got := b.Next(i); got != w {
			t.Errorf("Next(%d) = %v, want %v", i, got, w)
		}
	}
	if got := Exponential(time.Millisecond).Next(100); got <= 0 {
		t.Errorf("uncapped backoff must not overflow, got %v", got)
	}
}

func TestJitter_FullJitter(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := FullJitter(100 * time.Millisecond)
		if d < 0 || d >= 100*time.Millisecond {
			t.Fatalf("jitter out of range: %v", d)
		}
	}
	if FullJitter(0) != 0 {
		t.Error("FullJitter(0) should be 0")
	}
	if NoJitter(time.Second) != time.Second {
		t.Error("NoJitter must be identity")
	}
}
