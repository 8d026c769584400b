package services

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"
)

func TestRetryPolicy_RecoversFromTransientFailures(t *testing.T) {
	calls := 0
	policy := retryPolicy{attempts: 3, base: time.Millisecond, retryable: isTransientNetworkError}

	err := policy.do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("upload failed: %w", syscall.ECONNRESET)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("do() error = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
}

func TestRetryPolicy_StopsOnNonRetryableError(t *testing.T) {
	calls := 0
	authErr := errors.New("401 invalid api key")
	policy := retryPolicy{attempts: 3, base: time.Millisecond, retryable: isTransientNetworkError}

	err := policy.do(context.Background(), func() error {
		calls++
		return authErr
	})

	if !errors.Is(err, authErr) {
		t.Fatalf("do() error = %v, want %v", err, authErr)
	}
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
}

func TestRetryPolicy_ExhaustsAttempts(t *testing.T) {
	calls := 0
	policy := retryPolicy{attempts: 2, base: time.Millisecond, retryable: isRetryableProviderError}

	err := policy.do(context.Background(), func() error {
		calls++
		return errors.New("503 service unavailable")
	})

	if err == nil {
		t.Fatal("do() should return the last error after exhausting attempts")
	}
	if calls != 2 {
		t.Errorf("op called %d times, want 2", calls)
	}
}

func TestRetryPolicy_HonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := retryPolicy{attempts: 5, base: time.Hour, retryable: func(error) bool { return true }}
	err := policy.do(ctx, func() error { return errors.New("connection reset by peer") })

	if !errors.Is(err, context.Canceled) {
		t.Errorf("do() error = %v, want context.Canceled", err)
	}
}

func TestIsTransientNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection reset", syscall.ECONNRESET, true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"wrapped reset", fmt.Errorf("post: %w", syscall.ECONNRESET), true},
		{"deadline", context.DeadlineExceeded, true},
		{"string match", errors.New("dial tcp: connection refused"), true},
		{"auth error", errors.New("401 invalid api key"), false},
		{"quota error", errors.New("insufficient quota"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransientNetworkError(tt.err); got != tt.want {
				t.Errorf("isTransientNetworkError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryableProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit text", errors.New("rate limit exceeded, retry later"), true},
		{"429 status", errors.New("googleapi: Error 429"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE EXHAUSTED"), true},
		{"503 status code", errors.New("error, status code: 503, message: try again"), true},
		{"unavailable", errors.New("service unavailable"), true},
		{"overloaded", errors.New("model is overloaded"), true},
		{"transient network", syscall.ECONNRESET, true},
		{"bad request", errors.New("error, status code: 400, message: invalid argument"), false},
		{"safety block", errors.New("blocked by safety settings"), false},
		{"byte count is not a status", errors.New("audio payload of 500 bytes rejected: format unsupported"), false},
		{"id digits are not a status", errors.New("video 5021502429 not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableProviderError(tt.err); got != tt.want {
				t.Errorf("isRetryableProviderError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
