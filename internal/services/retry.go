package services

import (
	"context"
	"errors"
	"io"
	"net"
	"regexp"
	"strings"
	"syscall"
	"time"
)

// retryPolicy is a bounded retry with quadratic backoff: the sleep after
// attempt N is base * N². Only errors the classifier accepts are retried;
// everything else propagates immediately.
type retryPolicy struct {
	attempts  int
	base      time.Duration
	retryable func(error) bool
}

func (p retryPolicy) do(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !p.retryable(lastErr) || attempt == p.attempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.base * time.Duration(attempt*attempt)):
		}
	}
	return lastErr
}

// isTransientNetworkError matches connection resets, timeouts, and DNS
// failures — the classes safe to retry. Auth, quota, and malformed-file
// errors must fall through.
func isTransientNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host")
}

// retryableStatusRegex matches 429/5xx only when anchored to a status-code
// phrase, so stray digits in byte counts or IDs never look retryable.
var retryableStatusRegex = regexp.MustCompile(`(?:\berror|\bstatus(?:\s+code)?:?|\bcode:?)\s*(?:429|500|502|503)\b`)

// isRetryableProviderError additionally accepts rate-limit and 5xx signatures
// coming back from a generation provider.
func isRetryableProviderError(err error) bool {
	if isTransientNetworkError(err) {
		return true
	}
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	if retryableStatusRegex.MatchString(msg) {
		return true
	}
	for _, marker := range []string{"rate limit", "resource exhausted", "too many requests", "unavailable", "overloaded", "internal error"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
