package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithExponentialBackoff_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	ctx := context.Background()
	maxRetries := 3
	err := WithExponentialBackoff(ctx, operation,
		WithMaxRetries(maxRetries),
		WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error after max retries, got nil")
	}
	// MaxRetries is the number of retries after the first attempt
	// So total attempts = maxRetries + 1
	expectedAttempts := maxRetries + 1
	if attempts != expectedAttempts {
		t.Errorf("Expected %d attempts (1 + %d retries), got: %d", expectedAttempts, maxRetries, attempts)
	}
}

func TestWithExponentialBackoff_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error due to context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_FatalError(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("fatal error"))
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected fatal error, got nil")
	}
	if !IsFatal(err) {
		t.Errorf("Expected fatal error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt (no retries for fatal error), got: %d", attempts)
	}
}

func TestFatal(t *testing.T) {
	t.Parallel()

	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := Fatal(base)
	if !IsFatal(wrapped) {
		t.Error("Fatal error not detected by IsFatal")
	}
	if !errors.Is(wrapped, base) {
		t.Error("Fatal should preserve the wrapped error chain")
	}
	if IsFatal(base) {
		t.Error("plain error should not be fatal")
	}
}
