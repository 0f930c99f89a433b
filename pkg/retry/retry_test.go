package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	ctx := context.Background()
	retrier := NewDefaultRetrier()

	counter := 0
	operation := func() error {
		counter++
		return nil
	}

	if err := retrier.Do(ctx, operation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(&Config{
		MaxRetries:    3,
		BackoffFactor: 1.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
	})

	counter := 0
	operation := func() error {
		counter++
		if counter < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	if err := retrier.Do(ctx, operation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(&Config{
		MaxRetries:    2,
		BackoffFactor: 1.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
	})

	wantErr := errors.New("persistent error")
	counter := 0
	operation := func() error {
		counter++
		return wantErr
	}

	err := retrier.Do(ctx, operation)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	retrier := NewRetrier(&Config{
		MaxRetries:    5,
		BackoffFactor: 2.0,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
	})

	operation := func() error {
		return errors.New("always fails")
	}

	if err := retrier.Do(ctx, operation); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
