package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNilLimiterNeverBlocks(t *testing.T) {
	l := NewLimiter(0, time.Second)
	if l != nil {
		t.Fatal("expected nil limiter for maxConcurrent 0")
	}
	for i := 0; i < 3; i++ {
		release, err := l.Acquire(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		release()
	}
}

func TestLimiterQueueTimeout(t *testing.T) {
	l := NewLimiter(1, 20*time.Millisecond)

	release, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := l.Acquire(context.Background()); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("second Acquire() error = %v, want ErrQueueFull", err)
	}

	release()
	release2, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
	release2()
}

func TestRegistryRejectsWhenQueueFull(t *testing.T) {
	l := NewLimiter(1, 10*time.Millisecond)
	r := NewRegistry(newTestLoader(NewHTTPFetcher("test")), NewPreprocessor(nil), NewEncoder(75), WithLimiter(l))

	release, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	_, err = r.Invoke(context.Background(), "Base64ToImage", map[string]any{"base64_str": ""})
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Invoke() error = %v, want ErrQueueFull", err)
	}
}
