package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_FirstRequestImmediate(t *testing.T) {
	l := NewHostLimiter(5 * time.Second)

	start := time.Now()
	if err := l.Wait(context.Background(), "https://www.stepstone.de/jobs"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait took %v, want immediate", elapsed)
	}
}

func TestWait_EnforcesIntervalPerHost(t *testing.T) {
	l := NewHostLimiter(200 * time.Millisecond)
	ctx := context.Background()

	if err := l.Wait(ctx, "https://a.example/jobs?page=1"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	start := time.Now()
	if err := l.Wait(ctx, "https://a.example/jobs?page=2"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("second Wait took %v, want ~200ms delay", elapsed)
	}
}

func TestWait_DifferentHostsIndependent(t *testing.T) {
	l := NewHostLimiter(5 * time.Second)
	ctx := context.Background()

	if err := l.Wait(ctx, "https://a.example/"); err != nil {
		t.Fatalf("Wait a: %v", err)
	}

	start := time.Now()
	if err := l.Wait(ctx, "https://b.example/"); err != nil {
		t.Fatalf("Wait b: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("other-host Wait took %v, want immediate", elapsed)
	}
}

func TestWait_CancelledContext(t *testing.T) {
	l := NewHostLimiter(10 * time.Second)

	if err := l.Wait(context.Background(), "https://a.example/"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "https://a.example/"); err == nil {
		t.Fatal("expected error when context expires while waiting")
	}
}

func TestWait_ZeroIntervalNeverBlocks(t *testing.T) {
	l := NewHostLimiter(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := l.Wait(ctx, "https://a.example/"); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("10 waits took %v, want no blocking", elapsed)
	}
}
