package runloop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRun_SleepsForTickResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := []time.Duration{5 * time.Millisecond, 0, 500 * time.Millisecond}
	var slept []time.Duration
	l := &Loop{
		Tick: func() time.Duration {
			d := results[0]
			results = results[1:]
			if len(results) == 0 {
				cancel()
			}
			return d
		},
		Sleep: func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}

	err := l.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	want := []time.Duration{5 * time.Millisecond, 0, 500 * time.Millisecond}
	if len(slept) != len(want) {
		t.Fatalf("slept = %v, want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("slept = %v, want %v", slept, want)
		}
	}
	if l.Ticks() != 3 {
		t.Fatalf("Ticks() = %d, want 3", l.Ticks())
	}
}

func TestRun_ZeroTickDoesNotExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := 0
	l := &Loop{
		Tick: func() time.Duration {
			n++
			if n == 100 {
				cancel()
			}
			return 0
		},
		Sleep: func(context.Context, time.Duration) error { return nil },
	}
	_ = l.Run(ctx)
	if n != 100 {
		t.Fatalf("loop ran %d ticks, want 100", n)
	}
}

func TestRun_NegativeDelayClampedToZero(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var got time.Duration = -1
	l := &Loop{
		Tick: func() time.Duration { cancel(); return -time.Second },
		Sleep: func(_ context.Context, d time.Duration) error {
			got = d
			return nil
		},
	}
	_ = l.Run(ctx)
	if got != 0 {
		t.Fatalf("slept %v, want 0", got)
	}
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &Loop{Tick: func() time.Duration {
		t.Fatalf("Tick must not run")
		return 0
	}}
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v", err)
	}
}

func TestSleepContext_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := SleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("SleepContext() = %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("SleepContext did not return promptly")
	}
}

func TestSleepContext_Elapses(t *testing.T) {
	if err := SleepContext(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("SleepContext() = %v", err)
	}
}
