// Package runloop drives the engine: tick, sleep for the returned delay,
// repeat until the context ends.
package runloop

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Loop repeatedly calls Tick and sleeps for the duration it returns.
type Loop struct {
	// Tick does one round of work and returns how long to wait before the
	// next one.
	Tick func() time.Duration
	// Sleep waits for d or until ctx is done. Defaults to SleepContext.
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger *slog.Logger

	ticks atomic.Uint64
}

// Run loops until ctx is cancelled and returns ctx.Err(). A zero delay from
// Tick means "run again now", not "stop".
func (l *Loop) Run(ctx context.Context) error {
	sleep := l.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Debug("run loop started")
	for {
		if err := ctx.Err(); err != nil {
			logger.Debug("run loop stopped", "ticks", l.ticks.Load(), "reason", err)
			return err
		}
		d := l.Tick()
		l.ticks.Add(1)
		if d < 0 {
			d = 0
		}
		if err := sleep(ctx, d); err != nil {
			logger.Debug("run loop stopped", "ticks", l.ticks.Load(), "reason", err)
			return err
		}
	}
}

// Ticks returns how many times Tick ran. Safe for concurrent use.
func (l *Loop) Ticks() uint64 { return l.ticks.Load() }

// SleepContext sleeps for d, returning early with ctx.Err() if ctx ends.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
