package ui

import "time"

// TimerFunc is called each time its timer fires.
type TimerFunc func(t *Timer)

// Timer runs a function periodically from Engine.Handler.
type Timer struct {
	engine  *Engine
	period  time.Duration
	fn      TimerFunc
	lastRun time.Time
	paused  bool
	deleted bool
	// repeat counts remaining runs; -1 repeats forever.
	repeat int
}

// AddTimer registers fn to run every period. The first run is one period
// from now.
func (e *Engine) AddTimer(period time.Duration, fn TimerFunc) *Timer {
	t := &Timer{
		engine:  e,
		period:  period,
		fn:      fn,
		lastRun: e.now(),
		repeat:  -1,
	}
	e.timers = append(e.timers, t)
	return t
}

func (t *Timer) Pause() { t.paused = true }

// Resume restarts a paused timer without resetting its period.
func (t *Timer) Resume() { t.paused = false }

// Delete removes the timer. It never runs again, even within the current
// Handler pass.
func (t *Timer) Delete() { t.deleted = true }

func (t *Timer) Paused() bool { return t.paused }

func (t *Timer) SetPeriod(d time.Duration) { t.period = d }

func (t *Timer) Period() time.Duration { return t.period }

// SetRepeatCount limits the timer to n more runs. A negative n repeats
// forever; zero deletes it.
func (t *Timer) SetRepeatCount(n int) {
	switch {
	case n < 0:
		t.repeat = -1
	case n == 0:
		t.Delete()
	default:
		t.repeat = n
	}
}

// Ready makes the timer due on the next Handler call.
func (t *Timer) Ready() {
	t.lastRun = t.engine.now().Add(-t.period)
}

// Reset restarts the period from now.
func (t *Timer) Reset() {
	t.lastRun = t.engine.now()
}

func (t *Timer) active() bool {
	return !t.deleted && !t.paused
}

func (t *Timer) remaining(now time.Time) time.Duration {
	return t.lastRun.Add(t.period).Sub(now)
}
