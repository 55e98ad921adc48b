// Package ui is a small retained-mode renderer: timers, one active screen,
// pointer dispatch and a software cursor drawn over the display back buffer.
package ui

import (
	"image"
	"image/draw"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/1broseidon/lvport/internal/backend"
)

const (
	// MaxIdle caps the delay Handler returns when no timer is due sooner.
	MaxIdle = 500 * time.Millisecond

	DefaultRefreshPeriod = 33 * time.Millisecond
	DefaultReadPeriod    = 33 * time.Millisecond
)

// Screen draws the whole display and reacts to pointer input.
type Screen interface {
	Draw(dst *image.RGBA, now time.Time)
	HandlePointer(p PointerState)
}

// Engine owns the timers and the active screen of one display.
type Engine struct {
	// Now is the clock used for timers and drawing. Tests replace it.
	Now func() time.Time

	display backend.Display
	scene   *image.RGBA
	screen  Screen
	inputs  []*input
	timers  []*Timer
	dirty   bool
	logger  *slog.Logger

	refresh *Timer
	read    *Timer
	frames  atomic.Uint64
}

// NewEngine returns an engine drawing to d. Pointer input delivered by d
// itself is picked up automatically; evdev or window pointers are added with
// AddPointer.
func NewEngine(d backend.Display, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Engine{
		Now:     time.Now,
		display: d,
		scene:   image.NewRGBA(image.Rect(0, 0, d.Width(), d.Height())),
		dirty:   true,
		logger:  logger,
	}
	if src, ok := d.(backend.PointerSource); ok {
		e.inputs = append(e.inputs, &input{name: "display", read: src.PointerEvents})
	}
	e.refresh = e.AddTimer(DefaultRefreshPeriod, func(*Timer) { e.Refresh() })
	e.read = e.AddTimer(DefaultReadPeriod, func(*Timer) { e.ReadInput() })
	return e
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// AddPointer polls p on every read tick and draws its cursor, if any.
func (e *Engine) AddPointer(p backend.PointerDevice) {
	if p == nil {
		return
	}
	in := &input{name: p.Name(), read: p.Read, cursor: p.Cursor()}
	in.x, in.y = e.display.Width()/2, e.display.Height()/2
	e.inputs = append(e.inputs, in)
	e.dirty = true
}

// SetScreen makes s the active screen and schedules a redraw.
func (e *Engine) SetScreen(s Screen) {
	e.screen = s
	e.dirty = true
}

func (e *Engine) Screen() Screen { return e.screen }

// Invalidate schedules a redraw of the active screen.
func (e *Engine) Invalidate() { e.dirty = true }

// RefreshTimer and ReadTimer expose the built-in timers, e.g. to change
// their period.
func (e *Engine) RefreshTimer() *Timer { return e.refresh }
func (e *Engine) ReadTimer() *Timer    { return e.read }

// Frames returns how many frames were flushed. Safe for concurrent use.
func (e *Engine) Frames() uint64 { return e.frames.Load() }

// Handler runs every due timer once and returns how long the caller may
// sleep before calling it again.
func (e *Engine) Handler() time.Duration {
	now := e.now()
	// Timers added by callbacks wait for the next pass.
	pending := append([]*Timer(nil), e.timers...)
	for _, t := range pending {
		if !t.active() || t.remaining(now) > 0 {
			continue
		}
		t.lastRun = now
		if t.repeat > 0 {
			t.repeat--
		}
		t.fn(t)
		if t.repeat == 0 {
			t.deleted = true
		}
	}

	live := e.timers[:0]
	for _, t := range e.timers {
		if !t.deleted {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(e.timers); i++ {
		e.timers[i] = nil
	}
	e.timers = live

	next := MaxIdle
	now = e.now()
	for _, t := range e.timers {
		if !t.active() {
			continue
		}
		r := t.remaining(now)
		if r <= 0 {
			return 0
		}
		if r < next {
			next = r
		}
	}
	return next
}

// Refresh redraws the screen if it changed, composites the cursors and
// flushes. It runs from the refresh timer.
func (e *Engine) Refresh() {
	if !e.dirty {
		return
	}
	back := e.display.BackBuffer()
	if back == nil {
		return
	}
	if e.screen != nil {
		e.screen.Draw(e.scene, e.now())
	}
	draw.Draw(back, back.Bounds(), e.scene, image.Point{}, draw.Src)
	for _, in := range e.inputs {
		if in.cursor == nil {
			continue
		}
		r := in.cursor.Bounds().Sub(in.cursor.Bounds().Min).Add(image.Pt(in.x, in.y))
		draw.Draw(back, r, in.cursor, in.cursor.Bounds().Min, draw.Over)
	}
	if err := e.display.Flush(); err != nil {
		e.logger.Warn("flush failed", "error", err)
		return
	}
	e.dirty = false
	e.frames.Add(1)
}

// Bounds is the drawable area of the display.
func (e *Engine) Bounds() image.Rectangle { return e.scene.Bounds() }
