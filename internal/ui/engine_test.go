package ui

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/1broseidon/lvport/internal/backend"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeDisplay struct {
	back    *image.RGBA
	flushes int
	events  []backend.PointerEvent
}

func newFakeDisplay(w, h int) *fakeDisplay {
	return &fakeDisplay{back: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (d *fakeDisplay) Width() int              { return d.back.Rect.Dx() }
func (d *fakeDisplay) Height() int             { return d.back.Rect.Dy() }
func (d *fakeDisplay) BackBuffer() *image.RGBA { return d.back }
func (d *fakeDisplay) Flush() error            { d.flushes++; return nil }
func (d *fakeDisplay) Close() error            { return nil }

// sourceDisplay also delivers its own pointer input, like an SDL window.
type sourceDisplay struct{ *fakeDisplay }

func (d sourceDisplay) PointerEvents() []backend.PointerEvent {
	out := d.events
	d.events = nil
	return out
}

type fakePointer struct {
	queue  [][]backend.PointerEvent
	cursor image.Image
}

func (p *fakePointer) Name() string        { return "fake" }
func (p *fakePointer) Cursor() image.Image { return p.cursor }
func (p *fakePointer) Close() error        { return nil }
func (p *fakePointer) Read() []backend.PointerEvent {
	if len(p.queue) == 0 {
		return nil
	}
	out := p.queue[0]
	p.queue = p.queue[1:]
	return out
}

type recordingScreen struct {
	draws  int
	states []PointerState
	fill   color.RGBA
}

func (s *recordingScreen) Draw(dst *image.RGBA, now time.Time) {
	s.draws++
	Fill(dst, s.fill)
}

func (s *recordingScreen) HandlePointer(p PointerState) { s.states = append(s.states, p) }

func newTestEngine(d backend.Display) (*Engine, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	e := NewEngine(d, nil)
	e.Now = clock.Now
	e.RefreshTimer().Reset()
	e.ReadTimer().Reset()
	return e, clock
}

func TestHandler_RunsDueTimersOnce(t *testing.T) {
	e, clock := newTestEngine(newFakeDisplay(10, 10))
	runs := 0
	e.AddTimer(100*time.Millisecond, func(*Timer) { runs++ })

	e.Handler()
	if runs != 0 {
		t.Fatalf("timer ran before its period elapsed")
	}
	clock.Advance(250 * time.Millisecond)
	e.Handler()
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 even when several periods elapsed", runs)
	}
}

func TestHandler_ReturnsTimeUntilNextTimer(t *testing.T) {
	e, clock := newTestEngine(newFakeDisplay(10, 10))
	e.RefreshTimer().Pause()
	e.ReadTimer().Pause()
	e.AddTimer(200*time.Millisecond, func(*Timer) {})

	if got := e.Handler(); got != 200*time.Millisecond {
		t.Fatalf("Handler() = %v, want 200ms", got)
	}
	clock.Advance(150 * time.Millisecond)
	if got := e.Handler(); got != 50*time.Millisecond {
		t.Fatalf("Handler() = %v, want 50ms", got)
	}
}

func TestHandler_CapsAtMaxIdle(t *testing.T) {
	e, _ := newTestEngine(newFakeDisplay(10, 10))
	e.RefreshTimer().Delete()
	e.ReadTimer().Delete()
	e.AddTimer(10*time.Second, func(*Timer) {})
	if got := e.Handler(); got != MaxIdle {
		t.Fatalf("Handler() = %v, want %v", got, MaxIdle)
	}
}

func TestHandler_NoTimersReturnsMaxIdle(t *testing.T) {
	e, _ := newTestEngine(newFakeDisplay(10, 10))
	e.RefreshTimer().Delete()
	e.ReadTimer().Delete()
	if got := e.Handler(); got != MaxIdle {
		t.Fatalf("Handler() = %v, want %v", got, MaxIdle)
	}
}

func TestHandler_ZeroWhenTimerDueAgain(t *testing.T) {
	e, clock := newTestEngine(newFakeDisplay(10, 10))
	e.RefreshTimer().Pause()
	e.ReadTimer().Pause()
	e.AddTimer(50*time.Millisecond, func(*Timer) {
		clock.Advance(60 * time.Millisecond) // slow callback
	})
	clock.Advance(50 * time.Millisecond)
	if got := e.Handler(); got != 0 {
		t.Fatalf("Handler() = %v, want 0", got)
	}
}

func TestTimer_PauseResumeDelete(t *testing.T) {
	e, clock := newTestEngine(newFakeDisplay(10, 10))
	runs := 0
	tm := e.AddTimer(10*time.Millisecond, func(*Timer) { runs++ })

	tm.Pause()
	clock.Advance(20 * time.Millisecond)
	e.Handler()
	if runs != 0 {
		t.Fatalf("paused timer ran")
	}
	tm.Resume()
	e.Handler()
	if runs != 1 {
		t.Fatalf("resumed timer did not run")
	}
	tm.Delete()
	clock.Advance(20 * time.Millisecond)
	e.Handler()
	if runs != 1 {
		t.Fatalf("deleted timer ran")
	}
}

func TestTimer_RepeatCount(t *testing.T) {
	e, clock := newTestEngine(newFakeDisplay(10, 10))
	runs := 0
	tm := e.AddTimer(10*time.Millisecond, func(*Timer) { runs++ })
	tm.SetRepeatCount(2)
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Millisecond)
		e.Handler()
	}
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}
}

func TestTimer_DeleteFromCallbackSkipsLaterTimer(t *testing.T) {
	e, clock := newTestEngine(newFakeDisplay(10, 10))
	var second *Timer
	ran := false
	e.AddTimer(10*time.Millisecond, func(*Timer) { second.Delete() })
	second = e.AddTimer(10*time.Millisecond, func(*Timer) { ran = true })
	clock.Advance(10 * time.Millisecond)
	e.Handler()
	if ran {
		t.Fatalf("timer deleted earlier in the pass still ran")
	}
}

func TestTimer_Ready(t *testing.T) {
	e, _ := newTestEngine(newFakeDisplay(10, 10))
	runs := 0
	tm := e.AddTimer(time.Hour, func(*Timer) { runs++ })
	tm.Ready()
	e.Handler()
	if runs != 1 {
		t.Fatalf("Ready timer did not run")
	}
}

func TestRefresh_DrawsOnlyWhenInvalid(t *testing.T) {
	d := newFakeDisplay(4, 4)
	e, clock := newTestEngine(d)
	s := &recordingScreen{fill: RGB(0x102030)}
	e.SetScreen(s)

	clock.Advance(DefaultRefreshPeriod)
	e.Handler()
	if s.draws != 1 || d.flushes != 1 || e.Frames() != 1 {
		t.Fatalf("draws=%d flushes=%d frames=%d, want 1/1/1", s.draws, d.flushes, e.Frames())
	}
	if got := d.back.RGBAAt(2, 2); got != RGB(0x102030) {
		t.Fatalf("back buffer pixel = %v", got)
	}

	clock.Advance(DefaultRefreshPeriod)
	e.Handler()
	if s.draws != 1 || d.flushes != 1 {
		t.Fatalf("clean screen was redrawn")
	}

	e.Invalidate()
	clock.Advance(DefaultRefreshPeriod)
	e.Handler()
	if s.draws != 2 || d.flushes != 2 {
		t.Fatalf("invalidated screen was not redrawn")
	}
}

func TestRefresh_CompositesCursor(t *testing.T) {
	d := newFakeDisplay(20, 20)
	e, _ := newTestEngine(d)
	e.SetScreen(&recordingScreen{fill: RGB(0x000000)})

	cur := image.NewRGBA(image.Rect(0, 0, 2, 2))
	Fill(cur, color.RGBA{R: 0xff, A: 0xff})
	p := &fakePointer{cursor: cur, queue: [][]backend.PointerEvent{{{X: 5, Y: 6}}}}
	e.AddPointer(p)

	e.ReadInput()
	e.Refresh()
	if got := d.back.RGBAAt(5, 6); got.R != 0xff {
		t.Fatalf("cursor not drawn at pointer position, got %v", got)
	}
	if got := d.back.RGBAAt(10, 10); got.R != 0 {
		t.Fatalf("cursor drawn at the old centre position")
	}
}

func TestReadInput_DispatchesPressMoveRelease(t *testing.T) {
	d := newFakeDisplay(100, 100)
	e, _ := newTestEngine(d)
	s := &recordingScreen{}
	e.SetScreen(s)
	e.AddPointer(&fakePointer{queue: [][]backend.PointerEvent{{
		{X: 10, Y: 10, Pressed: true},
		{X: 10, Y: 10, Pressed: true},
		{X: 20, Y: 10, Pressed: true},
		{X: 20, Y: 10, Pressed: false},
	}}})

	e.ReadInput()
	want := []PointerAction{PointerPress, PointerMove, PointerRelease}
	if len(s.states) != len(want) {
		t.Fatalf("states = %+v", s.states)
	}
	for i, a := range want {
		if s.states[i].Action != a {
			t.Fatalf("state %d = %s, want %s", i, s.states[i].Action, a)
		}
	}
	if s.states[1].X != 20 {
		t.Fatalf("move X = %d", s.states[1].X)
	}
}

func TestNewEngine_UsesDisplayPointerSource(t *testing.T) {
	fd := newFakeDisplay(50, 50)
	fd.events = []backend.PointerEvent{{X: 1, Y: 2, Pressed: true}}
	e, _ := newTestEngine(sourceDisplay{fd})
	s := &recordingScreen{}
	e.SetScreen(s)
	e.ReadInput()
	if len(s.states) != 1 || s.states[0].Action != PointerPress {
		t.Fatalf("display events not dispatched: %+v", s.states)
	}
}
