package ui

import (
	"image"

	"github.com/1broseidon/lvport/internal/backend"
)

// PointerAction is what a pointer sample means relative to the previous one.
type PointerAction int

const (
	PointerMove PointerAction = iota
	PointerPress
	PointerRelease
)

func (a PointerAction) String() string {
	switch a {
	case PointerPress:
		return "press"
	case PointerRelease:
		return "release"
	default:
		return "move"
	}
}

// PointerState is delivered to the active screen for every pointer change.
type PointerState struct {
	X, Y    int
	Pressed bool
	Action  PointerAction
}

// Point returns the position as an image.Point for hit testing.
func (p PointerState) Point() image.Point { return image.Pt(p.X, p.Y) }

type input struct {
	name    string
	read    func() []backend.PointerEvent
	cursor  image.Image
	x, y    int
	pressed bool
}

// ReadInput polls every pointer and dispatches the changes to the screen.
// It runs from the read timer.
func (e *Engine) ReadInput() {
	for _, in := range e.inputs {
		for _, ev := range in.read() {
			e.dispatch(in, ev)
		}
	}
}

func (e *Engine) dispatch(in *input, ev backend.PointerEvent) {
	action := PointerMove
	switch {
	case ev.Pressed && !in.pressed:
		action = PointerPress
	case !ev.Pressed && in.pressed:
		action = PointerRelease
	case ev.X == in.x && ev.Y == in.y:
		return
	}
	in.x, in.y, in.pressed = ev.X, ev.Y, ev.Pressed
	if in.cursor != nil {
		e.dirty = true
	}
	if e.screen != nil {
		e.screen.HandlePointer(PointerState{X: ev.X, Y: ev.Y, Pressed: ev.Pressed, Action: action})
	}
}
