package x11

import (
	"errors"
	"image"

	"github.com/1broseidon/lvport/internal/backend"
)

var errNotWindow = errors.New("display is not an x11 window")

// Pointer is the mouse input of a simulator window.
type Pointer struct {
	win    window
	cursor image.Image
}

func (p *Pointer) Name() string                 { return "x11" }
func (p *Pointer) Read() []backend.PointerEvent { return p.win.TakeEvents() }
func (p *Pointer) Cursor() image.Image          { return p.cursor }

// Close is a no-op; the window owns the connection.
func (p *Pointer) Close() error { return nil }
