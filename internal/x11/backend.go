package x11

import (
	"context"
	"image"
	"log/slog"

	"github.com/1broseidon/lvport/internal/backend"
)

// WindowTitle is the title of the simulator window.
const WindowTitle = "LVGL X11 Simulation"

var (
	connectFn    = NewConnection
	openWindowFn = func(c *Connection, title string, w, h int) (window, error) {
		return OpenWindow(c, title, w, h)
	}
)

// Backend opens a simulator window. Input always comes from the window
// itself; the cursor image is drawn by the renderer at the pointer position.
type Backend struct {
	width, height int
	cursor        image.Image
	logger        *slog.Logger
}

// NewBackend returns an X11 backend for a w x h window. A nil cursor leaves
// the host cursor visible.
func NewBackend(w, h int, cursor image.Image, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{width: w, height: h, cursor: cursor, logger: logger}
}

func (b *Backend) Kind() backend.Kind { return backend.KindX11 }
func (b *Backend) Device() string     { return WindowTitle }

func (b *Backend) Create(ctx context.Context) (backend.Display, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn, err := connectFn()
	if err != nil {
		return nil, backend.NewError(backend.ErrDeviceOpen, backend.KindX11, "$DISPLAY", err)
	}
	win, err := openWindowFn(conn, WindowTitle, b.width, b.height)
	if err != nil {
		conn.Close()
		return nil, backend.NewError(backend.ErrWindowCreate, backend.KindX11, WindowTitle, err)
	}
	win.OnClose(func() {
		// The window stays open; the process ends on SIGINT/SIGTERM.
		b.logger.Debug("x11 close request ignored", "title", WindowTitle)
	})
	return win, nil
}

func (b *Backend) BindPointer(d backend.Display) (backend.PointerDevice, error) {
	win, ok := d.(window)
	if !ok {
		return nil, backend.NewError(backend.ErrDeviceBind, backend.KindX11, WindowTitle, errNotWindow)
	}
	if b.cursor != nil {
		if err := win.HideCursor(); err != nil {
			b.logger.Warn("could not hide host cursor", "error", err)
		}
	}
	return &Pointer{win: win, cursor: b.cursor}, nil
}
