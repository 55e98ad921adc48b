//go:build sdl

// Package sdl shows the display in an SDL2 window. It is compiled only with
// the sdl build tag since it links against libSDL2.
package sdl

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/1broseidon/lvport/internal/backend"
)

// WindowTitle is the title of the SDL window.
const WindowTitle = "LVGL Simulator"

// Window is an SDL window with a streaming texture. It delivers its own mouse
// input, shown with the host cursor, and reports the window close button
// through Done.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	back     *image.RGBA

	mouseDown bool
	events    []backend.PointerEvent

	done     chan struct{}
	doneOnce sync.Once
}

// Open creates a w x h window. SDL must be driven from one OS thread, so the
// calling goroutine is locked to its thread; Flush and PointerEvents must be
// called from it.
func Open(w, h int) (*Window, error) {
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	win := &Window{done: make(chan struct{})}

	window, err := sdl.CreateWindow(WindowTitle,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(w), int32(h), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	win.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("create texture: %w", err)
	}
	win.texture = texture

	win.back = image.NewRGBA(image.Rect(0, 0, w, h))
	return win, nil
}

func (w *Window) Width() int              { return w.back.Rect.Dx() }
func (w *Window) Height() int             { return w.back.Rect.Dy() }
func (w *Window) BackBuffer() *image.RGBA { return w.back }

func (w *Window) Flush() error {
	if len(w.back.Pix) == 0 {
		return nil
	}
	rect := &sdl.Rect{W: int32(w.Width()), H: int32(w.Height())}
	if err := w.texture.Update(rect, unsafe.Pointer(&w.back.Pix[0]), w.back.Stride); err != nil {
		return fmt.Errorf("update texture: %w", err)
	}
	w.renderer.Clear()
	w.renderer.Copy(w.texture, nil, nil)
	w.renderer.Present()
	return nil
}

// PointerEvents pumps the SDL event queue and returns the mouse samples.
func (w *Window) PointerEvents() []backend.PointerEvent {
	w.events = w.events[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.doneOnce.Do(func() { close(w.done) })
		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			w.mouseDown = e.Type == sdl.MOUSEBUTTONDOWN
			w.push(int(e.X), int(e.Y))
		case *sdl.MouseMotionEvent:
			w.push(int(e.X), int(e.Y))
		}
	}
	return w.drain()
}

func (w *Window) drain() []backend.PointerEvent {
	if len(w.events) == 0 {
		return nil
	}
	out := make([]backend.PointerEvent, len(w.events))
	copy(out, w.events)
	w.events = w.events[:0]
	return out
}

func (w *Window) push(x, y int) {
	w.events = append(w.events, backend.PointerEvent{X: x, Y: y, Pressed: w.mouseDown})
}

// Done is closed once the window close button was pressed.
func (w *Window) Done() <-chan struct{} { return w.done }

func (w *Window) Close() error {
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}
	if w.renderer != nil {
		w.renderer.Destroy()
		w.renderer = nil
	}
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
	return nil
}

// Backend creates SDL windows. SDL delivers its own pointer input, so there
// is no separate pointer device.
type Backend struct {
	width, height int
	logger        *slog.Logger
}

func NewBackend(w, h int, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{width: w, height: h, logger: logger}
}

func (b *Backend) Kind() backend.Kind { return backend.KindSDL }
func (b *Backend) Device() string     { return WindowTitle }

func (b *Backend) Create(ctx context.Context) (backend.Display, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, err := Open(b.width, b.height)
	if err != nil {
		return nil, backend.NewError(backend.ErrWindowCreate, backend.KindSDL, WindowTitle, err)
	}
	b.logger.Debug("sdl window open", "width", b.width, "height", b.height)
	return w, nil
}

func (b *Backend) BindPointer(backend.Display) (backend.PointerDevice, error) {
	return nil, nil
}
