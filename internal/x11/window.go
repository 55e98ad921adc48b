package x11

import (
	"fmt"
	"image"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/lvport/internal/backend"
)

const eventMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify

// window is what the backend needs from an open simulator window.
type window interface {
	backend.Display
	// TakeEvents returns and clears the queued pointer samples.
	TakeEvents() []backend.PointerEvent
	// OnClose registers fn to run when the window manager asks the window
	// to close.
	OnClose(fn func())
	// HideCursor replaces the host cursor over the window with an empty one.
	HideCursor() error
}

// Window is a fixed-size top-level window whose contents come from an
// RGBA back buffer.
type Window struct {
	conn *Connection
	win  *xwindow.Window

	mu      sync.Mutex
	img     *xgraphics.Image
	back    *image.RGBA
	events  []backend.PointerEvent
	pressed bool
	onClose func()
}

// OpenWindow creates, titles and maps a w x h window and starts the event
// loop.
func OpenWindow(c *Connection, title string, w, h int) (*Window, error) {
	xu := c.XUtil
	xwin, err := xwindow.Generate(xu)
	if err != nil {
		return nil, fmt.Errorf("generate window id: %w", err)
	}
	x, y := c.windowOrigin(w, h)
	if err := xwin.CreateChecked(c.Root, x, y, w, h,
		xproto.CwBackPixel|xproto.CwEventMask, 0, eventMask); err != nil {
		return nil, fmt.Errorf("create %dx%d window: %w", w, h, err)
	}

	// Fails without an EWMH window manager; the ICCCM name still applies.
	_ = ewmh.WmNameSet(xu, xwin.Id, title)
	if err := icccm.WmNameSet(xu, xwin.Id, title); err != nil {
		xwin.Destroy()
		return nil, fmt.Errorf("set window title: %w", err)
	}

	win := &Window{
		conn: c,
		win:  xwin,
		img:  xgraphics.New(xu, image.Rect(0, 0, w, h)),
		back: image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	if err := win.img.XSurfaceSet(xwin.Id); err != nil {
		xwin.Destroy()
		return nil, fmt.Errorf("create window surface: %w", err)
	}

	xwin.WMGracefulClose(func(*xwindow.Window) {
		win.mu.Lock()
		fn := win.onClose
		win.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
	win.listen(xu)
	xwin.Map()

	go c.EventLoop()
	return win, nil
}

func (w *Window) listen(xu *xgbutil.XUtil) {
	id := w.win.Id
	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if ev.Detail == xproto.ButtonIndex1 {
			w.push(int(ev.EventX), int(ev.EventY), true)
		}
	}).Connect(xu, id)
	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ev.Detail == xproto.ButtonIndex1 {
			w.push(int(ev.EventX), int(ev.EventY), false)
		}
	}).Connect(xu, id)
	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		w.mu.Lock()
		pressed := w.pressed
		w.mu.Unlock()
		w.push(int(ev.EventX), int(ev.EventY), pressed)
	}).Connect(xu, id)
	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count != 0 {
			return
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.img != nil {
			w.img.XPaint(id)
		}
	}).Connect(xu, id)
}

func (w *Window) push(x, y int, pressed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pressed = pressed
	w.events = append(w.events, backend.PointerEvent{X: x, Y: y, Pressed: pressed})
}

func (w *Window) OnClose(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClose = fn
}

func (w *Window) TakeEvents() []backend.PointerEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.events
	w.events = nil
	return out
}

func (w *Window) HideCursor() error {
	conn := w.conn.XUtil.Conn()
	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return err
	}
	if err := xproto.CreatePixmapChecked(conn, 1, pix, xproto.Drawable(w.win.Id), 1, 1).Check(); err != nil {
		return err
	}
	defer xproto.FreePixmap(conn, pix)

	cur, err := xproto.NewCursorId(conn)
	if err != nil {
		return err
	}
	if err := xproto.CreateCursorChecked(conn, cur, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0).Check(); err != nil {
		return err
	}
	return xproto.ChangeWindowAttributesChecked(conn, w.win.Id, xproto.CwCursor, []uint32{uint32(cur)}).Check()
}

func (w *Window) Width() int              { return w.back.Rect.Dx() }
func (w *Window) Height() int             { return w.back.Rect.Dy() }
func (w *Window) BackBuffer() *image.RGBA { return w.back }

// Flush copies the back buffer into the window pixmap and repaints.
func (w *Window) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.img == nil {
		return fmt.Errorf("x11: window closed")
	}
	copyToBGRA(w.img.Pix, w.img.Stride, w.back)
	if err := w.img.XDrawChecked(); err != nil {
		return fmt.Errorf("x11: draw: %w", err)
	}
	w.img.XPaint(w.win.Id)
	return nil
}

func (w *Window) Close() error {
	w.mu.Lock()
	img := w.img
	w.img = nil
	w.mu.Unlock()
	if img == nil {
		return nil
	}
	img.Destroy()
	w.win.Destroy()
	w.conn.Close()
	return nil
}

// copyToBGRA converts RGBA pixels into the BGRA layout used by xgraphics.
func copyToBGRA(dst []uint8, stride int, src *image.RGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+w*4]
		if (y+1)*stride > len(dst) {
			return
		}
		d := dst[y*stride:]
		for i := 0; i < len(s); i += 4 {
			d[i+0] = s[i+2]
			d[i+1] = s[i+1]
			d[i+2] = s[i+0]
			d[i+3] = s[i+3]
		}
	}
}
