package backend

import (
	"context"
	"fmt"
	"image"
	"strings"
)

// Kind identifies a display backend.
type Kind string

const (
	KindFbdev Kind = "fbdev" // Linux framebuffer device.
	KindDRM   Kind = "drm"   // DRM/KMS dumb buffer.
	KindSDL   Kind = "sdl"   // SDL2 window.
	KindX11   Kind = "x11"   // X11 window.
)

// Kinds lists every backend kind in display order.
var Kinds = []Kind{KindFbdev, KindDRM, KindSDL, KindX11}

// DefaultKind is used when neither flag, environment nor config file names a
// backend. Override at build time with
//
//	-ldflags "-X github.com/1broseidon/lvport/internal/backend.DefaultKind=drm"
var DefaultKind = string(KindFbdev)

// ParseKind accepts a backend name or one of its aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fbdev", "fb", "framebuffer":
		return KindFbdev, nil
	case "drm", "kms":
		return KindDRM, nil
	case "sdl", "sdl2":
		return KindSDL, nil
	case "x11", "x":
		return KindX11, nil
	default:
		return "", &BackendError{
			Code:    ErrUnsupportedBackend,
			Backend: Kind(s),
			Err:     fmt.Errorf("unknown backend %q (expected one of: fbdev, drm, sdl, x11)", s),
		}
	}
}

// UsesEvdev reports whether the backend takes its pointer from an evdev
// device rather than delivering input itself.
func (k Kind) UsesEvdev() bool {
	return k == KindFbdev || k == KindDRM
}

// Fullscreen reports whether the backend owns the whole console.
func (k Kind) Fullscreen() bool {
	return k == KindFbdev || k == KindDRM
}

// PointerEvent is one absolute pointer sample in display coordinates.
type PointerEvent struct {
	X       int
	Y       int
	Pressed bool
}

// Display is an output surface. Drawing happens into BackBuffer; Flush
// presents it.
type Display interface {
	Width() int
	Height() int
	BackBuffer() *image.RGBA
	Flush() error
	Close() error
}

// PointerSource is implemented by displays that deliver pointer input
// themselves (SDL).
type PointerSource interface {
	PointerEvents() []PointerEvent
}

// Notifier is implemented by displays whose user can close them. Done is
// closed once the close request arrives.
type Notifier interface {
	Done() <-chan struct{}
}

// PointerDevice is a pointer input bound to one display.
type PointerDevice interface {
	Name() string
	// Read returns pending samples without blocking.
	Read() []PointerEvent
	// Cursor returns the image drawn at the pointer position, or nil.
	Cursor() image.Image
	Close() error
}

// PointerOpener creates a pointer device for an already created display.
type PointerOpener func(d Display) (PointerDevice, error)

// Backend creates a display and, where it applies, the pointer bound to it.
type Backend interface {
	Kind() Kind
	// Device names the file or window the backend presents on.
	Device() string
	Create(ctx context.Context) (Display, error)
	// BindPointer attaches a pointer device to d. It returns nil, nil when
	// pointer input is disabled or supplied by the display itself.
	BindPointer(d Display) (PointerDevice, error)
}
