//go:build linux

package fbdev

import (
	"context"
	"log/slog"

	"github.com/1broseidon/lvport/internal/backend"
)

// Backend opens the framebuffer and binds an evdev pointer through opener.
type Backend struct {
	path   string
	opener backend.PointerOpener
	logger *slog.Logger
}

// NewBackend returns a framebuffer backend for path. A nil opener disables
// pointer input.
func NewBackend(path string, opener backend.PointerOpener, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{path: path, opener: opener, logger: logger}
}

func (b *Backend) Kind() backend.Kind { return backend.KindFbdev }
func (b *Backend) Device() string     { return b.path }

var openFn = func(path string) (backend.Display, error) { return Open(path) }

func (b *Backend) Create(ctx context.Context) (backend.Display, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, err := openFn(b.path)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("framebuffer mapped", "device", b.path, "width", d.Width(), "height", d.Height())
	return d, nil
}

func (b *Backend) BindPointer(d backend.Display) (backend.PointerDevice, error) {
	if b.opener == nil {
		return nil, nil
	}
	return b.opener(d)
}
