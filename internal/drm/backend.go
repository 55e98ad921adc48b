//go:build linux

package drm

import (
	"context"
	"log/slog"

	"github.com/1broseidon/lvport/internal/backend"
)

// Backend modesets a DRM card and binds an evdev pointer through opener.
type Backend struct {
	card      string
	connector int
	opener    backend.PointerOpener
	logger    *slog.Logger
}

// NewBackend returns a DRM backend for card using ConnectorAuto. A nil
// opener disables pointer input.
func NewBackend(card string, opener backend.PointerOpener, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{card: card, connector: ConnectorAuto, opener: opener, logger: logger}
}

func (b *Backend) Kind() backend.Kind { return backend.KindDRM }
func (b *Backend) Device() string     { return b.card }

var openFn = func(card string, connector int) (backend.Display, error) {
	return Open(card, connector)
}

func (b *Backend) Create(ctx context.Context) (backend.Display, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, err := openFn(b.card, b.connector)
	if err != nil {
		return nil, err
	}
	attrs := []any{"card", b.card, "width", d.Width(), "height", d.Height()}
	if m, ok := d.(interface{ Mode() string }); ok {
		attrs = append(attrs, "mode", m.Mode())
	}
	b.logger.Debug("drm modeset", attrs...)
	return d, nil
}

func (b *Backend) BindPointer(d backend.Display) (backend.PointerDevice, error) {
	if b.opener == nil {
		return nil, nil
	}
	return b.opener(d)
}
