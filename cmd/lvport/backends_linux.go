//go:build linux

package main

import (
	"image"
	"log/slog"

	"github.com/1broseidon/lvport/internal/backend"
	"github.com/1broseidon/lvport/internal/config"
	"github.com/1broseidon/lvport/internal/cursor"
	"github.com/1broseidon/lvport/internal/drm"
	"github.com/1broseidon/lvport/internal/evdev"
	"github.com/1broseidon/lvport/internal/fbdev"
)

// evdevPointer is the part of *evdev.Device the opener needs.
type evdevPointer interface {
	backend.PointerDevice
	Bind(w, h int)
	SetCursor(img image.Image)
}

var openPointerFn = func(path string) (evdevPointer, error) {
	return evdev.Open(path)
}

func registerConsoleBackends(reg *backend.Registry, logger *slog.Logger) {
	reg.Register(backend.KindFbdev, func(s config.Settings) backend.Backend {
		return fbdev.NewBackend(s.FbdevDevice, pointerOpener(s, logger), logger)
	})
	reg.Register(backend.KindDRM, func(s config.Settings) backend.Backend {
		return drm.NewBackend(s.DRMCard, pointerOpener(s, logger), logger)
	})
}

// pointerOpener opens the evdev device at s.PointerDevice, sized to the
// display, with the arrow cursor. It is nil when pointer input is disabled.
func pointerOpener(s config.Settings, logger *slog.Logger) backend.PointerOpener {
	if !s.PointerEnabled {
		return nil
	}
	path := s.PointerDevice
	return func(d backend.Display) (backend.PointerDevice, error) {
		dev, err := openPointerFn(path)
		if err != nil {
			return nil, err
		}
		dev.Bind(d.Width(), d.Height())
		dev.SetCursor(cursor.Arrow())
		if logger != nil {
			attrs := []any{"device", path}
			if n, ok := dev.(interface{ DeviceName() string }); ok && n.DeviceName() != "" {
				attrs = append(attrs, "name", n.DeviceName())
			}
			logger.Debug("evdev pointer open", attrs...)
		}
		return dev, nil
	}
}
