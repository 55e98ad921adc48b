//go:build sdl

package main

import (
	"log/slog"
	"runtime"

	"github.com/1broseidon/lvport/internal/backend"
	"github.com/1broseidon/lvport/internal/config"
	"github.com/1broseidon/lvport/internal/sdl"
)

func init() {
	// SDL video calls must stay on the main thread.
	runtime.LockOSThread()
}

func registerSDL(reg *backend.Registry, logger *slog.Logger) {
	reg.Register(backend.KindSDL, func(s config.Settings) backend.Backend {
		return sdl.NewBackend(s.Width, s.Height, logger)
	})
}
