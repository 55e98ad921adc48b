package main

import (
	"log/slog"

	"github.com/1broseidon/lvport/internal/backend"
	"github.com/1broseidon/lvport/internal/config"
	"github.com/1broseidon/lvport/internal/cursor"
	"github.com/1broseidon/lvport/internal/x11"
)

// newRegistry registers every backend compiled into this binary. Nothing is
// opened until Initialize picks one.
func newRegistry(logger *slog.Logger) *backend.Registry {
	reg := backend.NewRegistry(logger)
	registerConsoleBackends(reg, logger)
	registerSDL(reg, logger)
	reg.Register(backend.KindX11, func(s config.Settings) backend.Backend {
		return x11.NewBackend(s.Width, s.Height, cursor.Arrow(), logger)
	})
	return reg
}
