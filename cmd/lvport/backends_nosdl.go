//go:build !sdl

package main

import (
	"log/slog"

	"github.com/1broseidon/lvport/internal/backend"
)

// Build with -tags sdl to link libSDL2.
func registerSDL(*backend.Registry, *slog.Logger) {}
