//go:build !linux

package main

import (
	"log/slog"

	"github.com/1broseidon/lvport/internal/backend"
)

// fbdev and drm need Linux device files.
func registerConsoleBackends(*backend.Registry, *slog.Logger) {}
