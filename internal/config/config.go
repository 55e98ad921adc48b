package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Environment variables consumed once at startup.
const (
	EnvPointerDevice = "LV_LINUX_EVDEV_POINTER_DEVICE"
	EnvFbdevDevice   = "LV_LINUX_FBDEV_DEVICE"
	EnvDRMCard       = "LV_LINUX_DRM_CARD"
	EnvVideoWidth    = "LV_SDL_VIDEO_WIDTH"
	EnvVideoHeight   = "LV_SDL_VIDEO_HEIGHT"
	EnvBackend       = "LV_LINUX_BACKEND"
	EnvConfigPath    = "LVPORT_CONFIG"
)

// Fallback values used when neither the environment nor the config file
// provides one.
const (
	DefaultPointerDevice = "/dev/input/by-id/my-mouse-or-touchscreen"
	DefaultFbdevDevice   = "/dev/fb0"
	DefaultDRMCard       = "/dev/dri/card0"
	DefaultVideoWidth    = "800"
	DefaultVideoHeight   = "480"
	DefaultDemo          = "music"
	DefaultLogLevel      = "info"
)

// envKeys lists the variables that may be given fallback values under env:
// in the config file.
var envKeys = []string{
	EnvPointerDevice,
	EnvFbdevDevice,
	EnvDRMCard,
	EnvVideoWidth,
	EnvVideoHeight,
	EnvBackend,
}

// Config is the effective file configuration.
type Config struct {
	// Backend names the display backend (fbdev, drm, sdl, x11). Empty means
	// the build default.
	Backend string `yaml:"backend"`

	// Pointer enables the evdev pointer device on the fbdev and drm backends.
	// Default: true
	Pointer bool `yaml:"pointer"`

	// Demo selects the bundled screen: music (default) or widgets.
	Demo string `yaml:"demo"`

	LogLevel string `yaml:"log_level"`

	// StatusSocket serves GET_STATUS on the runtime dir socket while running.
	StatusSocket bool `yaml:"status_socket"`

	// Env provides fallback values for the LV_* variables. The real
	// environment always wins.
	Env map[string]string `yaml:"env,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Pointer:  true,
		Demo:     DefaultDemo,
		LogLevel: DefaultLogLevel,
		Env:      map[string]string{},
	}
}

// DefaultConfigPath returns LVPORT_CONFIG when set, otherwise
// ~/.config/lvport/config.yaml.
func DefaultConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "lvport", "config.yaml"), nil
}

// Validate performs strict validation of the effective configuration.
//
// Device paths and dimensions are deliberately not checked here; they are
// handed to the backend unmodified.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if strings.TrimSpace(c.Demo) == "" {
		return &ValidationError{Path: "demo", Err: fmt.Errorf("demo must not be empty")}
	}
	for key := range c.Env {
		if !isEnvKey(key) {
			return &ValidationError{Path: "env." + key, Err: fmt.Errorf("unknown variable; expected one of: %s", strings.Join(sortedEnvKeys(), ", "))}
		}
	}
	return nil
}

func isEnvKey(key string) bool {
	for _, k := range envKeys {
		if k == key {
			return true
		}
	}
	return false
}

func sortedEnvKeys() []string {
	out := append([]string(nil), envKeys...)
	sort.Strings(out)
	return out
}

// ValidationError points at the offending config path and, when known, the
// file position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
