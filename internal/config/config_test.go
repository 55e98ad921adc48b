package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if !cfg.Pointer {
		t.Fatalf("expected pointer enabled by default")
	}
	if cfg.Demo != DefaultDemo {
		t.Fatalf("demo = %q, want %q", cfg.Demo, DefaultDemo)
	}
}

func TestResolve_UnsetUsesDefaults(t *testing.T) {
	s := Resolve(DefaultConfig(), lookupFrom(nil))

	if s.PointerDevice != DefaultPointerDevice {
		t.Fatalf("PointerDevice = %q, want %q", s.PointerDevice, DefaultPointerDevice)
	}
	if s.FbdevDevice != "/dev/fb0" {
		t.Fatalf("FbdevDevice = %q, want /dev/fb0", s.FbdevDevice)
	}
	if s.DRMCard != "/dev/dri/card0" {
		t.Fatalf("DRMCard = %q, want /dev/dri/card0", s.DRMCard)
	}
	if s.Width != 800 || s.Height != 480 {
		t.Fatalf("size = %dx%d, want 800x480", s.Width, s.Height)
	}
	if s.Backend != "" {
		t.Fatalf("Backend = %q, want empty (build default)", s.Backend)
	}
}

func TestResolve_SetValuesPassThrough(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		get  func(Settings) any
		want any
	}{
		{"pointer", EnvPointerDevice, "/dev/input/event7", func(s Settings) any { return s.PointerDevice }, "/dev/input/event7"},
		{"fbdev", EnvFbdevDevice, "/dev/fb1", func(s Settings) any { return s.FbdevDevice }, "/dev/fb1"},
		{"drm", EnvDRMCard, "/dev/dri/card1", func(s Settings) any { return s.DRMCard }, "/dev/dri/card1"},
		{"width", EnvVideoWidth, "1024", func(s Settings) any { return s.Width }, 1024},
		{"height", EnvVideoHeight, "600", func(s Settings) any { return s.Height }, 600},
		{"path not validated", EnvFbdevDevice, "not a device", func(s Settings) any { return s.FbdevDevice }, "not a device"},
		{"empty string counts as set", EnvDRMCard, "", func(s Settings) any { return s.DRMCard }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Resolve(DefaultConfig(), lookupFrom(map[string]string{tt.key: tt.val}))
			if got := tt.get(s); got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolve_NonNumericDimensionIsZero(t *testing.T) {
	s := Resolve(DefaultConfig(), lookupFrom(map[string]string{
		EnvVideoWidth:  "wide",
		EnvVideoHeight: "",
	}))
	if s.Width != 0 {
		t.Fatalf("Width = %d, want 0", s.Width)
	}
	if s.Height != 0 {
		t.Fatalf("Height = %d, want 0", s.Height)
	}
}

func TestResolve_OSEnvironment(t *testing.T) {
	t.Setenv(EnvFbdevDevice, "/dev/fb3")
	t.Setenv(EnvVideoHeight, "720")

	s := Resolve(DefaultConfig(), os.LookupEnv)
	if s.FbdevDevice != "/dev/fb3" {
		t.Fatalf("FbdevDevice = %q, want /dev/fb3", s.FbdevDevice)
	}
	if s.Height != 720 {
		t.Fatalf("Height = %d, want 720", s.Height)
	}
}

func TestResolve_EnvironmentBeatsFileEnvMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Env[EnvDRMCard] = "/dev/dri/card9"
	cfg.Env[EnvVideoWidth] = "320"

	s := Resolve(cfg, lookupFrom(map[string]string{EnvDRMCard: "/dev/dri/card2"}))
	if s.DRMCard != "/dev/dri/card2" {
		t.Fatalf("DRMCard = %q, want env value", s.DRMCard)
	}
	if s.Width != 320 {
		t.Fatalf("Width = %d, want file env value 320", s.Width)
	}
}

func TestResolve_BackendFromEnvThenFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "drm"

	if got := Resolve(cfg, lookupFrom(nil)).Backend; got != "drm" {
		t.Fatalf("Backend = %q, want drm from file", got)
	}
	if got := Resolve(cfg, lookupFrom(map[string]string{EnvBackend: "x11"})).Backend; got != "x11" {
		t.Fatalf("Backend = %q, want x11 from env", got)
	}
}

func TestAtoi(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"800", 800},
		{"  480", 480},
		{"\t+12", 12},
		{"-5", -5},
		{"640px", 640},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"1 2", 1},
		{"99999999999", 2147483647},
		{"-99999999999", -2147483648},
	}
	for _, tt := range tests {
		if got := Atoi(tt.in); got != tt.want {
			t.Errorf("Atoi(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.Demo != DefaultDemo || !res.Config.Pointer {
		t.Fatalf("expected defaults, got %#v", res.Config)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != DefaultLogLevel {
		t.Fatalf("log_level = %q, want %q", res.Config.LogLevel, DefaultLogLevel)
	}
}

func TestLoadFromPath_Values(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := strings.Join([]string{
		"backend: drm",
		"pointer: false",
		"demo: widgets",
		"log_level: debug",
		"status_socket: true",
		"env:",
		"  LV_LINUX_DRM_CARD: /dev/dri/card1",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Backend != "drm" || cfg.Pointer || cfg.Demo != "widgets" || cfg.LogLevel != "debug" || !cfg.StatusSocket {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.Env[EnvDRMCard] != "/dev/dri/card1" {
		t.Fatalf("env map = %#v", cfg.Env)
	}

	src := res.SourceOf("backend")
	if src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("backend source = %#v, want file line 1", src)
	}
	if res.SourceOf("status_socket").Line != 5 {
		t.Fatalf("status_socket source = %#v", res.SourceOf("status_socket"))
	}
	if res.SourceOf("missing").Kind != SourceDefault {
		t.Fatalf("expected default source for unset key")
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("unknown_key: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), "config.yaml") {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourcePosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "demo: music\nlog_level: loud\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "log_level" {
		t.Fatalf("path = %q, want log_level", verr.Path)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected line 2 in error, got %v", err)
	}
}

func TestLoadFromPath_UnknownEnvKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "env:\n  LV_NOT_A_THING: x\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "env.LV_NOT_A_THING") {
		t.Fatalf("expected env key error, got %v", err)
	}
}

func TestDefaultConfigPath_HonorsOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/lvport-test.yaml")
	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if got != "/tmp/lvport-test.yaml" {
		t.Fatalf("DefaultConfigPath() = %q", got)
	}
}
