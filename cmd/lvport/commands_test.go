package main

import (
	"bytes"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/1broseidon/lvport/internal/config"
	"github.com/1broseidon/lvport/internal/ipc"
)

func TestRunConfigPrint_ResolvedSettings(t *testing.T) {
	clearLVEnv(t)
	t.Setenv(config.EnvVideoWidth, "1024")
	path := writeConfig(t, "backend: x11\ndemo: widgets\n")

	var out bytes.Buffer
	if code := runConfig([]string{"print", "--path", path}, &out); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	got := out.String()
	for _, want := range []string{"backend: x11", "width: 1024", "height: 480", "demo: widgets", "# file: "} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunConfigPrint_Defaults(t *testing.T) {
	clearLVEnv(t)
	t.Setenv(config.EnvVideoWidth, "1024")

	var out bytes.Buffer
	if code := runConfig([]string{"print", "--defaults"}, &out); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "width: 800") {
		t.Fatalf("defaults should ignore the environment:\n%s", out.String())
	}
}

func TestRunConfigValidate(t *testing.T) {
	clearLVEnv(t)
	var out bytes.Buffer
	good := writeConfig(t, "demo: music\n")
	if code := runConfig([]string{"validate", "--path", good}, &out); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "config: ok") {
		t.Fatalf("unexpected output %q", out.String())
	}

	wayland := writeConfig(t, "backend: wayland\n")
	if code := runConfig([]string{"validate", "--path", wayland}, &out); code != 1 {
		t.Fatalf("unknown backend: exit code = %d, want 1", code)
	}

	bad := writeConfig(t, "log_level: loud\n")
	if code := runConfig([]string{"validate", "--path", bad}, &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunBackends_ListsCompiledBackends(t *testing.T) {
	var out bytes.Buffer
	if code := runBackends(nil, &out); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	got := out.String()
	if !strings.Contains(got, "x11") {
		t.Fatalf("x11 missing:\n%s", got)
	}
	if runtime.GOOS == "linux" && !strings.Contains(got, "fbdev (default)") {
		t.Fatalf("fbdev default missing:\n%s", got)
	}
}

func TestRunStatus_QueriesServer(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "lvport.sock")
	srv, err := ipc.NewServer(socket, func() ipc.StatusData {
		return ipc.StatusData{Backend: "drm", Device: "/dev/dri/card0", Width: 1920, Height: 1080, Demo: "music", Ticks: 7}
	}, config.Settings{}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	var out bytes.Buffer
	if code := runStatus([]string{"--socket", socket}, &out); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	got := out.String()
	for _, want := range []string{"backend:        drm", "resolution:     1920x1080", "ticks:          7"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunStatus_NoServer(t *testing.T) {
	var out bytes.Buffer
	socket := filepath.Join(t.TempDir(), "none.sock")
	if code := runStatus([]string{"--socket", socket}, &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunConfigValidate_BackendFromEnvironment(t *testing.T) {
	clearLVEnv(t)
	t.Setenv(config.EnvBackend, "wayland")
	path := writeConfig(t, "backend: drm\n")

	var out bytes.Buffer
	if code := runConfig([]string{"validate", "--path", path}, &out); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunStatus_Settings(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "lvport.sock")
	srv, err := ipc.NewServer(socket, nil, config.Settings{
		Backend: "fbdev",
		Width:   320,
		Height:  240,
		Demo:    "widgets",
	}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	var out bytes.Buffer
	if code := runStatus([]string{"--socket", socket, "--settings"}, &out); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	got := out.String()
	for _, want := range []string{"backend: fbdev", "width: 320", "height: 240", "demo: widgets"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}
