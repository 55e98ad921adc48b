package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/lvport/internal/backend"
	"github.com/1broseidon/lvport/internal/config"
	"github.com/1broseidon/lvport/internal/console"
	"github.com/1broseidon/lvport/internal/demo"
	"github.com/1broseidon/lvport/internal/ipc"
	"github.com/1broseidon/lvport/internal/runloop"
	"github.com/1broseidon/lvport/internal/ui"
)

type runOptions struct {
	configPath   string
	backend      string
	demo         string
	logLevel     string
	noPointer    bool
	statusSocket bool
	socketPath   string
}

var acquireConsoleFn = console.Acquire

func runSimulator(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts runOptions
	fs.StringVar(&opts.configPath, "config", "", "Config file path (default: ~/.config/lvport/config.yaml)")
	fs.StringVar(&opts.backend, "backend", "", "Display backend: fbdev, drm, sdl or x11")
	fs.StringVar(&opts.demo, "demo", "", "Demo screen: music or widgets")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warning or error")
	fs.BoolVar(&opts.noPointer, "no-pointer", false, "Disable pointer input")
	fs.BoolVar(&opts.statusSocket, "status-socket", false, "Serve status queries on the runtime dir socket")
	fs.StringVar(&opts.socketPath, "socket", "", "Status socket path (default: $XDG_RUNTIME_DIR/lvport.sock)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: lvport run [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the configured display backend and run a demo until interrupted.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	settings, err := loadSettings(opts)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := newLogger(os.Stderr, settings.LogLevel)

	kind, err := resolveKind(opts.backend, settings.Backend)
	if err != nil {
		log.Fatalf("Failed to select backend: %v", err)
	}
	if err := demo.Check(settings.Demo); err != nil {
		log.Fatalf("Failed to select demo: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := simulate(ctx, kind, settings, opts.socketPath, newRegistry(logger), logger); err != nil {
		stop()
		log.Fatalf("lvport: %v", err)
	}
	return 0
}

// loadSettings reads the config file, applies command-line overrides and
// resolves the environment once.
func loadSettings(opts runOptions) (config.Settings, error) {
	var res *config.LoadResult
	var err error
	if opts.configPath == "" {
		res, err = config.Load()
	} else {
		res, err = config.LoadFromPath(opts.configPath)
	}
	if err != nil {
		return config.Settings{}, err
	}

	cfg := res.Config
	if opts.demo != "" {
		cfg.Demo = opts.demo
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.noPointer {
		cfg.Pointer = false
	}
	if opts.statusSocket {
		cfg.StatusSocket = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Settings{}, err
	}

	settings := config.Resolve(cfg, os.LookupEnv)
	if opts.backend != "" {
		settings.Backend = opts.backend
	}
	return settings, nil
}

// resolveKind picks the backend: flag, then LV_LINUX_BACKEND or config file,
// then the build default.
func resolveKind(flagValue, configured string) (backend.Kind, error) {
	name := flagValue
	if name == "" {
		name = configured
	}
	if name == "" {
		name = backend.DefaultKind
	}
	return backend.ParseKind(name)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// simulate creates the display, starts the demo and runs the loop until ctx
// ends or the window is closed. A cancelled context is a clean exit.
func simulate(ctx context.Context, kind backend.Kind, s config.Settings, socketPath string, reg *backend.Registry, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if kind.Fullscreen() {
		guard, err := acquireConsoleFn(logger)
		if err != nil {
			logger.Warn("console not acquired", "error", err)
		} else {
			defer guard.Restore()
		}
	}

	h, err := reg.Initialize(ctx, kind, s)
	if err != nil {
		return err
	}
	defer func() {
		if err := h.Close(); err != nil {
			logger.Warn("display close failed", "error", err)
		}
	}()

	eng := ui.NewEngine(h.Display, logger)
	eng.AddPointer(h.Pointer)
	screen, err := demo.New(s.Demo, eng)
	if err != nil {
		return err
	}
	eng.SetScreen(screen)

	loop := &runloop.Loop{Tick: eng.Handler, Logger: logger}

	if n, ok := h.Display.(backend.Notifier); ok {
		go func() {
			select {
			case <-n.Done():
				logger.Info("window closed")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if s.StatusSocket {
		srv, err := ipc.NewServer(socketPath, statusFunc(h, s, eng, loop), s, logger)
		if err == nil {
			err = srv.Start()
		}
		if err != nil {
			logger.Warn("status socket disabled", "error", err)
		} else {
			defer srv.Stop()
		}
	}

	logger.Info("lvport running", "backend", kind, "device", h.Device, "demo", s.Demo,
		"width", h.Display.Width(), "height", h.Display.Height())
	err = loop.Run(ctx)
	logger.Info("lvport stopped", "frames", eng.Frames(), "ticks", loop.Ticks())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func statusFunc(h *backend.Handle, s config.Settings, eng *ui.Engine, loop *runloop.Loop) ipc.StatusFunc {
	pointer := ""
	if h.Pointer != nil {
		pointer = h.Pointer.Name()
	}
	w, ht := h.Display.Width(), h.Display.Height()
	return func() ipc.StatusData {
		return ipc.StatusData{
			Backend: string(h.Kind),
			Device:  h.Device,
			Width:   w,
			Height:  ht,
			Pointer: pointer,
			Demo:    s.Demo,
			Frames:  eng.Frames(),
			Ticks:   loop.Ticks(),
		}
	}
}
