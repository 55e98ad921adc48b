package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/lvport/internal/backend"
	"github.com/1broseidon/lvport/internal/config"
	"github.com/1broseidon/lvport/internal/ipc"
)

func runStatus(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Status socket path (default: $XDG_RUNTIME_DIR/lvport.sock)")
	showSettings := fs.Bool("settings", false, "Print the settings the simulator started with as YAML")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: lvport status [--socket PATH] [--settings]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the status of a simulator started with --status-socket.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if *socket != "" {
		client = ipc.NewClientAt(*socket)
	}
	if *showSettings {
		settings, err := client.GetSettings()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data, err := yaml.Marshal(settings)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprint(out, string(data))
		return 0
	}
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(out, "backend:        %s\n", status.Backend)
	fmt.Fprintf(out, "device:         %s\n", status.Device)
	fmt.Fprintf(out, "resolution:     %dx%d\n", status.Width, status.Height)
	if status.Pointer != "" {
		fmt.Fprintf(out, "pointer:        %s\n", status.Pointer)
	}
	fmt.Fprintf(out, "demo:           %s\n", status.Demo)
	fmt.Fprintf(out, "frames:         %d\n", status.Frames)
	fmt.Fprintf(out, "ticks:          %d\n", status.Ticks)
	fmt.Fprintf(out, "uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runConfig(args []string, out io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  lvport config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  lvport config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/lvport/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		// The backend name is only checked here; config cannot see the
		// compiled-in kinds.
		settings := config.Resolve(res.Config, os.LookupEnv)
		if _, err := resolveKind("", settings.Backend); err != nil {
			fmt.Fprintf(os.Stderr, "backend: %v\n", err)
			return 1
		}
		if res.File == "" {
			fmt.Fprintln(out, "config: ok (no file, using defaults)")
			return 0
		}
		fmt.Fprintf(out, "config: ok (%s)\n", res.File)
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/lvport/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no file, no environment)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var settings config.Settings
		if *printDefaults {
			settings = config.Resolve(config.DefaultConfig(), nil)
		} else {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			if res.File != "" {
				fmt.Fprintf(out, "# file: %s\n", res.File)
			}
			settings = config.Resolve(res.Config, os.LookupEnv)
		}
		kind, err := resolveKind("", settings.Backend)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		settings.Backend = string(kind)

		data, err := yaml.Marshal(settings)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprint(out, string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

func runBackends(args []string, out io.Writer) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "Usage: lvport backends")
		if isHelp(args[0]) {
			return 0
		}
		return 2
	}
	for _, k := range newRegistry(nil).Available() {
		suffix := ""
		if string(k) == backend.DefaultKind {
			suffix = " (default)"
		}
		fmt.Fprintf(out, "%s%s\n", k, suffix)
	}
	return 0
}
