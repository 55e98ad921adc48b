package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 || strings.HasPrefix(args[0], "-") && !isHelp(args[0]) {
		os.Exit(runSimulator(args))
	}

	switch args[0] {
	case "run":
		os.Exit(runSimulator(args[1:]))
	case "status":
		os.Exit(runStatus(args[1:], os.Stdout))
	case "config":
		os.Exit(runConfig(args[1:], os.Stdout))
	case "backends":
		os.Exit(runBackends(args[1:], os.Stdout))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func isHelp(arg string) bool {
	return arg == "-h" || arg == "--help"
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lvport [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open the display and run a demo (default)")
	fmt.Fprintln(w, "  status              Show the status of a running simulator")
	fmt.Fprintln(w, "  backends            List the backends compiled into this binary")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print resolved settings")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'lvport <command> --help' for command-specific options.")
}
