// Package console takes over the controlling terminal while a fullscreen
// backend draws on the same screen, and gives it back on exit.
package console

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	reset      = "\x1b[0m"
)

var (
	isTerminalFn = term.IsTerminal
	makeRawFn    = term.MakeRaw
	restoreFn    = term.Restore
	// MakeRaw clears ISIG; Ctrl-C must still raise SIGINT.
	keepSignalsFn = keepSignals
)

// Guard holds the terminal state to restore.
type Guard struct {
	fd       int
	out      io.Writer
	oldState *term.State
	kdMode   int
	graphics bool
	logger   *slog.Logger
}

// Acquire puts stdin in raw mode with signal keys still active, hides the text cursor and switches the
// virtual console to graphics mode where the kernel allows it. When stdin is
// not a terminal it returns a Guard that does nothing.
func Acquire(logger *slog.Logger) (*Guard, error) {
	return acquire(int(os.Stdin.Fd()), os.Stdout, logger)
}

func acquire(fd int, out io.Writer, logger *slog.Logger) (*Guard, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Guard{fd: fd, out: out, logger: logger}
	if !isTerminalFn(fd) {
		logger.Debug("stdin is not a terminal; console left untouched")
		return g, nil
	}

	oldState, err := makeRawFn(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	if err := keepSignalsFn(fd); err != nil {
		restoreFn(fd, oldState)
		return nil, fmt.Errorf("failed to re-enable terminal signals: %w", err)
	}
	g.oldState = oldState
	fmt.Fprint(out, hideCursor)

	if prev, err := setGraphicsMode(fd); err != nil {
		// Pseudo terminals reject KDSETMODE; only a VT needs it.
		logger.Debug("console graphics mode unavailable", "error", err)
	} else {
		g.kdMode = prev
		g.graphics = true
	}
	return g, nil
}

// Active reports whether the guard changed any terminal state.
func (g *Guard) Active() bool {
	return g != nil && g.oldState != nil
}

// Restore undoes Acquire. Calling it more than once is harmless.
func (g *Guard) Restore() {
	if !g.Active() {
		return
	}
	if g.graphics {
		if err := setMode(g.fd, g.kdMode); err != nil {
			g.logger.Warn("failed to restore console mode", "error", err)
		}
		g.graphics = false
	}
	if err := restoreFn(g.fd, g.oldState); err != nil {
		g.logger.Warn("failed to restore terminal", "error", err)
	}
	g.oldState = nil
	fmt.Fprint(g.out, reset)
	fmt.Fprint(g.out, showCursor)
}
