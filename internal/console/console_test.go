package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/term"
)

func stubTerm(t *testing.T, tty bool, rawErr error) *int {
	t.Helper()
	restored := 0
	origIs, origRaw, origRestore, origKeep := isTerminalFn, makeRawFn, restoreFn, keepSignalsFn
	isTerminalFn = func(int) bool { return tty }
	makeRawFn = func(int) (*term.State, error) {
		if rawErr != nil {
			return nil, rawErr
		}
		return &term.State{}, nil
	}
	restoreFn = func(int, *term.State) error { restored++; return nil }
	keepSignalsFn = func(int) error { return nil }
	t.Cleanup(func() {
		isTerminalFn, makeRawFn, restoreFn, keepSignalsFn = origIs, origRaw, origRestore, origKeep
	})
	return &restored
}

func TestAcquire_NotATerminalIsNoop(t *testing.T) {
	restored := stubTerm(t, false, nil)
	var out bytes.Buffer

	g, err := acquire(0, &out, nil)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if g.Active() {
		t.Fatalf("guard should be inactive")
	}
	g.Restore()
	if *restored != 0 || out.Len() != 0 {
		t.Fatalf("unexpected terminal writes: restored=%d out=%q", *restored, out.String())
	}
}

func TestAcquire_HidesAndRestoresCursor(t *testing.T) {
	restored := stubTerm(t, true, nil)
	var out bytes.Buffer

	g, err := acquire(0, &out, nil)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !strings.Contains(out.String(), hideCursor) {
		t.Fatalf("cursor not hidden: %q", out.String())
	}
	g.Restore()
	g.Restore()
	if *restored != 1 {
		t.Fatalf("restored %d times, want 1", *restored)
	}
	if !strings.HasSuffix(out.String(), showCursor) {
		t.Fatalf("cursor not shown again: %q", out.String())
	}
}

func TestAcquire_RawModeFailure(t *testing.T) {
	stubTerm(t, true, errors.New("inappropriate ioctl"))
	if _, err := acquire(0, &bytes.Buffer{}, nil); err == nil {
		t.Fatalf("expected raw mode error")
	}
}

func TestAcquire_SignalFailureRestoresTerminal(t *testing.T) {
	restored := stubTerm(t, true, nil)
	keepSignalsFn = func(int) error { return errors.New("tcsets") }

	if _, err := acquire(0, &bytes.Buffer{}, nil); err == nil {
		t.Fatalf("expected error when signals cannot be kept")
	}
	if *restored != 1 {
		t.Fatalf("restored %d times, want 1", *restored)
	}
}
