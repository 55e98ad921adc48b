//go:build linux

package console

import (
	"bytes"
	"testing"
)

func TestGraphicsModeSavedAndRestored(t *testing.T) {
	stubTerm(t, true, nil)
	var modes []int
	origGet, origSet := getModeFn, setModeFn
	getModeFn = func(int) (int, error) { return 0, nil }
	setModeFn = func(_ int, mode int) error { modes = append(modes, mode); return nil }
	t.Cleanup(func() { getModeFn, setModeFn = origGet, origSet })

	g, err := acquire(0, &bytes.Buffer{}, nil)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	g.Restore()
	if len(modes) != 2 || modes[0] != kdGraphics || modes[1] != 0 {
		t.Fatalf("modes = %v, want [graphics, text]", modes)
	}
}
