//go:build linux

package console

import "golang.org/x/sys/unix"

// From linux/kd.h.
const (
	kdSetMode  = 0x4b3a
	kdGetMode  = 0x4b3b
	kdGraphics = 0x01
)

var (
	getModeFn = func(fd int) (int, error) { return unix.IoctlGetInt(fd, kdGetMode) }
	setModeFn = func(fd, mode int) error { return unix.IoctlSetInt(fd, kdSetMode, mode) }
)

// setGraphicsMode switches the VT to KD_GRAPHICS and returns the previous
// mode.
func setGraphicsMode(fd int) (int, error) {
	prev, err := getModeFn(fd)
	if err != nil {
		return 0, err
	}
	if err := setModeFn(fd, kdGraphics); err != nil {
		return 0, err
	}
	return prev, nil
}

func setMode(fd, mode int) error {
	return setModeFn(fd, mode)
}

// keepSignals turns ISIG back on so the line discipline still turns Ctrl-C
// and Ctrl-\ into signals.
func keepSignals(fd int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	if t.Lflag&unix.ISIG != 0 {
		return nil
	}
	t.Lflag |= unix.ISIG
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}
