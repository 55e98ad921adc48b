//go:build !linux

package console

import "errors"

var errNoVT = errors.New("virtual console modes are linux only")

func setGraphicsMode(int) (int, error) { return 0, errNoVT }

func setMode(int, int) error { return errNoVT }

// The console guard only runs for the linux fullscreen backends.
func keepSignals(int) error { return nil }
