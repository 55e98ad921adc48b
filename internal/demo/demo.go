// Package demo holds the screens the simulator can start with.
package demo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/lvport/internal/ui"
)

// Default is started when no demo is configured.
const Default = "music"

type factory func(e *ui.Engine) ui.Screen

var demos = map[string]factory{
	"music":   func(e *ui.Engine) ui.Screen { return NewMusic(e) },
	"widgets": func(e *ui.Engine) ui.Screen { return NewWidgets(e) },
}

// Names lists the available demos sorted by name.
func Names() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (factory, error) {
	f, ok := demos[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Check reports whether name is a known demo, without building it.
func Check(name string) error {
	_, err := lookup(name)
	return err
}

// New builds the named demo on e. It does not make it the active screen.
func New(name string, e *ui.Engine) (ui.Screen, error) {
	f, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return f(e), nil
}
