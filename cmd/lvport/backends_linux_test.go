//go:build linux

package main

import (
	"errors"
	"image"
	"testing"

	"github.com/1broseidon/lvport/internal/backend"
	"github.com/1broseidon/lvport/internal/config"
)

type fakeEvdev struct {
	path   string
	w, h   int
	cursor image.Image
}

func (p *fakeEvdev) Name() string                 { return p.path }
func (p *fakeEvdev) Read() []backend.PointerEvent { return nil }
func (p *fakeEvdev) Cursor() image.Image          { return p.cursor }
func (p *fakeEvdev) Close() error                 { return nil }
func (p *fakeEvdev) Bind(w, h int)                { p.w, p.h = w, h }
func (p *fakeEvdev) SetCursor(img image.Image)    { p.cursor = img }

func stubOpenPointer(t *testing.T, err error) *[]string {
	t.Helper()
	var opened []string
	orig := openPointerFn
	openPointerFn = func(path string) (evdevPointer, error) {
		opened = append(opened, path)
		if err != nil {
			return nil, err
		}
		return &fakeEvdev{path: path}, nil
	}
	t.Cleanup(func() { openPointerFn = orig })
	return &opened
}

func TestPointerOpener_BindsToDisplaySize(t *testing.T) {
	opened := stubOpenPointer(t, nil)
	s := config.Settings{PointerEnabled: true, PointerDevice: "/dev/input/event7"}

	p, err := pointerOpener(s, nil)(newFakeDisplay(640, 400))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	dev := p.(*fakeEvdev)
	if dev.w != 640 || dev.h != 400 {
		t.Fatalf("bound to %dx%d, want 640x400", dev.w, dev.h)
	}
	if dev.cursor == nil {
		t.Fatal("cursor not set")
	}
	if len(*opened) != 1 || (*opened)[0] != "/dev/input/event7" {
		t.Fatalf("opened = %v", *opened)
	}
}

func TestPointerOpener_DisabledIsNil(t *testing.T) {
	if pointerOpener(config.Settings{PointerEnabled: false}, nil) != nil {
		t.Fatal("expected nil opener when pointer is disabled")
	}
}

func TestPointerOpener_OpenError(t *testing.T) {
	stubOpenPointer(t, errors.New("no such device"))
	s := config.Settings{PointerEnabled: true, PointerDevice: "/dev/input/missing"}
	if _, err := pointerOpener(s, nil)(newFakeDisplay(10, 10)); err == nil {
		t.Fatal("expected error")
	}
}
