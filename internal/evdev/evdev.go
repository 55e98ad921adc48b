//go:build linux

// Package evdev reads a mouse or touchscreen from a Linux input event node.
package evdev

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/1broseidon/lvport/internal/backend"
)

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type inputAbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<30 | size<<16 | typ<<8 | nr
}

const iocRead = 2

func eviocgName(n int) uintptr { return ioc(iocRead, 'E', 0x06, uintptr(n)) }
func eviocgAbs(axis int) uintptr {
	return ioc(iocRead, 'E', 0x40+uintptr(axis), unsafe.Sizeof(inputAbsInfo{}))
}

var ioctlFn = func(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Device is an open event node bound to a display.
type Device struct {
	mu     sync.Mutex
	path   string
	name   string
	fd     int
	dec    decoder
	cursor image.Image
	buf    []inputEvent
}

// Open opens path for non-blocking reads. The device is usable once Bind has
// set the display size.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &Device{path: path, fd: fd, buf: make([]inputEvent, 64)}

	name := make([]byte, 256)
	if err := ioctlFn(fd, eviocgName(len(name)), unsafe.Pointer(&name[0])); err == nil {
		n := 0
		for n < len(name) && name[n] != 0 {
			n++
		}
		d.name = string(name[:n])
	}
	if r, ok := absRange(fd, absMTPositionX, absX); ok {
		d.dec.absX = r
	}
	if r, ok := absRange(fd, absMTPositionY, absY); ok {
		d.dec.absY = r
	}
	return d, nil
}

func absRange(fd int, axes ...int) (axisRange, bool) {
	for _, axis := range axes {
		var info inputAbsInfo
		if err := ioctlFn(fd, eviocgAbs(axis), unsafe.Pointer(&info)); err == nil && info.Maximum > info.Minimum {
			return axisRange{info.Minimum, info.Maximum}, true
		}
	}
	return axisRange{}, false
}

// Bind maps pointer coordinates onto a w x h display and centres the cursor.
func (d *Device) Bind(w, h int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dec.bind(w, h)
}

// SetCursor sets the image drawn at the pointer position.
func (d *Device) SetCursor(img image.Image) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = img
}

func (d *Device) Name() string { return d.path }

// DeviceName returns the kernel's name for the device, if it reported one.
func (d *Device) DeviceName() string { return d.name }

func (d *Device) Cursor() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Read drains pending events without blocking.
func (d *Device) Read() []backend.PointerEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fd < 0 {
		return nil
	}
	size := int(unsafe.Sizeof(inputEvent{}))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&d.buf[0])), len(d.buf)*size)

	var out []backend.PointerEvent
	for {
		n, err := unix.Read(d.fd, raw)
		if err != nil || n < size {
			if err != nil && !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EINTR) {
				// Unplugged; stop polling.
				unix.Close(d.fd)
				d.fd = -1
			}
			return out
		}
		for _, ev := range d.buf[:n/size] {
			if s, ok := d.dec.feed(ev.Type, ev.Code, ev.Value); ok {
				out = append(out, s)
			}
		}
		if n < len(raw) {
			return out
		}
	}
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
