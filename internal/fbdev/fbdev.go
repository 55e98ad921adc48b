//go:build linux

// Package fbdev presents frames on a Linux framebuffer device.
package fbdev

import (
	"fmt"
	"image"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	ioctlGetVScreenInfo = 0x4600
	ioctlGetFScreenInfo = 0x4602
)

// fixScreenInfo mirrors struct fb_fix_screeninfo. The unsigned long fields
// are uintptr so the layout follows the host ABI.
type fixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Display is a memory-mapped framebuffer.
type Display struct {
	path   string
	file   *os.File
	mem    []byte
	vinfo  varScreenInfo
	finfo  fixScreenInfo
	format pixelFormat
	back   *image.RGBA
}

var ioctlFn = func(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Open maps the framebuffer at path. The back buffer matches the visible
// resolution reported by the driver.
func Open(path string) (*Display, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &Display{path: path, file: f}

	if err := ioctlFn(f.Fd(), ioctlGetVScreenInfo, unsafe.Pointer(&d.vinfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("FBIOGET_VSCREENINFO %s: %w", path, err)
	}
	if err := ioctlFn(f.Fd(), ioctlGetFScreenInfo, unsafe.Pointer(&d.finfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("FBIOGET_FSCREENINFO %s: %w", path, err)
	}

	format, err := formatFromVarInfo(&d.vinfo)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.format = format

	size := int(d.finfo.SmemLen)
	if size == 0 {
		size = int(d.finfo.LineLength) * int(d.vinfo.YResVirtual)
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	d.mem = mem
	d.back = image.NewRGBA(image.Rect(0, 0, int(d.vinfo.XRes), int(d.vinfo.YRes)))
	return d, nil
}

func (d *Display) Width() int              { return int(d.vinfo.XRes) }
func (d *Display) Height() int             { return int(d.vinfo.YRes) }
func (d *Display) BackBuffer() *image.RGBA { return d.back }

// Path returns the device file backing the display.
func (d *Display) Path() string { return d.path }

// Flush converts the back buffer into the visible page.
func (d *Display) Flush() error {
	offset := int(d.vinfo.YOffset)*int(d.finfo.LineLength) + int(d.vinfo.XOffset)*d.format.bytesPerPixel
	if offset < 0 || offset > len(d.mem) {
		return fmt.Errorf("fbdev: visible offset %d outside mapping", offset)
	}
	d.format.blit(d.mem[offset:], int(d.finfo.LineLength), d.back)
	return nil
}

func (d *Display) Close() error {
	var err error
	if d.mem != nil {
		err = unix.Munmap(d.mem)
		d.mem = nil
	}
	if d.file != nil {
		if cerr := d.file.Close(); err == nil {
			err = cerr
		}
		d.file = nil
	}
	return err
}
