//go:build linux

// Package drm drives a KMS connector with a single dumb scanout buffer.
package drm

import (
	"fmt"
	"image"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

var ioctlFn = func(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR, unix.EAGAIN:
			continue
		default:
			return errno
		}
	}
}

// Display is a modeset CRTC scanning out one XRGB8888 dumb buffer.
type Display struct {
	path      string
	file      *os.File
	connector uint32
	crtcID    uint32
	mode      modeInfo
	saved     crtc
	fbID      uint32
	handle    uint32
	pitch     int
	mem       []byte
	back      *image.RGBA
	master    bool
}

// Open modesets the card at path. connector is a connector id or
// ConnectorAuto.
func Open(path string, connector int) (*Display, error) {
	f, err := os.OpenFile(path, os.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &Display{path: path, file: f}
	fd := f.Fd()

	// Not fatal: a logind session may already hold master for us.
	d.master = ioctlFn(fd, ioctlSetMaster, nil) == nil

	crtcs, connIDs, encIDs, err := getResources(fd)
	if err != nil {
		d.Close()
		return nil, err
	}

	conns := make([]connectorInfo, 0, len(connIDs))
	for _, id := range connIDs {
		c, err := getConnectorInfo(fd, id)
		if err != nil {
			d.Close()
			return nil, err
		}
		conns = append(conns, c)
	}
	conn, err := selectConnector(conns, connector)
	if err != nil {
		d.Close()
		return nil, err
	}
	mode, _ := selectMode(conn.Modes)

	encoders := make(map[uint32]encoderInfo, len(encIDs))
	for _, id := range encIDs {
		e := getEncoder{EncoderID: id}
		if err := ioctlFn(fd, ioctlModeGetEncoder, unsafe.Pointer(&e)); err != nil {
			continue
		}
		encoders[id] = encoderInfo{ID: id, CrtcID: e.CrtcID, PossibleCrtcs: e.PossibleCrtcs}
	}
	crtcID, err := selectCrtc(conn, encoders, crtcs)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.connector = conn.ID
	d.crtcID = crtcID
	d.mode = mode

	d.saved = crtc{CrtcID: crtcID}
	_ = ioctlFn(fd, ioctlModeGetCrtc, unsafe.Pointer(&d.saved))

	if err := d.allocate(); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.setCrtc(d.fbID, &d.mode); err != nil {
		d.Close()
		return nil, fmt.Errorf("DRM_IOCTL_MODE_SETCRTC %s: %w", path, err)
	}
	return d, nil
}

func getResources(fd uintptr) (crtcIDs, connIDs, encIDs []uint32, err error) {
	var res cardRes
	if err := ioctlFn(fd, ioctlModeGetRes, unsafe.Pointer(&res)); err != nil {
		return nil, nil, nil, fmt.Errorf("DRM_IOCTL_MODE_GETRESOURCES: %w", err)
	}
	fbs := make([]uint32, res.CountFbs+1)
	crtcs := make([]uint32, res.CountCrtcs+1)
	conns := make([]uint32, res.CountConnectors+1)
	encs := make([]uint32, res.CountEncoders+1)
	res.FbIDPtr = uint64(uintptr(unsafe.Pointer(&fbs[0])))
	res.CrtcIDPtr = uint64(uintptr(unsafe.Pointer(&crtcs[0])))
	res.ConnectorIDPtr = uint64(uintptr(unsafe.Pointer(&conns[0])))
	res.EncoderIDPtr = uint64(uintptr(unsafe.Pointer(&encs[0])))
	err = ioctlFn(fd, ioctlModeGetRes, unsafe.Pointer(&res))
	runtime.KeepAlive(fbs)
	runtime.KeepAlive(crtcs)
	runtime.KeepAlive(conns)
	runtime.KeepAlive(encs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("DRM_IOCTL_MODE_GETRESOURCES: %w", err)
	}
	return crtcs[:min(int(res.CountCrtcs), len(crtcs))],
		conns[:min(int(res.CountConnectors), len(conns))],
		encs[:min(int(res.CountEncoders), len(encs))], nil
}

func getConnectorInfo(fd uintptr, id uint32) (connectorInfo, error) {
	c := getConnector{ConnectorID: id}
	if err := ioctlFn(fd, ioctlModeGetConn, unsafe.Pointer(&c)); err != nil {
		return connectorInfo{}, fmt.Errorf("DRM_IOCTL_MODE_GETCONNECTOR %d: %w", id, err)
	}
	modes := make([]modeInfo, c.CountModes+1)
	encs := make([]uint32, c.CountEncoders+1)
	props := make([]uint32, c.CountProps+1)
	values := make([]uint64, c.CountProps+1)
	c.ModesPtr = uint64(uintptr(unsafe.Pointer(&modes[0])))
	c.EncodersPtr = uint64(uintptr(unsafe.Pointer(&encs[0])))
	c.PropsPtr = uint64(uintptr(unsafe.Pointer(&props[0])))
	c.PropValuesPtr = uint64(uintptr(unsafe.Pointer(&values[0])))
	err := ioctlFn(fd, ioctlModeGetConn, unsafe.Pointer(&c))
	runtime.KeepAlive(modes)
	runtime.KeepAlive(encs)
	runtime.KeepAlive(props)
	runtime.KeepAlive(values)
	if err != nil {
		return connectorInfo{}, fmt.Errorf("DRM_IOCTL_MODE_GETCONNECTOR %d: %w", id, err)
	}
	return connectorInfo{
		ID:        id,
		Connected: c.Connection == modeConnected,
		EncoderID: c.EncoderID,
		Encoders:  encs[:min(int(c.CountEncoders), len(encs))],
		Modes:     modes[:min(int(c.CountModes), len(modes))],
	}, nil
}

func (d *Display) allocate() error {
	fd := d.file.Fd()
	w, h := uint32(d.mode.HDisplay), uint32(d.mode.VDisplay)

	cd := createDumb{Width: w, Height: h, Bpp: 32}
	if err := ioctlFn(fd, ioctlModeCreateDumb, unsafe.Pointer(&cd)); err != nil {
		return fmt.Errorf("DRM_IOCTL_MODE_CREATE_DUMB %dx%d: %w", w, h, err)
	}
	d.handle = cd.Handle
	d.pitch = int(cd.Pitch)

	fb := fbCmd{Width: w, Height: h, Pitch: cd.Pitch, Bpp: 32, Depth: 24, Handle: cd.Handle}
	if err := ioctlFn(fd, ioctlModeAddFB, unsafe.Pointer(&fb)); err != nil {
		return fmt.Errorf("DRM_IOCTL_MODE_ADDFB: %w", err)
	}
	d.fbID = fb.FbID

	md := mapDumb{Handle: cd.Handle}
	if err := ioctlFn(fd, ioctlModeMapDumb, unsafe.Pointer(&md)); err != nil {
		return fmt.Errorf("DRM_IOCTL_MODE_MAP_DUMB: %w", err)
	}
	mem, err := unix.Mmap(int(fd), int64(md.Offset), int(cd.Size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap dumb buffer: %w", err)
	}
	d.mem = mem
	d.back = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	return nil
}

func (d *Display) setCrtc(fbID uint32, mode *modeInfo) error {
	conn := d.connector
	c := crtc{
		SetConnectorsPtr: uint64(uintptr(unsafe.Pointer(&conn))),
		CountConnectors:  1,
		CrtcID:           d.crtcID,
		FbID:             fbID,
		ModeValid:        1,
		Mode:             *mode,
	}
	err := ioctlFn(d.file.Fd(), ioctlModeSetCrtc, unsafe.Pointer(&c))
	runtime.KeepAlive(&conn)
	return err
}

func (d *Display) Width() int              { return int(d.mode.HDisplay) }
func (d *Display) Height() int             { return int(d.mode.VDisplay) }
func (d *Display) BackBuffer() *image.RGBA { return d.back }

// Path returns the card device file.
func (d *Display) Path() string { return d.path }

// Mode returns the name of the active mode, e.g. "1920x1080".
func (d *Display) Mode() string { return d.mode.name() }

func (d *Display) Flush() error {
	if d.mem == nil {
		return fmt.Errorf("drm: display closed")
	}
	copyXRGB(d.mem, d.pitch, d.back)
	return nil
}

// Close restores the CRTC that was active before Open and frees the buffer.
func (d *Display) Close() error {
	if d.file == nil {
		return nil
	}
	fd := d.file.Fd()
	if d.fbID != 0 && d.saved.ModeValid != 0 {
		conn := d.connector
		restore := d.saved
		restore.SetConnectorsPtr = uint64(uintptr(unsafe.Pointer(&conn)))
		restore.CountConnectors = 1
		_ = ioctlFn(fd, ioctlModeSetCrtc, unsafe.Pointer(&restore))
		runtime.KeepAlive(&conn)
	}
	var err error
	if d.mem != nil {
		err = unix.Munmap(d.mem)
		d.mem = nil
	}
	if d.fbID != 0 {
		id := d.fbID
		_ = ioctlFn(fd, ioctlModeRmFB, unsafe.Pointer(&id))
		d.fbID = 0
	}
	if d.handle != 0 {
		h := d.handle
		_ = ioctlFn(fd, ioctlModeDestroy, unsafe.Pointer(&h))
		d.handle = 0
	}
	if d.master {
		_ = ioctlFn(fd, ioctlDropMaster, nil)
	}
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	d.file = nil
	return err
}
