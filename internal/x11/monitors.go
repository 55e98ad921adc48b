package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}
	return monitors, nil
}

// pointerPosition returns the pointer position on the root window.
func (c *Connection) pointerPosition() (int, int, bool) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(pointer.RootX), int(pointer.RootY), true
}

// placement picks the top-left corner for a w x h window: centred on the
// monitor under the pointer, else the first monitor, else the origin.
func placement(monitors []Monitor, px, py int, havePointer bool, w, h int) (int, int) {
	if len(monitors) == 0 {
		return 0, 0
	}
	mon := monitors[0]
	if havePointer {
		for _, m := range monitors {
			if m.contains(px, py) {
				mon = m
				break
			}
		}
	}
	x := mon.X + (mon.Width-w)/2
	y := mon.Y + (mon.Height-h)/2
	return max(x, mon.X), max(y, mon.Y)
}

// windowOrigin queries the server for where a new window should go. Any
// failure places it at the origin.
func (c *Connection) windowOrigin(w, h int) (int, int) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return 0, 0
	}
	px, py, ok := c.pointerPosition()
	return placement(monitors, px, py, ok, w, h)
}
