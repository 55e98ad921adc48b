package evdev

import "github.com/1broseidon/lvport/internal/backend"

// Event types and codes from linux/input-event-codes.h.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0

	relX = 0x00
	relY = 0x01

	absX            = 0x00
	absY            = 0x01
	absMTPositionX  = 0x35
	absMTPositionY  = 0x36
	absMTTrackingID = 0x39

	btnLeft  = 0x110
	btnTouch = 0x14a
)

type axisRange struct {
	min, max int32
}

func (a axisRange) scale(v int32, out int) int {
	if out <= 1 || a.max <= a.min {
		return 0
	}
	if v < a.min {
		v = a.min
	}
	if v > a.max {
		v = a.max
	}
	return int(int64(v-a.min) * int64(out-1) / int64(a.max-a.min))
}

// decoder folds raw input events into pointer samples, one per SYN_REPORT
// that changed position or button state. Relative motion accumulates and is
// clamped to the bound display; absolute axes are scaled into it.
type decoder struct {
	width, height int
	absX, absY    axisRange

	x, y    int
	pressed bool
	dirty   bool
}

func (d *decoder) bind(w, h int) {
	d.width, d.height = w, h
	d.x, d.y = w/2, h/2
	if d.absX.max <= d.absX.min {
		d.absX = axisRange{0, int32(max(w-1, 1))}
	}
	if d.absY.max <= d.absY.min {
		d.absY = axisRange{0, int32(max(h-1, 1))}
	}
}

func (d *decoder) clamp() {
	d.x = min(max(d.x, 0), max(d.width-1, 0))
	d.y = min(max(d.y, 0), max(d.height-1, 0))
}

// feed consumes one event and reports a sample when a frame completes.
func (d *decoder) feed(typ, code uint16, value int32) (backend.PointerEvent, bool) {
	switch typ {
	case evRel:
		switch code {
		case relX:
			d.x += int(value)
		case relY:
			d.y += int(value)
		default:
			return backend.PointerEvent{}, false
		}
		d.clamp()
		d.dirty = true
	case evAbs:
		switch code {
		case absX, absMTPositionX:
			d.x = d.absX.scale(value, d.width)
		case absY, absMTPositionY:
			d.y = d.absY.scale(value, d.height)
		case absMTTrackingID:
			d.pressed = value >= 0
		default:
			return backend.PointerEvent{}, false
		}
		d.dirty = true
	case evKey:
		if code == btnLeft || code == btnTouch {
			d.pressed = value != 0
			d.dirty = true
		}
	case evSyn:
		if code == synReport && d.dirty {
			d.dirty = false
			return backend.PointerEvent{X: d.x, Y: d.y, Pressed: d.pressed}, true
		}
	}
	return backend.PointerEvent{}, false
}
