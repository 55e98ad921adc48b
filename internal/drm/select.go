package drm

import (
	"errors"
	"fmt"
	"image"
)

// ConnectorAuto selects the first connected connector that reports a mode.
const ConnectorAuto = -1

var (
	errNoConnector = errors.New("no connected connector")
	errNoCrtc      = errors.New("no usable crtc")
)

type connectorInfo struct {
	ID        uint32
	Connected bool
	EncoderID uint32
	Encoders  []uint32
	Modes     []modeInfo
}

type encoderInfo struct {
	ID            uint32
	CrtcID        uint32
	PossibleCrtcs uint32
}

func selectConnector(conns []connectorInfo, want int) (connectorInfo, error) {
	for _, c := range conns {
		if want != ConnectorAuto {
			if int64(c.ID) != int64(want) {
				continue
			}
			if !c.Connected || len(c.Modes) == 0 {
				return connectorInfo{}, fmt.Errorf("connector %d is not connected", want)
			}
			return c, nil
		}
		if c.Connected && len(c.Modes) > 0 {
			return c, nil
		}
	}
	if want != ConnectorAuto {
		return connectorInfo{}, fmt.Errorf("connector %d not found", want)
	}
	return connectorInfo{}, errNoConnector
}

// selectMode prefers the mode flagged preferred by the driver, then the
// first listed one.
func selectMode(modes []modeInfo) (modeInfo, bool) {
	for _, m := range modes {
		if m.Type&modeTypePreferred != 0 {
			return m, true
		}
	}
	if len(modes) == 0 {
		return modeInfo{}, false
	}
	return modes[0], true
}

// selectCrtc keeps the CRTC already driving the connector when there is one,
// otherwise takes the first CRTC any of its encoders can drive.
func selectCrtc(conn connectorInfo, encoders map[uint32]encoderInfo, crtcs []uint32) (uint32, error) {
	if enc, ok := encoders[conn.EncoderID]; ok && enc.CrtcID != 0 {
		return enc.CrtcID, nil
	}
	for _, id := range conn.Encoders {
		enc, ok := encoders[id]
		if !ok {
			continue
		}
		for i, c := range crtcs {
			if i < 32 && enc.PossibleCrtcs&(1<<uint(i)) != 0 {
				return c, nil
			}
		}
	}
	return 0, errNoCrtc
}

// copyXRGB writes src into an XRGB8888 scanout buffer with the given pitch.
func copyXRGB(dst []byte, pitch int, src *image.RGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if pitch/4 < w {
		w = pitch / 4
	}
	for y := 0; y < h; y++ {
		row := y * pitch
		if row+w*4 > len(dst) {
			return
		}
		s := src.Pix[y*src.Stride:]
		d := dst[row:]
		for x := 0; x < w; x++ {
			i := x * 4
			d[i+0] = s[i+2]
			d[i+1] = s[i+1]
			d[i+2] = s[i+0]
			d[i+3] = 0
		}
	}
}
