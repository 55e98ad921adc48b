package fbdev

import (
	"fmt"
	"image"
)

// bitfield mirrors struct fb_bitfield.
type bitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// varScreenInfo mirrors struct fb_var_screeninfo (160 bytes).
type varScreenInfo struct {
	XRes         uint32
	YRes         uint32
	XResVirtual  uint32
	YResVirtual  uint32
	XOffset      uint32
	YOffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          bitfield
	Green        bitfield
	Blue         bitfield
	Transp       bitfield
	NonStd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	PixClock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HsyncLen     uint32
	VsyncLen     uint32
	Sync         uint32
	Vmode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

// pixelFormat packs RGBA samples into the device layout.
type pixelFormat struct {
	bytesPerPixel int
	red           bitfield
	green         bitfield
	blue          bitfield
	transp        bitfield
}

func formatFromVarInfo(v *varScreenInfo) (pixelFormat, error) {
	switch v.BitsPerPixel {
	case 16, 24, 32:
	default:
		return pixelFormat{}, fmt.Errorf("unsupported bits_per_pixel %d", v.BitsPerPixel)
	}
	if v.Grayscale != 0 {
		return pixelFormat{}, fmt.Errorf("grayscale framebuffers are not supported")
	}
	return pixelFormat{
		bytesPerPixel: int(v.BitsPerPixel / 8),
		red:           v.Red,
		green:         v.Green,
		blue:          v.Blue,
		transp:        v.Transp,
	}, nil
}

// isBGRX is the common little endian XRGB8888 layout.
func (f pixelFormat) isBGRX() bool {
	return f.bytesPerPixel == 4 &&
		f.red.Offset == 16 && f.red.Length == 8 &&
		f.green.Offset == 8 && f.green.Length == 8 &&
		f.blue.Offset == 0 && f.blue.Length == 8
}

func scale(c uint8, field bitfield) uint32 {
	if field.Length == 0 {
		return 0
	}
	if field.Length > 8 {
		// Repeat the byte to fill wide fields so 0xff maps to all ones.
		v, bits := uint32(c), uint32(8)
		for bits < field.Length {
			v = v<<8 | uint32(c)
			bits += 8
		}
		return (v >> (bits - field.Length)) << field.Offset
	}
	if field.Length == 8 {
		return uint32(c) << field.Offset
	}
	return (uint32(c) >> (8 - field.Length)) << field.Offset
}

func (f pixelFormat) pack(r, g, b uint8) uint32 {
	v := scale(r, f.red) | scale(g, f.green) | scale(b, f.blue)
	if f.transp.Length > 0 {
		v |= scale(0xff, f.transp)
	}
	return v
}

// blit writes src into dst, a mapping with the given line stride in bytes.
// Rows or columns that do not fit are dropped.
func (f pixelFormat) blit(dst []byte, stride int, src *image.RGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if stride <= 0 {
		return
	}
	if maxW := stride / f.bytesPerPixel; w > maxW {
		w = maxW
	}
	for y := 0; y < h; y++ {
		row := y * stride
		if row+w*f.bytesPerPixel > len(dst) {
			return
		}
		s := src.Pix[y*src.Stride:]
		d := dst[row:]
		if f.isBGRX() {
			for x := 0; x < w; x++ {
				si, di := x*4, x*4
				d[di+0] = s[si+2]
				d[di+1] = s[si+1]
				d[di+2] = s[si+0]
				d[di+3] = 0xff
			}
			continue
		}
		for x := 0; x < w; x++ {
			si := x * 4
			v := f.pack(s[si], s[si+1], s[si+2])
			di := x * f.bytesPerPixel
			for i := 0; i < f.bytesPerPixel; i++ {
				d[di+i] = byte(v >> (8 * i))
			}
		}
	}
}
