package ui

import "image/color"

// Palette
const (
	ColorBackground = 0x1f2933
	ColorSurface    = 0x323f4b
	ColorAccent     = 0x3498db
	ColorAccentAlt  = 0x27ae60
	ColorMuted      = 0x7f8c8d
	ColorText       = 0xf5f7fa
	ColorTextDim    = 0x95a5a6
)

// RGB converts a 0xRRGGBB constant to an opaque color.
func RGB(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}
