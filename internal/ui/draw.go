package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text metrics of the built-in face.
const (
	CharWidth  = 7
	LineHeight = 13
	ascent     = 11
)

var face = basicfont.Face7x13

// Fill paints the whole of dst.
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect paints r clipped to dst.
func FillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// StrokeRect draws a border of the given width inside r.
func StrokeRect(dst draw.Image, r image.Rectangle, width int, c color.Color) {
	if width <= 0 {
		return
	}
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	FillRect(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	FillRect(dst, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// FillCircle paints a disc of radius r around center.
func FillCircle(dst draw.Image, center image.Point, r int, c color.Color) {
	b := image.Rect(center.X-r, center.Y-r, center.X+r+1, center.Y+r+1).Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := y - center.Y
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := x - center.X
			if dx*dx+dy*dy <= r*r {
				dst.Set(x, y, c)
			}
		}
	}
}

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dst draw.Image, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+ascent),
	}
	d.DrawString(s)
}

// DrawTextCentered centres s inside r.
func DrawTextCentered(dst draw.Image, r image.Rectangle, s string, c color.Color) {
	x := r.Min.X + (r.Dx()-TextWidth(s))/2
	y := r.Min.Y + (r.Dy()-LineHeight)/2
	DrawText(dst, x, y, s, c)
}

// TextWidth is the advance of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}
