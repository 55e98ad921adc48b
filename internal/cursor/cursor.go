// Package cursor holds the static pointer image drawn by the software cursor.
package cursor

import (
	"image"
	"image/color"
)

// arrow is a 12x19 arrow; '#' is outline, '.' is fill, anything else is
// transparent.
var arrow = []string{
	"#           ",
	"##          ",
	"#.#         ",
	"#..#        ",
	"#...#       ",
	"#....#      ",
	"#.....#     ",
	"#......#    ",
	"#.......#   ",
	"#........#  ",
	"#.........# ",
	"#......#####",
	"#...#..#    ",
	"#..# #..#   ",
	"#.#  #..#   ",
	"##    #..#  ",
	"#     #..#  ",
	"       #..# ",
	"       ###  ",
}

var (
	outline = color.RGBA{A: 0xff}
	fill    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var arrowImage = build(arrow)

// Arrow returns the shared cursor image. The hot spot is the top-left pixel.
// Callers must not modify it.
func Arrow() *image.RGBA {
	return arrowImage
}

func build(rows []string) *image.RGBA {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, w, len(rows)))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			switch r[x] {
			case '#':
				img.SetRGBA(x, y, outline)
			case '.':
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return img
}
