package ui

import (
	"image"
	"math"
)

// CalculateGrid determines the smallest near-square grid holding n cells.
func CalculateGrid(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return rows, cols
}

// GridCells splits area into n equal cells with gap pixels around and
// between them, filled row by row.
func GridCells(n int, area image.Rectangle, gap int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	rows, cols := CalculateGrid(n)

	cellW := (area.Dx() - (cols+1)*gap) / cols
	cellH := (area.Dy() - (rows+1)*gap) / rows

	cells := make([]image.Rectangle, n)
	for i := range cells {
		row, col := i/cols, i%cols
		x := area.Min.X + gap + col*(cellW+gap)
		y := area.Min.Y + gap + row*(cellH+gap)
		cells[i] = image.Rect(x, y, x+cellW, y+cellH)
	}
	return cells
}
