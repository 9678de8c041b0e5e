package analysis

import (
	"strings"

	"github.com/san-kum/crtsim/internal/storage"
)

// FigureToASCII plots the on-screen samples over the full screen area, so
// figures from different runs share a scale.
func FigureToASCII(samples []storage.Sample, screen float64, width, height int) string {
	if width < 2 || height < 2 || screen <= 0 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	midCol, midRow := (width-1)/2, (height-1)/2
	for row := 0; row < height; row++ {
		canvas[row][midCol] = '│'
	}
	for col := 0; col < width; col++ {
		canvas[midRow][col] = '─'
	}
	canvas[midRow][midCol] = '┼'

	for _, s := range samples {
		if !s.Visible {
			continue
		}
		col := int((s.X/screen + 0.5) * float64(width-1))
		row := int((0.5 - s.Y/screen) * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
