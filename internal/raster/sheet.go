package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"

	"github.com/san-kum/crtsim/internal/render"
)

// Sheet is the three views of one frame plus a composite layout:
// lateral and top stacked on the left, the screen on the right.
type Sheet struct {
	Lateral *Canvas
	Top     *Canvas
	Screen  *Canvas
}

// NewSheet sizes the schematic views to sideW x sideW/2 each and the screen
// to sideW x sideW.
func NewSheet(sideW int) *Sheet {
	return &Sheet{
		Lateral: New(sideW, sideW/2),
		Top:     New(sideW, sideW/2),
		Screen:  New(sideW, sideW),
	}
}

func (s *Sheet) Views() render.Views {
	return render.Views{Lateral: s.Lateral, Top: s.Top, Screen: s.Screen}
}

// Composite returns the sheet as one RGBA image.
func (s *Sheet) Composite() *image.RGBA {
	lw, lh := s.Lateral.dc.Width(), s.Lateral.dc.Height()
	sw, sh := s.Screen.dc.Width(), s.Screen.dc.Height()
	th := s.Top.dc.Height()

	h := max(lh+th, sh)
	out := image.NewRGBA(image.Rect(0, 0, lw+sw, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, lw, lh), s.Lateral.Image(), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, lh, lw, lh+th), s.Top.Image(), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(lw, 0, lw+sw, sh), s.Screen.Image(), image.Point{}, draw.Src)
	return out
}

var labelColor = color.NRGBA{R: 140, G: 140, B: 140, A: 255}

// Annotate writes view titles into the top-left corners. caption goes on
// the screen view.
func (s *Sheet) Annotate(caption string) {
	s.Lateral.Label(6, 16, "LATERAL", labelColor)
	s.Top.Label(6, 16, "TOP", labelColor)
	if caption != "" {
		s.Screen.Label(6, 16, caption, labelColor)
	}
}

func (s *Sheet) SavePNG(path string) error {
	return gg.SavePNG(path, s.Composite())
}
