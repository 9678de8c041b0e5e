// Package raster is an offscreen render.Surface backed by fogleman/gg.
package raster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/crtsim/internal/render"
)

type Canvas struct {
	dc *gg.Context
}

// New returns a w x h canvas filled with opaque black.
func New(w, h int) *Canvas {
	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	return &Canvas{dc: dc}
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) FillRectLinear(x, y, w, h float64, g render.LinearGradient) {
	grad := gg.NewLinearGradient(g.X0, g.Y0, g.X1, g.Y1)
	addStops(grad, g.Stops)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetFillStyle(grad)
	c.dc.Fill()
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	c.dc.DrawCircle(cx, cy, r)
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) FillCircleRadial(g render.RadialGradient) {
	grad := gg.NewRadialGradient(g.CX, g.CY, 0, g.CX, g.CY, g.Radius)
	addStops(grad, g.Stops)
	c.dc.DrawCircle(g.CX, g.CY, g.Radius)
	c.dc.SetFillStyle(grad)
	c.dc.Fill()
}

// StrokePolyline draws the path. A glow is approximated by two wider,
// translucent passes under the core stroke.
func (c *Canvas) StrokePolyline(pts []render.Point, s render.Stroke) {
	if len(pts) < 2 {
		return
	}
	if s.Glow > 0 {
		halo := s.Color
		for i, k := range []float64{1, 0.5} {
			halo.A = uint8(float64(s.Color.A) * 0.15 * float64(i+1))
			c.stroke(pts, s.Width+s.Glow*k, halo, nil)
		}
	}
	c.stroke(pts, s.Width, s.Color, s.Dash)
}

func (c *Canvas) stroke(pts []render.Point, width float64, col color.NRGBA, dash []float64) {
	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.SetLineWidth(width)
	c.dc.SetColor(col)
	c.dc.SetDash(dash...)
	c.dc.Stroke()
	c.dc.SetDash()
}

// Label draws text with its top-left corner at (x, y).
func (c *Canvas) Label(x, y float64, s string, col color.NRGBA) {
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, x, y, 0, 1)
}

func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) SavePNG(path string) error { return c.dc.SavePNG(path) }

func addStops(g gg.Gradient, stops []render.GradientStop) {
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color)
	}
}
