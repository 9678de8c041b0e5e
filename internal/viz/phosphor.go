package viz

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/crtsim/internal/render"
)

// Phosphor is a render.Surface over a Braille canvas. Each dot keeps a
// luminance in [0,1]; draws alpha-blend into it and dots above Threshold
// light up when the canvas is resolved.
type Phosphor struct {
	canvas    *Canvas
	lum       []float64
	w, h      int
	Threshold float64
}

// NewPhosphor returns a surface of cols x rows Braille cells.
func NewPhosphor(cols, rows int, threshold float64) *Phosphor {
	w, h := cols*2, rows*4
	return &Phosphor{
		canvas:    NewCanvas(cols, rows),
		lum:       make([]float64, w*h),
		w:         w,
		h:         h,
		Threshold: threshold,
	}
}

func (p *Phosphor) Size() (float64, float64) { return float64(p.w), float64(p.h) }

// Luminance returns the dot value at (x, y), zero outside the surface.
func (p *Phosphor) Luminance(x, y int) float64 {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return 0
	}
	return p.lum[y*p.w+x]
}

func (p *Phosphor) blend(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	a := float64(c.A) / 255
	l := (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
	i := y*p.w + x
	p.lum[i] = p.lum[i]*(1-a) + l*a
}

func (p *Phosphor) FillRect(x, y, w, h float64, c color.NRGBA) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	for py := max(y0, 0); py < min(y1, p.h); py++ {
		for px := max(x0, 0); px < min(x1, p.w); px++ {
			p.blend(px, py, c)
		}
	}
}

func (p *Phosphor) FillRectLinear(x, y, w, h float64, g render.LinearGradient) {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	for py := max(y0, 0); py < min(y1, p.h); py++ {
		for px := max(x0, 0); px < min(x1, p.w); px++ {
			t := 0.0
			if l2 > 0 {
				t = ((float64(px)-g.X0)*dx + (float64(py)-g.Y0)*dy) / l2
			}
			p.blend(px, py, render.ColorAt(g.Stops, t))
		}
	}
}

func (p *Phosphor) FillCircle(cx, cy, r float64, c color.NRGBA) {
	p.eachInCircle(cx, cy, r, func(x, y int, _ float64) { p.blend(x, y, c) })
}

func (p *Phosphor) FillCircleRadial(g render.RadialGradient) {
	p.eachInCircle(g.CX, g.CY, g.Radius, func(x, y int, d float64) {
		p.blend(x, y, render.ColorAt(g.Stops, d/g.Radius))
	})
}

// eachInCircle visits dots whose centers fall inside the circle. The dot under
// the center is always visited so sub-dot circles still show.
func (p *Phosphor) eachInCircle(cx, cy, r float64, fn func(x, y int, d float64)) {
	ccx, ccy := int(math.Floor(cx)), int(math.Floor(cy))
	fn(ccx, ccy, 0)
	ri := int(math.Ceil(r))
	for y := ccy - ri; y <= ccy+ri; y++ {
		for x := ccx - ri; x <= ccx+ri; x++ {
			if x == ccx && y == ccy {
				continue
			}
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d <= r {
				fn(x, y, d)
			}
		}
	}
}

func (p *Phosphor) StrokePolyline(pts []render.Point, s render.Stroke) {
	for _, seg := range render.DashSegments(pts, s.Dash) {
		bresenham(int(seg[0].X), int(seg[0].Y), int(seg[1].X), int(seg[1].Y), func(x, y int) {
			p.blend(x, y, s.Color)
		})
	}
}

// Resolve thresholds the luminance buffer into the Braille canvas.
func (p *Phosphor) Resolve() *Canvas {
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			if p.lum[y*p.w+x] > p.Threshold {
				p.canvas.Set(x, y)
			} else {
				p.canvas.Unset(x, y)
			}
		}
	}
	return p.canvas
}

// CellLuminance is the brightest dot of a Braille cell.
func (p *Phosphor) CellLuminance(row, col int) float64 {
	best := 0.0
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			best = math.Max(best, p.Luminance(col*2+dx, row*4+dy))
		}
	}
	return best
}

// Image renders the luminance buffer as a green-on-black paletted frame,
// scale pixels per dot.
func (p *Phosphor) Image(scale int) *image.Paletted {
	if scale < 1 {
		scale = 1
	}
	pal := make(color.Palette, 16)
	for i := range pal {
		pal[i] = color.RGBA{G: uint8(i * 17), A: 255}
	}
	img := image.NewPaletted(image.Rect(0, 0, p.w*scale, p.h*scale), pal)
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			idx := uint8(math.Round(math.Min(p.lum[y*p.w+x], 1) * 15))
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetColorIndex(x*scale+sx, y*scale+sy, idx)
				}
			}
		}
	}
	return img
}
