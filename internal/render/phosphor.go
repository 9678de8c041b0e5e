package render

import (
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/physics"
	"github.com/san-kum/crtsim/internal/trail"
)

// GlowSize is the inner glow radius in pixels for a given brightness.
func GlowSize(brightness float64) float64 {
	return 3 + brightness*3
}

// DrawScreen composites one frame onto the phosphor surface.
func (r *Renderer) DrawScreen(s Surface, cfg crt.Configuration, tick int64, e crt.ElectronState, tr *trail.Buffer) {
	w, h := s.Size()
	persistence := cfg.Display.Persistence
	s.FillRect(0, 0, w, h, RGBA(0, 0, 0, 1-persistence))

	vp := Viewport{W: w, H: h, ScreenSize: r.phys.ScreenSize}
	lissajous := cfg.Mode == crt.ModeLissajous && tr != nil

	if physics.InBounds(r.phys, e) {
		px, py := vp.ToPixel(e.X, e.Y)
		DrawImpact(s, px, py, e.Brightness)
		if lissajous {
			recordOnce(tr, trail.Point{X: e.X, Y: e.Y, Brightness: e.Brightness, CreatedAt: tick})
		}
	}

	if !lissajous {
		return
	}
	tr.RenderAll(tick, persistence, func(p trail.Point, alpha, radius float64) {
		px, py := vp.ToPixel(p.X, p.Y)
		s.FillCircle(px, py, radius, phosphorGreen(alpha))
	})
}

// recordOnce skips the append when this tick is already recorded, so a
// paused session redrawing the same tick does not flood the buffer.
func recordOnce(tr *trail.Buffer, p trail.Point) {
	if last, ok := tr.Last(); ok && last.CreatedAt == p.CreatedAt {
		return
	}
	tr.Record(p)
}

// DrawImpact paints the two-layer phosphor glow at pixel (px, py).
func DrawImpact(s Surface, px, py, brightness float64) {
	size := GlowSize(brightness)
	s.FillCircleRadial(RadialGradient{
		CX: px, CY: py, Radius: size * 3,
		Stops: []GradientStop{
			{Offset: 0, Color: phosphorGreen(brightness * 0.8)},
			{Offset: 0.3, Color: phosphorGreen(brightness * 0.4)},
			{Offset: 1, Color: phosphorGreen(0)},
		},
	})
	s.FillCircleRadial(RadialGradient{
		CX: px, CY: py, Radius: size,
		Stops: []GradientStop{
			{Offset: 0, Color: RGBA(255, 255, 255, brightness)},
			{Offset: 0.7, Color: phosphorGreen(brightness * 0.8)},
			{Offset: 1, Color: phosphorGreen(0)},
		},
	})
}
