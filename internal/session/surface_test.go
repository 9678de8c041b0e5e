package session

import (
	"image/color"

	"github.com/san-kum/crtsim/internal/render"
)

// stubSurface counts draw calls and panics on demand.
type stubSurface struct {
	w, h  float64
	calls int
	fills int
	boom  bool
}

func (s *stubSurface) Size() (float64, float64) { return s.w, s.h }

func (s *stubSurface) FillRect(x, y, w, h float64, c color.NRGBA) {
	s.hit()
	if x == 0 && y == 0 && w == s.w && h == s.h && c.A == 255 && c.R == 0 && c.G == 0 && c.B == 0 {
		s.fills++
	}
}

func (s *stubSurface) FillRectLinear(x, y, w, h float64, g render.LinearGradient) { s.hit() }
func (s *stubSurface) FillCircle(cx, cy, r float64, c color.NRGBA)             { s.hit() }
func (s *stubSurface) FillCircleRadial(g render.RadialGradient)                { s.hit() }
func (s *stubSurface) StrokePolyline(pts []render.Point, st render.Stroke)     { s.hit() }

func (s *stubSurface) hit() {
	if s.boom {
		panic("surface lost")
	}
	s.calls++
}

type stubViews struct {
	lateral, top, screen *stubSurface
}

func newStubViews() stubViews {
	return stubViews{
		lateral: &stubSurface{w: 400, h: 200},
		top:     &stubSurface{w: 400, h: 200},
		screen:  &stubSurface{w: 300, h: 300},
	}
}

func (v stubViews) views() render.Views {
	return render.Views{Lateral: v.lateral, Top: v.top, Screen: v.screen}
}
