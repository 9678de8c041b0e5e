package render

import "image/color"

// Scaled presents inner as a surface factor times larger in each direction,
// so layouts written for full-size views fit a coarse target.
type Scaled struct {
	inner  Surface
	factor float64
}

// Scale wraps s so that one unit drawn equals k device pixels of s.
func Scale(s Surface, k float64) *Scaled {
	if k <= 0 {
		k = 1
	}
	return &Scaled{inner: s, factor: k}
}

func (s *Scaled) Size() (float64, float64) {
	w, h := s.inner.Size()
	return w / s.factor, h / s.factor
}

func (s *Scaled) FillRect(x, y, w, h float64, c color.NRGBA) {
	k := s.factor
	s.inner.FillRect(x*k, y*k, w*k, h*k, c)
}

func (s *Scaled) FillRectLinear(x, y, w, h float64, g LinearGradient) {
	k := s.factor
	g.X0, g.Y0, g.X1, g.Y1 = g.X0*k, g.Y0*k, g.X1*k, g.Y1*k
	s.inner.FillRectLinear(x*k, y*k, w*k, h*k, g)
}

func (s *Scaled) FillCircle(cx, cy, r float64, c color.NRGBA) {
	k := s.factor
	s.inner.FillCircle(cx*k, cy*k, r*k, c)
}

func (s *Scaled) FillCircleRadial(g RadialGradient) {
	k := s.factor
	g.CX, g.CY, g.Radius = g.CX*k, g.CY*k, g.Radius*k
	s.inner.FillCircleRadial(g)
}

func (s *Scaled) StrokePolyline(pts []Point, st Stroke) {
	k := s.factor
	scaled := make([]Point, len(pts))
	for i, p := range pts {
		scaled[i] = Point{X: p.X * k, Y: p.Y * k}
	}
	st.Width *= k
	st.Glow *= k
	if st.Dash != nil {
		dash := make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = d * k
		}
		st.Dash = dash
	}
	s.inner.StrokePolyline(scaled, st)
}
