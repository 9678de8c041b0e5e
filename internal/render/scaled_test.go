package render

import (
	"image/color"
	"testing"
)

func TestScaledSurface(t *testing.T) {
	rec := newRecorder(80, 32)
	s := Scale(rec, 0.25)

	w, h := s.Size()
	if w != 320 || h != 128 {
		t.Fatalf("expected virtual size 320x128, got %vx%v", w, h)
	}

	s.FillRect(40, 8, 20, 4, color.NRGBA{A: 255})
	s.FillCircleRadial(RadialGradient{CX: 100, CY: 60, Radius: 18})
	s.StrokePolyline([]Point{{0, 0}, {100, 40}}, Stroke{Width: 4, Dash: []float64{8, 4}})

	got := rec.ops[0]
	if got.x != 10 || got.y != 2 || got.w != 5 || got.h != 1 {
		t.Errorf("rect not scaled: %+v", got)
	}
	if r := rec.ops[1].radial; r.CX != 25 || r.CY != 15 || r.Radius != 4.5 {
		t.Errorf("radial not scaled: %+v", r)
	}
	st := rec.ops[2]
	if st.pts[1] != (Point{25, 10}) || st.stroke.Width != 1 || st.stroke.Dash[0] != 2 {
		t.Errorf("stroke not scaled: %+v", st)
	}
}

func TestScaleRejectsNonPositive(t *testing.T) {
	s := Scale(newRecorder(10, 10), 0)
	if w, _ := s.Size(); w != 10 {
		t.Errorf("expected identity scale, got width %v", w)
	}
}
