package physics

import (
	"math"
	"testing"

	"github.com/san-kum/crtsim/internal/crt"
)

func manual(accel, vertical, horizontal float64) crt.Configuration {
	cfg := crt.DefaultConfiguration()
	cfg.Voltages = crt.Voltages{Acceleration: accel, Vertical: vertical, Horizontal: horizontal}
	return cfg
}

func TestZeroDeflection(t *testing.T) {
	p := crt.DefaultPhysics()
	for _, v := range []float64{1, 500, 2000, 5000, -3000} {
		e := Solve(p, manual(v, 0, 0), 42)
		if e.X != 0 || e.Y != 0 {
			t.Errorf("V=%.0f: expected offset (0,0), got (%g,%g)", v, e.X, e.Y)
		}
		if e.VX != 0 || e.VY != 0 {
			t.Errorf("V=%.0f: expected velocity (0,0), got (%g,%g)", v, e.VX, e.VY)
		}
	}
}

func TestManualVerticalDeflection(t *testing.T) {
	p := crt.DefaultPhysics()
	cfg := manual(2000, 100, 0)

	e1 := Solve(p, cfg, 0)
	e2 := Solve(p, cfg, 999)

	if e1 != e2 {
		t.Errorf("manual solve should not depend on tick: %+v vs %+v", e1, e2)
	}
	if e1.X != 0 {
		t.Errorf("expected x=0, got %g", e1.X)
	}
	if e1.Y == 0 {
		t.Fatal("expected nonzero y deflection")
	}
	// electrons are negative: positive plate voltage pulls the beam down
	if e1.Y >= 0 {
		t.Errorf("expected negative y for positive vertical voltage, got %g", e1.Y)
	}

	v0 := math.Sqrt(2 * 2000 * 1.602e-19 / 9.109e-31)
	tp, td := 0.05/v0, 0.20/v0
	ay := -1.602e-19 * (100 / 0.02) / 9.109e-31
	want := 0.5*ay*tp*tp + ay*tp*td
	if math.Abs(e1.Y-want) > 1e-12 {
		t.Errorf("expected y=%g, got %g", want, e1.Y)
	}
	if math.Abs(e1.TransitTime-(tp+td)) > 1e-18 {
		t.Errorf("expected transit %g, got %g", tp+td, e1.TransitTime)
	}
	if !InBounds(p, e1) {
		t.Error("100 V deflection should stay on screen")
	}
}

func TestBrightnessClamped(t *testing.T) {
	p := crt.DefaultPhysics()
	tests := []struct {
		name string
		cfg  crt.Configuration
	}{
		{"default", manual(2000, 0, 0)},
		{"huge accel", manual(1e9, 0, 0)},
		{"huge deflection", manual(2000, 1e7, -1e7)},
		{"zero accel", manual(0, 100, 100)},
	}

	for _, tt := range tests {
		for _, b := range []float64{0, 0.5, 1, 5, -2} {
			cfg := tt.cfg
			cfg.Display.Brightness = b
			e := Solve(p, cfg, 0)
			if e.Brightness < 0 || e.Brightness > 1 || math.IsNaN(e.Brightness) {
				t.Errorf("%s, display %.1f: brightness %g outside [0,1]", tt.name, b, e.Brightness)
			}
		}
	}

	e := Solve(p, manual(1e9, 0, 0), 0)
	if e.Brightness != 1 {
		t.Errorf("expected saturated brightness 1, got %g", e.Brightness)
	}
}

func TestZeroAccelerationStaysFinite(t *testing.T) {
	p := crt.DefaultPhysics()
	e := Solve(p, manual(0, 50, -50), 0)
	for name, v := range map[string]float64{"x": e.X, "y": e.Y, "vx": e.VX, "vy": e.VY, "transit": e.TransitTime} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s not finite: %g", name, v)
		}
	}
	if InitialSpeed(p, 0) != InitialSpeed(p, MinAccelerationVoltage) {
		t.Error("zero voltage should clamp to the minimum voltage")
	}
}

func TestLissajousCircle(t *testing.T) {
	p := crt.DefaultPhysics()
	cfg := crt.DefaultConfiguration()
	cfg.Mode = crt.ModeLissajous
	cfg.Lissajous = crt.Lissajous{FreqX: 1, FreqY: 1, PhaseY: 90, Amplitude: 300}

	start := Solve(p, cfg, 0)
	if math.Abs(start.X) > 1e-12 {
		t.Errorf("expected x≈0 at tick 0, got %g", start.X)
	}
	radius := math.Abs(start.Y)
	if radius == 0 {
		t.Fatal("expected nonzero radius")
	}

	period := int64(math.Round(1 / TimeScale))
	minX, maxX := 0.0, 0.0
	for tick := int64(0); tick <= period; tick++ {
		e := Solve(p, cfg, tick)
		r := math.Hypot(e.X, e.Y)
		if math.Abs(r-radius)/radius > 1e-9 {
			t.Fatalf("tick %d: radius %g differs from %g", tick, r, radius)
		}
		minX, maxX = math.Min(minX, e.X), math.Max(maxX, e.X)
	}

	if maxX-minX < 1.9*radius {
		t.Errorf("sweep did not cover the circle: x range %g, radius %g", maxX-minX, radius)
	}

	end := Solve(p, cfg, period)
	if math.Abs(end.X-start.X) > radius*1e-9 || math.Abs(end.Y-start.Y) > radius*1e-9 {
		t.Errorf("path not closed: start (%g,%g) end (%g,%g)", start.X, start.Y, end.X, end.Y)
	}
}

func TestPlateVoltagesManual(t *testing.T) {
	vh, vv := PlateVoltages(manual(2000, 120, -80), 17)
	if vh != -80 || vv != 120 {
		t.Errorf("expected (-80,120), got (%g,%g)", vh, vv)
	}
}

func TestInBounds(t *testing.T) {
	p := crt.DefaultPhysics()
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{0.15, -0.15, true},
		{0.1501, 0, false},
		{0, -0.2, false},
	}
	for _, tt := range tests {
		got := InBounds(p, crt.ElectronState{X: tt.x, Y: tt.y})
		if got != tt.want {
			t.Errorf("InBounds(%g,%g) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDeflectionVoltagesRoundTrip(t *testing.T) {
	p := crt.DefaultPhysics()
	targets := [][2]float64{{0.05, -0.03}, {-0.1, 0.1}, {0, 0.01}}

	for _, tgt := range targets {
		vv, vh := DeflectionVoltages(p, 2000, tgt[0], tgt[1])
		e := Solve(p, manual(2000, vv, vh), 0)
		if math.Abs(e.X-tgt[0]) > 1e-12 || math.Abs(e.Y-tgt[1]) > 1e-12 {
			t.Errorf("target (%g,%g): landed at (%g,%g)", tgt[0], tgt[1], e.X, e.Y)
		}
	}
}
