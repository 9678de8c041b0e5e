package physics

import (
	"math"

	"github.com/san-kum/crtsim/internal/crt"
)

const (
	// TimeScale converts a tick into Lissajous signal time.
	TimeScale = 0.02

	// ReferenceSpeed maps electron speed to full brightness.
	ReferenceSpeed = 5e7

	// MinAccelerationVoltage is the magnitude below which the gun voltage is
	// clamped so the initial speed stays finite.
	MinAccelerationVoltage = 1.0
)

// InitialSpeed from energy conservation, ½mv² = |qV|.
func InitialSpeed(p crt.PhysicsConstants, accel float64) float64 {
	v := math.Abs(accel)
	if v < MinAccelerationVoltage || math.IsNaN(v) {
		v = MinAccelerationVoltage
	}
	return math.Sqrt(2 * math.Abs(v*p.ElectronCharge) / p.ElectronMass)
}

// PlateVoltages returns the instantaneous horizontal and vertical plate
// voltages for the configuration at the given tick.
func PlateVoltages(cfg crt.Configuration, tick int64) (horizontal, vertical float64) {
	if cfg.Mode != crt.ModeLissajous {
		return cfg.Voltages.Horizontal, cfg.Voltages.Vertical
	}
	t := float64(tick) * TimeScale
	l := cfg.Lissajous
	horizontal = l.Amplitude * math.Sin(2*math.Pi*l.FreqX*t+l.PhaseX*math.Pi/180)
	vertical = l.Amplitude * math.Sin(2*math.Pi*l.FreqY*t+l.PhaseY*math.Pi/180)
	return horizontal, vertical
}

// FieldStrength between the plates, V/m.
func FieldStrength(p crt.PhysicsConstants, cfg crt.Configuration, tick int64) (ex, ey float64) {
	vh, vv := PlateVoltages(cfg, tick)
	return vh / p.PlateSeparation, vv / p.PlateSeparation
}

// Solve computes where the electron emitted at this tick hits the screen plane.
func Solve(p crt.PhysicsConstants, cfg crt.Configuration, tick int64) crt.ElectronState {
	v0 := InitialSpeed(p, cfg.Voltages.Acceleration)
	ex, ey := FieldStrength(p, cfg, tick)

	ax := p.ElectronCharge * ex / p.ElectronMass
	ay := p.ElectronCharge * ey / p.ElectronMass

	tPlates := p.PlateLength / v0
	vx, vy := ax*tPlates, ay*tPlates
	xPlates := 0.5 * ax * tPlates * tPlates
	yPlates := 0.5 * ay * tPlates * tPlates

	tDrift := p.PlatesToScreen / v0

	speed := math.Sqrt(v0*v0 + vx*vx + vy*vy)

	return crt.ElectronState{
		X:           xPlates + vx*tDrift,
		Y:           yPlates + vy*tDrift,
		VX:          vx,
		VY:          vy,
		Speed:       speed,
		Brightness:  clamp01(speed/ReferenceSpeed) * clamp01(cfg.Display.Brightness),
		TransitTime: tPlates + tDrift,
	}
}

// InBounds reports whether the impact lies on the square screen.
func InBounds(p crt.PhysicsConstants, e crt.ElectronState) bool {
	half := p.ScreenSize / 2
	return math.Abs(e.X) <= half && math.Abs(e.Y) <= half
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
