package physics

import "github.com/san-kum/crtsim/internal/crt"

// DeflectionVoltages returns the manual-mode plate voltages that land the
// beam at screen offset (x, y) for the given acceleration voltage.
func DeflectionVoltages(p crt.PhysicsConstants, accel, x, y float64) (vertical, horizontal float64) {
	v0 := InitialSpeed(p, accel)
	tPlates := p.PlateLength / v0
	tDrift := p.PlatesToScreen / v0

	// offset = (qV/(dm)) * tp * (tp/2 + td)
	gain := p.ElectronCharge / (p.PlateSeparation * p.ElectronMass) * tPlates * (tPlates/2 + tDrift)
	if gain == 0 {
		return 0, 0
	}
	return y / gain, x / gain
}
