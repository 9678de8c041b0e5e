// Package physics solves the electron trajectory through the tube.
//
// The trajectory is solved in closed form once per frame; there is no
// integration step:
//
//   - [Solve]: configuration snapshot + tick -> [crt.ElectronState]
//   - [InBounds]: whether an impact lands on the screen
//   - [DeflectionVoltages]: plate voltages that place the beam at a point
//
// # Approximations
//
// The horizontal speed through the plates is constant (deflection does not
// change transit time) and the field between the plates is uniform, the
// standard textbook CRT model:
//
//	e := physics.Solve(crt.DefaultPhysics(), cfg, tick)
//	if physics.InBounds(phys, e) {
//	    // draw impact
//	}
package physics
