// Package crt provides the core types of the cathode-ray tube simulation.
//
// The package defines the values every other package exchanges:
//
//   - [PhysicsConstants]: fixed tube geometry and electron properties
//   - [Configuration]: the live, externally supplied parameter snapshot
//   - [ElectronState]: the per-frame result of a trajectory solve
//   - [Clock]: the monotonic simulation tick
//
// # Example
//
//	phys := crt.DefaultPhysics()
//	cfg := crt.DefaultConfiguration()
//	cfg.Voltages.Vertical = 100
//	e := physics.Solve(phys, cfg, clock.Tick())
//
// # Thread Safety
//
// Configuration and ElectronState are plain values and safe to copy.
// Clock is NOT thread-safe; it belongs to a single session.
package crt
