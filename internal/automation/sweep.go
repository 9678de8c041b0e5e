package automation

import (
	"fmt"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/physics"
)

// Sweep solves the beam across a range of one voltage with everything else
// held at Base. It runs the solver only.
type Sweep struct {
	Base     crt.Configuration
	Param    string // acceleration, vertical or horizontal
	Min, Max float64
	Steps    int
}

type SweepResult struct {
	Value   float64
	X, Y    float64
	Speed   float64
	Visible bool
}

func setParam(cfg *crt.Configuration, name string, v float64) error {
	switch name {
	case "acceleration":
		cfg.Voltages.Acceleration = v
	case "vertical":
		cfg.Voltages.Vertical = v
	case "horizontal":
		cfg.Voltages.Horizontal = v
	default:
		return fmt.Errorf("%w: unknown sweep parameter %q", crt.ErrInvalidConfig, name)
	}
	return nil
}

// RunSweep executes a parameter sweep in manual mode.
func RunSweep(p crt.PhysicsConstants, sw Sweep) ([]SweepResult, error) {
	if sw.Steps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps", crt.ErrInvalidConfig)
	}
	cfg := sw.Base
	cfg.Mode = crt.ModeManual
	if err := setParam(&cfg, sw.Param, sw.Min); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sw.Steps)
	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	for i := 0; i < sw.Steps; i++ {
		v := sw.Min + float64(i)*step
		setParam(&cfg, sw.Param, v)
		e := physics.Solve(p, cfg, 0)
		results = append(results, SweepResult{
			Value:   v,
			X:       e.X,
			Y:       e.Y,
			Speed:   e.Speed,
			Visible: physics.InBounds(p, e),
		})
	}
	return results, nil
}
