package storage

import (
	"strconv"

	"github.com/san-kum/crtsim/internal/crt"
)

// Sample is one recorded frame: the impact point and beam state.
type Sample struct {
	Tick       int64
	X, Y       float64
	VX, VY     float64
	Brightness float64
	Visible    bool
}

func (s Sample) record() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []string{
		strconv.FormatInt(s.Tick, 10),
		f(s.X), f(s.Y), f(s.VX), f(s.VY), f(s.Brightness),
		strconv.FormatBool(s.Visible),
	}
}

// Recorder collects one Sample per rendered frame. It satisfies
// session.Observer.
type Recorder struct {
	Samples []Sample
}

func (r *Recorder) OnFrame(tick int64, e crt.ElectronState, visible bool) {
	r.Samples = append(r.Samples, Sample{
		Tick:       tick,
		X:          e.X,
		Y:          e.Y,
		VX:         e.VX,
		VY:         e.VY,
		Brightness: e.Brightness,
		Visible:    visible,
	})
}

// Series splits samples into x and y columns.
func Series(samples []Sample) (xs, ys []float64) {
	xs = make([]float64, len(samples))
	ys = make([]float64, len(samples))
	for i, s := range samples {
		xs[i], ys[i] = s.X, s.Y
	}
	return xs, ys
}
