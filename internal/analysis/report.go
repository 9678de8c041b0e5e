package analysis

import (
	"math"

	"github.com/san-kum/crtsim/internal/storage"
)

type Report struct {
	Samples         int
	VisibleFraction float64
	MinX, MaxX      float64
	MinY, MaxY      float64
	FreqX, FreqY    float64
	CrossingsX      int
	CrossingsY      int
	// Ratio is FreqX/FreqY, zero when either axis is static.
	Ratio float64
}

// Analyze summarizes a run recorded at timeScale units of simulation time
// per tick.
func Analyze(samples []storage.Sample, timeScale float64) Report {
	r := Report{Samples: len(samples)}
	if len(samples) == 0 || timeScale <= 0 {
		return r
	}

	xs, ys := storage.Series(samples)
	r.MinX, r.MaxX = bounds(xs)
	r.MinY, r.MaxY = bounds(ys)

	visible := 0
	for _, s := range samples {
		if s.Visible {
			visible++
		}
	}
	r.VisibleFraction = float64(visible) / float64(len(samples))

	rate := 1 / timeScale
	r.FreqX = DominantFrequency(xs, rate)
	r.FreqY = DominantFrequency(ys, rate)
	r.CrossingsX = Crossings(xs)
	r.CrossingsY = Crossings(ys)
	if r.FreqX > 0 && r.FreqY > 0 {
		r.Ratio = r.FreqX / r.FreqY
	}
	return r
}

// Metrics flattens the report for run metadata.
func (r Report) Metrics() map[string]float64 {
	return map[string]float64{
		"visible_fraction": r.VisibleFraction,
		"freq_x":           r.FreqX,
		"freq_y":           r.FreqY,
		"ratio":            r.Ratio,
		"span_x":           r.MaxX - r.MinX,
		"span_y":           r.MaxY - r.MinY,
	}
}

func bounds(data []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
