package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/crtsim/internal/crt"
)

// Figure is a named Lissajous frequency ratio and Y phase in degrees.
type Figure struct {
	FreqX, FreqY float64
	PhaseY       float64
}

var Figures = map[string]Figure{
	"circle":     {FreqX: 1, FreqY: 1, PhaseY: 90},
	"ellipse":    {FreqX: 1, FreqY: 1, PhaseY: 45},
	"figure8":    {FreqX: 1, FreqY: 2, PhaseY: 0},
	"cloverleaf": {FreqX: 2, FreqY: 3, PhaseY: 0},
	"line45":     {FreqX: 1, FreqY: 1, PhaseY: 0},
	"line135":    {FreqX: 1, FreqY: 1, PhaseY: 180},
}

// FigureOrder is the keyboard order (1-6) of the figure presets.
var FigureOrder = []string{"circle", "ellipse", "figure8", "cloverleaf", "line45", "line135"}

var Persistence = map[string]float64{
	"fast":     0.70,
	"medium":   0.90,
	"slow":     0.97,
	"infinite": 0.995,
}

// FigureConfiguration switches base to Lissajous mode with the named figure.
// Amplitude, voltages and display settings are kept.
func FigureConfiguration(base crt.Configuration, name string) (crt.Configuration, error) {
	fig, ok := Figures[name]
	if !ok {
		return base, fmt.Errorf("%w: figure %q", crt.ErrUnknownPreset, name)
	}
	cfg := base
	cfg.Mode = crt.ModeLissajous
	cfg.Lissajous.FreqX = fig.FreqX
	cfg.Lissajous.FreqY = fig.FreqY
	cfg.Lissajous.PhaseX = 0
	cfg.Lissajous.PhaseY = fig.PhaseY
	return cfg, nil
}

func PersistencePreset(name string) (float64, error) {
	p, ok := Persistence[name]
	if !ok {
		return 0, fmt.Errorf("%w: persistence %q", crt.ErrUnknownPreset, name)
	}
	return p, nil
}

func ListFigures() []string {
	return append([]string(nil), FigureOrder...)
}

// ListPersistence returns the persistence preset names, shortest afterglow
// first.
func ListPersistence() []string {
	names := make([]string, 0, len(Persistence))
	for name := range Persistence {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return Persistence[names[i]] < Persistence[names[j]] })
	return names
}
