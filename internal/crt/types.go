package crt

import (
	"fmt"
	"strings"
)

// PhysicsConstants describes the electron and the tube geometry. Lengths are
// in meters.
type PhysicsConstants struct {
	ElectronCharge  float64 `yaml:"electron_charge" json:"electron_charge"`
	ElectronMass    float64 `yaml:"electron_mass" json:"electron_mass"`
	ScreenSize      float64 `yaml:"screen_size" json:"screen_size"`
	PlateSeparation float64 `yaml:"plate_separation" json:"plate_separation"`
	PlateArea       float64 `yaml:"plate_area" json:"plate_area"`
	PlateLength     float64 `yaml:"plate_length" json:"plate_length"`
	GunToPlates     float64 `yaml:"gun_to_plates" json:"gun_to_plates"`
	PlatesToScreen  float64 `yaml:"plates_to_screen" json:"plates_to_screen"`
	Epsilon0        float64 `yaml:"epsilon0" json:"epsilon0"`
}

func DefaultPhysics() PhysicsConstants {
	return PhysicsConstants{
		ElectronCharge:  -1.602e-19,
		ElectronMass:    9.109e-31,
		ScreenSize:      0.30,
		PlateSeparation: 0.02,
		PlateArea:       4.0e-4,
		PlateLength:     0.05,
		GunToPlates:     0.10,
		PlatesToScreen:  0.20,
		Epsilon0:        8.854e-12,
	}
}

// TubeLength is the distance from the gun to the screen.
func (p PhysicsConstants) TubeLength() float64 {
	return p.GunToPlates + p.PlateLength + p.PlatesToScreen
}

// PlateCapacitance of one deflection plate pair, parallel-plate approximation.
func (p PhysicsConstants) PlateCapacitance() float64 {
	return p.Epsilon0 * p.PlateArea / p.PlateSeparation
}

type Mode int

const (
	ModeManual Mode = iota
	ModeLissajous
)

func (m Mode) String() string {
	switch m {
	case ModeManual:
		return "manual"
	case ModeLissajous:
		return "lissajous"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual", "":
		return ModeManual, nil
	case "lissajous":
		return ModeLissajous, nil
	default:
		return ModeManual, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeManual && m != ModeLissajous {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Voltages applied to the tube, in volts.
type Voltages struct {
	Acceleration float64 `yaml:"acceleration" json:"acceleration"`
	Vertical     float64 `yaml:"vertical" json:"vertical"`
	Horizontal   float64 `yaml:"horizontal" json:"horizontal"`
}

// Lissajous drives both deflection axes with sinusoids. Phases are degrees,
// frequencies are cycles per unit of simulation time.
type Lissajous struct {
	FreqX     float64 `yaml:"freq_x" json:"freq_x"`
	FreqY     float64 `yaml:"freq_y" json:"freq_y"`
	PhaseX    float64 `yaml:"phase_x" json:"phase_x"`
	PhaseY    float64 `yaml:"phase_y" json:"phase_y"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
}

type Display struct {
	Persistence float64 `yaml:"persistence" json:"persistence"`
	Brightness  float64 `yaml:"brightness" json:"brightness"`
}

// Configuration is the parameter snapshot read once per frame.
type Configuration struct {
	Mode      Mode      `yaml:"mode" json:"mode"`
	Voltages  Voltages  `yaml:"voltages" json:"voltages"`
	Lissajous Lissajous `yaml:"lissajous" json:"lissajous"`
	Display   Display   `yaml:"display" json:"display"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Mode: ModeManual,
		Voltages: Voltages{
			Acceleration: 2000,
		},
		Lissajous: Lissajous{
			FreqX:     1.0,
			FreqY:     1.0,
			Amplitude: 300,
		},
		Display: Display{
			Persistence: 0.95,
			Brightness:  1.0,
		},
	}
}

// Validate checks ranges that would otherwise leak into rendering. A zero
// acceleration voltage is accepted; the solver clamps it.
func (c Configuration) Validate() error {
	if c.Mode != ModeManual && c.Mode != ModeLissajous {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrUnknownMode, int(c.Mode))
	}
	if c.Display.Persistence < 0 || c.Display.Persistence > 1 {
		return fmt.Errorf("%w: persistence %.3f outside [0,1]", ErrInvalidConfig, c.Display.Persistence)
	}
	if c.Display.Brightness < 0 || c.Display.Brightness > 1 {
		return fmt.Errorf("%w: brightness %.3f outside [0,1]", ErrInvalidConfig, c.Display.Brightness)
	}
	return nil
}

// ElectronState is the result of one trajectory solve. Offsets are in meters
// on the screen plane, velocities in m/s at the plate exit.
type ElectronState struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	Speed       float64 `json:"speed"`
	Brightness  float64 `json:"brightness"`
	TransitTime float64 `json:"transit_time"`
}

// Clock counts frames. It only moves forward except on Reset.
type Clock struct {
	tick int64
}

func (c *Clock) Tick() int64 { return c.tick }
func (c *Clock) Advance()    { c.tick++ }
func (c *Clock) Reset()      { c.tick = 0 }
