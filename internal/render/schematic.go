package render

import (
	"image/color"
	"math"
)

const (
	gunWidth        = 40.0
	gunHeight       = 30.0
	plateThickness  = 8.0
	plateSeparation = 40.0
	screenHeight    = 120.0

	// FieldLineThreshold is the plate voltage magnitude above which field
	// lines are drawn between the plates.
	FieldLineThreshold = 10.0
	fieldLines         = 5
)

// Schematic is the pixel layout of one tube view.
type Schematic struct {
	Scale   float64 // pixels per meter along the tube
	CenterY float64
	GunX    float64
	PlatesX float64
	PlatesW float64
	ScreenX float64
}

func (r *Renderer) Layout(w, h float64) Schematic {
	total := r.phys.TubeLength()
	scale := w * 0.8 / total
	offsetX := w * 0.1
	return Schematic{
		Scale:   scale,
		CenterY: h / 2,
		GunX:    offsetX,
		PlatesX: offsetX + r.phys.GunToPlates*scale,
		PlatesW: r.phys.PlateLength * scale,
		ScreenX: offsetX + total*scale,
	}
}

// DeflectionPixels converts a screen offset in meters into schematic pixels.
func (r *Renderer) DeflectionPixels(offset float64) float64 {
	return offset / r.phys.ScreenSize * screenHeight
}

// DrawSchematic draws a side or top view of the tube. voltage is the plate
// voltage for this axis, offset the impact position along it in meters.
func (r *Renderer) DrawSchematic(s Surface, voltage, offset, brightness float64) {
	w, h := s.Size()
	s.FillRectLinear(0, 0, w, h, LinearGradient{
		X0: 0, Y0: 0, X1: w, Y1: h,
		Stops: []GradientStop{
			{Offset: 0, Color: colorBackgroundTop},
			{Offset: 1, Color: colorBackgroundBottom},
		},
	})

	l := r.Layout(w, h)
	drawGun(s, l.GunX, l.CenterY)
	drawPlates(s, l.PlatesX, l.CenterY, l.PlatesW, voltage)
	drawScreenEdge(s, l.ScreenX, l.CenterY)
	r.drawBeam(s, l, offset, brightness)
}

func drawGun(s Surface, x, y float64) {
	s.FillRect(x, y-gunHeight/2, gunWidth, gunHeight, colorGunBody)
	s.FillRect(x+5, y-8, 8, 16, colorCathode)
	s.FillRect(x+35, y-5, 8, 10, colorAnode)
}

// PlateColors returns the fill of the upper and lower plate. The plate at
// positive potential is red, the other blue.
func PlateColors(voltage float64) (upper, lower color.NRGBA) {
	upper, lower = colorNegativePlate, colorNegativePlate
	if voltage > 0 {
		upper = colorPositivePlate
	}
	if voltage < 0 {
		lower = colorPositivePlate
	}
	return upper, lower
}

func drawPlates(s Surface, x, y, width, voltage float64) {
	upper, lower := PlateColors(voltage)
	s.FillRect(x, y-plateSeparation, width, plateThickness, upper)
	s.FillRect(x, y+plateSeparation-plateThickness, width, plateThickness, lower)

	if math.Abs(voltage) <= FieldLineThreshold {
		return
	}
	for i := 0; i < fieldLines; i++ {
		lx := x + width/fieldLines*float64(i) + width/(2*fieldLines)
		s.StrokePolyline([]Point{
			{X: lx, Y: y - plateSeparation + plateThickness},
			{X: lx, Y: y + plateSeparation - plateThickness},
		}, Stroke{Width: 1, Color: colorFieldLine, Dash: []float64{3, 3}})
	}
}

func drawScreenEdge(s Surface, x, y float64) {
	s.FillRect(x, y-screenHeight/2, 8, screenHeight, colorScreenFrame)
	s.FillRect(x-2, y-screenHeight/2+5, 3, screenHeight-10, colorScreenPhosphor)
}

func (r *Renderer) drawBeam(s Surface, l Schematic, offset, brightness float64) {
	defl := r.DeflectionPixels(offset)
	y := l.CenterY
	s.StrokePolyline([]Point{
		{X: l.GunX + gunWidth, Y: y},
		{X: l.PlatesX, Y: y},
		{X: l.PlatesX + l.PlatesW, Y: y - defl*0.3},
		{X: l.ScreenX, Y: y - defl},
	}, Stroke{Width: 2, Color: colorBeam, Glow: 5})
	s.FillCircle(l.ScreenX, y-defl, 4, impactColor(brightness))
}
