package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type Point struct {
	X, Y float64
}

type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []GradientStop
}

// RadialGradient runs from the center (offset 0) to Radius (offset 1).
type RadialGradient struct {
	CX, CY, Radius float64
	Stops          []GradientStop
}

type Stroke struct {
	Width float64
	Color color.NRGBA
	Dash  []float64
	Glow  float64 // blur radius, zero for none
}

// Surface is a 2D drawing target in device pixels, origin top-left, y down.
// Colors are non-premultiplied and alpha-blended over existing content.
type Surface interface {
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c color.NRGBA)
	FillRectLinear(x, y, w, h float64, g LinearGradient)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	FillCircleRadial(g RadialGradient)
	StrokePolyline(pts []Point, s Stroke)
}

// RGBA builds a color from 8-bit channels and a [0,1] alpha.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	if math.IsNaN(a) || a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}

// Hex parses "#rrggbb" or "#rgb". Malformed input yields opaque black.
func Hex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Lerp interpolates between two colors, alpha included.
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// ColorAt samples a stop list at offset t in [0,1].
func ColorAt(stops []GradientStop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			prev := stops[i-1]
			span := stops[i].Offset - prev.Offset
			if span <= 0 {
				return stops[i].Color
			}
			return Lerp(prev.Color, stops[i].Color, (t-prev.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}
