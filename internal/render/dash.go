package render

import "math"

// DashSegments splits a polyline into the "on" pieces of a dash pattern.
// An empty pattern yields the polyline's own segments. The pattern phase
// carries over vertices.
func DashSegments(pts []Point, dash []float64) [][2]Point {
	if len(pts) < 2 {
		return nil
	}
	var out [][2]Point
	if !validDash(dash) {
		for i := 1; i < len(pts); i++ {
			out = append(out, [2]Point{pts[i-1], pts[i]})
		}
		return out
	}

	idx, left, on := 0, dash[0], true
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.0
		for pos < segLen {
			step := math.Min(left, segLen-pos)
			if on {
				out = append(out, [2]Point{lerpPoint(a, b, pos/segLen), lerpPoint(a, b, (pos+step)/segLen)})
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(dash)
				left = dash[idx]
				on = !on
			}
		}
	}
	return out
}

func validDash(dash []float64) bool {
	if len(dash) == 0 {
		return false
	}
	total := 0.0
	for _, d := range dash {
		if d < 0 {
			return false
		}
		total += d
	}
	return total > 0
}

func lerpPoint(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
