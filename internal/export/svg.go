package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/crtsim/internal/storage"
	"github.com/san-kum/crtsim/internal/trail"
)

const background = "#0a0a0a"

// screenToSVG maps a screen-plane offset in meters to SVG pixels, y up.
func screenToSVG(x, y, screen float64, size int) (float64, float64) {
	s := float64(size)
	return (x/screen + 0.5) * s, (0.5 - y/screen) * s
}

func header(sb *strings.Builder, size int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, size, size, size, size, background)
}

// TrailToSVG draws the live trail points as fading phosphor dots.
func TrailToSVG(tr *trail.Buffer, now int64, persistence, screen float64, size int) string {
	var sb strings.Builder
	header(&sb, size)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	scale := float64(size) / 400
	for _, p := range tr.Points() {
		alpha := tr.Alpha(p, now, persistence)
		if alpha <= 0 {
			continue
		}
		cx, cy := screenToSVG(p.X, p.Y, screen, size)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill-opacity="%.3f"/>`+"\n",
			cx, cy, trail.Radius(p)*scale, alpha)
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PathToSVG draws recorded impacts as one polyline over the fixed screen
// bounds. Off-screen samples break the path.
func PathToSVG(samples []storage.Sample, screen float64, size int, stroke string) string {
	var sb strings.Builder
	header(&sb, size)

	pen := false
	open := false
	for _, s := range samples {
		if !s.Visible {
			pen = false
			continue
		}
		x, y := screenToSVG(s.X, s.Y, screen, size)
		if !open {
			fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
			open = true
		}
		if pen {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			pen = true
		}
	}
	if open {
		sb.WriteString(`"/>` + "\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
