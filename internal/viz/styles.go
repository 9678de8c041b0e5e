package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// styles are derived from a Theme whenever it changes.
type styles struct {
	panel     lipgloss.Style
	title     lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
	hint      lipgloss.Style
	errText   lipgloss.Style
	bright    lipgloss.Style
	dim       lipgloss.Style
	faint     lipgloss.Style
	sparkHigh lipgloss.Style
	sparkMid  lipgloss.Style
	sparkLow  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		running:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		recording: lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
		hint:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		errText:   lipgloss.NewStyle().Foreground(t.Error),
		bright:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		dim:       lipgloss.NewStyle().Foreground(t.Primary),
		faint:     lipgloss.NewStyle().Foreground(t.Secondary),
		sparkHigh: lipgloss.NewStyle().Foreground(t.Success),
		sparkMid:  lipgloss.NewStyle().Foreground(t.Warning),
		sparkLow:  lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// GradientText colors each rune along a gradient between two hex colors.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var result strings.Builder
	for i, hex := range gradientStops(startColor, endColor, len(runes)) {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		result.WriteString(style.Render(string(runes[i])))
	}
	return result.String()
}

// gradientStops returns n hex colors blended evenly from start to end.
// Unparseable endpoints are treated as white.
func gradientStops(start, end lipgloss.Color, n int) []string {
	from, to := parseColor(start), parseColor(end)
	stops := make([]string, n)
	for i := range stops {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		stops[i] = from.BlendRgb(to, t).Hex()
	}
	return stops
}

func parseColor(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

// SparklineChart renders the last width values as a sparkline.
func (s styles) SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(s.sparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(s.sparkMid.Render(c))
		default:
			result.WriteString(s.sparkLow.Render(c))
		}
	}
	return result.String()
}

func (s styles) Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return s.hint.Render(left + " ◆ " + right)
}
