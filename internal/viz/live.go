package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/export"
	"github.com/san-kum/crtsim/internal/physics"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/session"
)

const (
	screenCols, screenRows = 40, 20
	tubeCols, tubeRows     = 40, 8

	screenThreshold = 0.15
	tubeThreshold   = 0.35

	// one Braille dot stands for four pixels of the full-size layout
	surfaceScale = 0.25

	historyCapacity = 120
	gifScale        = 3
	gifLimit        = 600

	voltageStep    = 10.0
	voltageStepBig = 50.0
	accelStep      = 100.0
)

// GIFPath is where a TUI recording is written.
var GIFPath = "crtsim.gif"

type TickMsg time.Time

// telemetry keeps the recent beam history for the graphs. It is shared by
// pointer so it survives Model copies.
type telemetry struct {
	x, y, brightness []float64
}

func (t *telemetry) OnFrame(_ int64, e crt.ElectronState, _ bool) {
	push := func(s []float64, v float64) []float64 {
		s = append(s, v)
		if len(s) > historyCapacity {
			s = s[1:]
		}
		return s
	}
	t.x = push(t.x, e.X*100)
	t.y = push(t.y, e.Y*100)
	t.brightness = push(t.brightness, e.Brightness)
}

func (t *telemetry) reset() {
	t.x, t.y, t.brightness = t.x[:0], t.y[:0], t.brightness[:0]
}

// Model is the bubbletea program state: a session drawing into three
// phosphor surfaces plus the panels around them.
type Model struct {
	sess    *session.Session
	lateral *Phosphor
	top     *Phosphor
	screen  *Phosphor
	tel     *telemetry
	gif     *export.GIFRecorder

	fps       int
	theme     Theme
	st        styles
	recording bool
	showHelp  bool
	message   string
	err       error
	log       *zap.Logger
}

// NewModel builds a started session over Braille surfaces.
func NewModel(cfg *config.Config, log *zap.Logger) (Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		lateral: NewPhosphor(tubeCols, tubeRows, tubeThreshold),
		top:     NewPhosphor(tubeCols, tubeRows, tubeThreshold),
		screen:  NewPhosphor(screenCols, screenRows, screenThreshold),
		tel:     &telemetry{},
		gif:     export.NewGIFRecorder(cfg.Render.GIFDelay, gifLimit),
		fps:     cfg.Window.FPS,
		theme:   GetTheme(cfg.Window.Theme),
		log:     log,
	}
	m.st = newStyles(m.theme)

	tr, err := cfg.NewTrail()
	if err != nil {
		return Model{}, err
	}
	views := render.Views{
		Lateral: render.Scale(m.lateral, surfaceScale),
		Top:     render.Scale(m.top, surfaceScale),
		Screen:  render.Scale(m.screen, surfaceScale),
	}
	sess, err := session.New(views, cfg.Simulation,
		session.WithLogger(log),
		session.WithTrail(tr),
	)
	if err != nil {
		return Model{}, err
	}
	sess.AddObserver(m.tel)
	sess.Start()
	m.sess = sess
	return m, nil
}

func (m Model) Session() *session.Session { return m.sess }

func (m Model) tick() tea.Cmd {
	fps := m.fps
	if fps <= 0 {
		fps = session.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.FocusMsg:
		m.sess.SetVisible(true)
	case tea.BlurMsg:
		m.sess.SetVisible(false)
	case TickMsg:
		drew, err := m.sess.Step()
		if err != nil {
			m.err = err
		}
		if drew && m.recording {
			m.gif.Add(m.screen.Image(gifScale))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.sess
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		if m.recording {
			m.finishRecording()
		}
		return m, tea.Quit
	case " ":
		s.TogglePause()
	case "m":
		next := crt.ModeLissajous
		if s.Configuration().Mode == crt.ModeLissajous {
			next = crt.ModeManual
		}
		if err := s.SwitchMode(next); err != nil {
			m.err = err
		}
		m.tel.reset()
	case "c":
		s.ClearTrail()
	case "x":
		s.ResetClock()
		m.tel.reset()
	case "r":
		s.ResetDefaults()
		m.tel.reset()
	case "backspace":
		s.Restart()
	case "t":
		m.theme = NextTheme(m.theme)
		m.st = newStyles(m.theme)
		m.message = "theme " + m.theme.Name
	case "s":
		if m.recording {
			m.finishRecording()
		} else {
			m.recording = true
			m.gif.Reset()
			m.message = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	case "up", "shift+up":
		s.Nudge(step(key), 0, 0)
	case "down", "shift+down":
		s.Nudge(-step(key), 0, 0)
	case "right", "shift+right":
		s.Nudge(0, step(key), 0)
	case "left", "shift+left":
		s.Nudge(0, -step(key), 0)
	case "+", "=":
		s.Nudge(0, 0, accelStep)
	case "-", "_":
		s.Nudge(0, 0, -accelStep)
	case "1", "2", "3", "4", "5", "6":
		name := config.FigureOrder[key[0]-'1']
		if err := s.ApplyFigure(name); err != nil {
			m.err = err
		} else {
			m.tel.reset()
			m.message = "figure " + name
		}
	case "f", "g", "h", "i":
		name := map[string]string{"f": "fast", "g": "medium", "h": "slow", "i": "infinite"}[key]
		if err := s.SetPersistencePreset(name); err != nil {
			m.err = err
		} else {
			m.message = "persistence " + name
		}
	}
	return m, nil
}

func step(key string) float64 {
	if strings.HasPrefix(key, "shift+") {
		return voltageStepBig
	}
	return voltageStep
}

func (m *Model) finishRecording() {
	m.recording = false
	if err := m.gif.Save(GIFPath); err != nil {
		if !errors.Is(err, export.ErrNoFrames) {
			m.err = err
		}
		m.log.Warn("gif not saved", zap.Error(err))
		return
	}
	m.message = fmt.Sprintf("saved %d frames to %s", m.gif.Len(), GIFPath)
	m.log.Info("gif saved", zap.String("path", GIFPath), zap.Int("frames", m.gif.Len()))
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}
	snap := m.sess.Snapshot()

	screen := m.st.panel.Render(m.st.title.Render("SCREEN") + "\n" + m.phosphorView(m.screen))
	lateral := m.st.panel.Render(m.st.title.Render("LATERAL") + "  vertical deflection\n" + m.phosphorView(m.lateral))
	top := m.st.panel.Render(m.st.title.Render("TOP") + "  horizontal deflection\n" + m.phosphorView(m.top))
	tubes := lipgloss.JoinVertical(lipgloss.Left, lateral, top)
	body := lipgloss.JoinHorizontal(lipgloss.Top, screen, tubes, m.statsView(snap))

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(snap), body, m.footerView())
}

func (m Model) headerView(snap session.Snapshot) string {
	title := GradientText("CRTSIM", m.theme.Primary, m.theme.Accent)
	var status string
	switch snap.State {
	case session.Running:
		status = m.st.running.Render("RUNNING")
	case session.Paused:
		status = m.st.paused.Render("PAUSED")
	default:
		status = m.st.hint.Render("STOPPED")
	}
	line := fmt.Sprintf("%s  %s  %s", title, m.st.value.Render(":: "+snap.Mode.String()), status)
	if m.recording {
		line += "  " + m.st.recording.Render(fmt.Sprintf("● REC %d", m.gif.Len()))
	}
	return m.st.header.Render(line)
}

func (m Model) statsView(snap session.Snapshot) string {
	cfg := snap.Configuration
	vh, vv := physics.PlateVoltages(cfg, snap.Tick)

	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(m.st.label.Render(label) + m.st.value.Render(value) + "\n")
	}
	row("Accel", fmt.Sprintf("%.0f V", cfg.Voltages.Acceleration))
	row("Vertical", fmt.Sprintf("%.1f V", vv))
	row("Horizontal", fmt.Sprintf("%.1f V", vh))
	row("Persistence", fmt.Sprintf("%.3f", cfg.Display.Persistence))
	if cfg.Mode == crt.ModeLissajous {
		l := cfg.Lissajous
		row("Freq", fmt.Sprintf("%.1f : %.1f", l.FreqX, l.FreqY))
		row("Phase", fmt.Sprintf("%.0f° / %.0f°", l.PhaseX, l.PhaseY))
	}
	row("Tick", fmt.Sprintf("%d", snap.Tick))
	row("Trail", fmt.Sprintf("%d pts", snap.TrailLen))
	row("FPS", fmt.Sprintf("%.0f", snap.Stats.FPS))

	pos := fmt.Sprintf("%.2f, %.2f cm", snap.Electron.X*100, snap.Electron.Y*100)
	if !snap.Visible {
		pos = m.st.errText.Render(pos + " off")
	}
	row("Impact", pos)

	s.WriteString("\n" + m.st.Separator(36) + "\n")
	if len(m.tel.x) > 1 {
		graph := asciigraph.PlotMany([][]float64{m.tel.x, m.tel.y},
			asciigraph.Height(6),
			asciigraph.Width(32),
			asciigraph.Precision(1),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Cyan),
			asciigraph.Caption("deflection x/y (cm)"),
		)
		s.WriteString(graph + "\n")
	}
	s.WriteString(m.st.label.Render("Brightness") + m.st.SparklineChart(m.tel.brightness, 24) + "\n")

	if m.message != "" {
		s.WriteString("\n" + m.st.hint.Render(m.message) + "\n")
	}
	if m.err != nil {
		s.WriteString(m.st.errText.Render(m.err.Error()) + "\n")
	}
	return m.st.panel.Render(s.String())
}

func (m Model) footerView() string {
	return m.st.hint.Render("SPACE pause  M mode  1-6 figures  F/G/H/I persistence  ←↑↓→ deflect  +/- accel  S record  ? help  Q quit")
}

func (m Model) helpView() string {
	lines := []string{
		"Space      pause / resume",
		"M          switch manual / lissajous",
		"1-6        figure presets",
		"F G H I    persistence fast / medium / slow / infinite",
		"Arrows     deflection voltage (shift for x5)",
		"+ / -      acceleration voltage",
		"C          clear trail",
		"X          reset clock",
		"R          reset to defaults",
		"Backspace  restart",
		"S          start / stop GIF recording",
		"T          cycle themes",
		"?          toggle this help",
		"Q          quit",
	}
	return m.st.panel.Render(m.st.title.Render("KEYBOARD SHORTCUTS") + "\n\n" + strings.Join(lines, "\n"))
}

// phosphorView resolves a surface and colors each cell by its brightest dot.
func (m Model) phosphorView(p *Phosphor) string {
	c := p.Resolve()
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		level := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			switch level {
			case 2:
				b.WriteString(m.st.bright.Render(run.String()))
			case 1:
				b.WriteString(m.st.dim.Render(run.String()))
			default:
				b.WriteString(m.st.faint.Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < c.Width; col++ {
			l := lumLevel(p.CellLuminance(row, col))
			if l != level {
				flush()
				level = l
			}
			run.WriteRune(c.Grid[row][col])
		}
		flush()
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func lumLevel(l float64) int {
	switch {
	case l > 0.6:
		return 2
	case l > 0.3:
		return 1
	default:
		return 0
	}
}

// Run starts the interactive terminal view and blocks until it quits.
func Run(cfg *config.Config, log *zap.Logger) error {
	m, err := NewModel(cfg, log)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
