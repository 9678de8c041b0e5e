package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/physics"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/session"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(46, 204, 113, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColFrame   = rl.NewColor(30, 30, 30, 255)
)

const (
	margin         = 20
	hudHeight      = 110
	telemetryLen   = 200
	voltageStep    = 10.0
	voltageStepBig = 50.0
	accelStep      = 100.0
)

var fontPaths = []string{
	"/usr/share/fonts/liberation/LiberationMono-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
}

type App struct {
	Session *session.Session
	Font    rl.Font

	target  *target
	lateral *Panel
	top     *Panel
	screen  *Panel

	width, height int
	lateralPos    rl.Vector2
	topPos        rl.Vector2
	screenPos     rl.Vector2

	// deflection history in cm, newest last
	Telemetry [][2]float64
	lastErr   error
	log       *zap.Logger
}

func initWindow(w config.WindowConfig) {
	rl.InitWindow(int32(w.Width), int32(w.Height), "crtsim")
	rl.SetTargetFPS(int32(w.FPS))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	for _, path := range fontPaths {
		if !rl.FileExists(path) {
			continue
		}
		font := rl.LoadFontEx(path, 32, nil, 0)
		rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
		return font
	}
	return rl.GetFontDefault()
}

// NewApp lays out the three panels and builds a session drawing into them.
// The window must already be open.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		Font:   loadFont(),
		target: &target{},
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		log:    log,
	}

	side := min(a.width/2-2*margin, a.height-hudHeight-2*margin)
	schematicW := a.width - side - 3*margin
	schematicH := (side - margin) / 2

	a.lateral = newPanel(a.target, schematicW, schematicH)
	a.top = newPanel(a.target, schematicW, schematicH)
	a.screen = newPanel(a.target, side, side)
	a.lateralPos = rl.NewVector2(margin, margin)
	a.topPos = rl.NewVector2(margin, float32(margin*2+schematicH))
	a.screenPos = rl.NewVector2(float32(margin*2+schematicW), margin)

	tr, err := cfg.NewTrail()
	if err != nil {
		return nil, err
	}
	sess, err := session.New(
		render.Views{Lateral: a.lateral, Top: a.top, Screen: a.screen},
		cfg.Simulation,
		session.WithLogger(log),
		session.WithTrail(tr),
	)
	if err != nil {
		return nil, err
	}
	sess.AddObserver(a)
	a.Session = sess
	a.log.Info("gui ready",
		zap.Int("width", a.width), zap.Int("height", a.height),
		zap.Int("screen", side))
	return a, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, log *zap.Logger) error {
	initWindow(cfg.Window)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Session.Start()
	app.RunLoop()
	return nil
}

func (a *App) Close() {
	a.lateral.unload()
	a.top.unload()
	a.screen.unload()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

// OnFrame records the deflection history for the telemetry strip.
func (a *App) OnFrame(tick int64, e crt.ElectronState, visible bool) {
	a.Telemetry = append(a.Telemetry, [2]float64{e.X * 100, e.Y * 100})
	if len(a.Telemetry) > telemetryLen {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Update() {
	a.Session.SetVisible(!rl.IsWindowMinimized())
	a.handleKeys()
	a.handleMouse()

	if _, err := a.Session.Step(); err != nil {
		a.lastErr = err
	}
	a.target.release()
}

func (a *App) handleKeys() {
	s := a.Session

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		s.TogglePause()
	case rl.IsKeyPressed(rl.KeyC):
		s.ClearTrail()
	case rl.IsKeyPressed(rl.KeyT):
		s.ResetClock()
	case rl.IsKeyPressed(rl.KeyR):
		s.ResetDefaults()
	case rl.IsKeyPressed(rl.KeyBackspace):
		s.Restart()
	case rl.IsKeyPressed(rl.KeyM):
		next := crt.ModeLissajous
		if s.Configuration().Mode == crt.ModeLissajous {
			next = crt.ModeManual
		}
		s.SwitchMode(next)
	}

	figureKeys := []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}
	for i, k := range figureKeys {
		if rl.IsKeyPressed(k) && i < len(config.FigureOrder) {
			s.ApplyFigure(config.FigureOrder[i])
		}
	}

	persistenceKeys := map[int32]string{rl.KeyF: "fast", rl.KeyG: "medium", rl.KeyH: "slow", rl.KeyI: "infinite"}
	for k, name := range persistenceKeys {
		if rl.IsKeyPressed(k) {
			s.SetPersistencePreset(name)
		}
	}

	a.adjustVoltages()
}

func (a *App) adjustVoltages() {
	step := voltageStep
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = voltageStepBig
	}

	s := a.Session
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		s.Nudge(step, 0, 0)
	case rl.IsKeyPressed(rl.KeyDown):
		s.Nudge(-step, 0, 0)
	case rl.IsKeyPressed(rl.KeyRight):
		s.Nudge(0, step, 0)
	case rl.IsKeyPressed(rl.KeyLeft):
		s.Nudge(0, -step, 0)
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		s.Nudge(0, 0, accelStep)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		s.Nudge(0, 0, -accelStep)
	}
}

// handleMouse aims the beam at a left click on the screen panel.
func (a *App) handleMouse() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	m := rl.GetMousePosition()
	w, h := a.screen.Size()
	px, py := float64(m.X-a.screenPos.X), float64(m.Y-a.screenPos.Y)
	if px < 0 || py < 0 || px > w || py > h {
		return
	}
	vp := render.Viewport{W: w, H: h, ScreenSize: a.Session.Physics().ScreenSize}
	a.Session.SetElectronPosition(vp.FromPixel(px, py))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.lateral.blit(a.lateralPos.X, a.lateralPos.Y)
	a.top.blit(a.topPos.X, a.topPos.Y)
	a.screen.blit(a.screenPos.X, a.screenPos.Y)
	a.drawFrames()
	a.DrawHUD()
	a.DrawTelemetry()

	rl.EndDrawing()
}

func (a *App) drawFrames() {
	frame := func(pos rl.Vector2, p *Panel, label string) {
		rl.DrawRectangleLinesEx(rl.NewRectangle(pos.X-1, pos.Y-1, float32(p.w)+2, float32(p.h)+2), 1, ColFrame)
		a.drawText(label, int(pos.X)+6, int(pos.Y)+4, 14, ColText)
	}
	frame(a.lateralPos, a.lateral, "LATERAL  (vertical deflection)")
	frame(a.topPos, a.top, "TOP  (horizontal deflection)")
	frame(a.screenPos, a.screen, "SCREEN")
}

func (a *App) DrawHUD() {
	snap := a.Session.Snapshot()
	cfg := snap.Configuration
	y := a.height - hudHeight + margin/2

	a.drawText("crtsim", margin, y, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", snap.Mode), 110, y+4, 16, ColText)

	status, col := "RUNNING", ColSelect
	if snap.State == session.Paused {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, a.width-120, y, 16, col)

	vh, vv := physics.PlateVoltages(cfg, snap.Tick)
	a.drawText(fmt.Sprintf("Va %6.0f V   Vv %7.1f V   Vh %7.1f V   persistence %.3f",
		cfg.Voltages.Acceleration, vv, vh, cfg.Display.Persistence), margin, y+32, 14, ColText)

	pos := fmt.Sprintf("x %6.2f cm   y %6.2f cm   t %d", snap.Electron.X*100, snap.Electron.Y*100, snap.Tick)
	if !snap.Visible {
		pos += "   OFF SCREEN"
	}
	a.drawText(pos, margin, y+52, 14, ColAccent)

	a.drawText("[SPACE] PAUSE [M] MODE [C] CLEAR [R] RESET [1-6] FIGURES [F/G/H/I] PERSISTENCE [ARROWS] DEFLECT [+/-] ACCEL [Q] QUIT",
		margin, a.height-24, 12, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), a.width-120, y+32, 14, ColTextDim)

	if a.lastErr != nil {
		a.drawText(a.lastErr.Error(), a.width-420, y+52, 12, rl.Red)
	}
}

// DrawTelemetry plots the recent deflection history under the top view.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	rectX := float32(a.width/2 - 100)
	rectY := float32(a.height - hudHeight + margin)
	width, height := float32(200), float32(50)
	half := float32(a.Session.Physics().ScreenSize * 100 / 2)

	for axis, col := range []rl.Color{ColAccent, ColText} {
		points := make([]rl.Vector2, len(a.Telemetry))
		for i, d := range a.Telemetry {
			px := rectX + float32(i)/float32(telemetryLen)*width
			py := rectY + height/2 - float32(d[axis])/half*height/2
			points[i] = rl.NewVector2(px, py)
		}
		rl.DrawLineStrip(points, col)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
