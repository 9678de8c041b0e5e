package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/physics"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/trail"
)

const DefaultFPS = 60

// Observer is notified after every rendered frame. visible reports whether
// the impact landed on the screen.
type Observer interface {
	OnFrame(tick int64, e crt.ElectronState, visible bool)
}

type ObserverFunc func(tick int64, e crt.ElectronState, visible bool)

func (f ObserverFunc) OnFrame(tick int64, e crt.ElectronState, visible bool) { f(tick, e, visible) }

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithTrail(tr *trail.Buffer) Option {
	return func(s *Session) {
		if tr != nil {
			s.trail = tr
		}
	}
}

func WithPhysics(p crt.PhysicsConstants) Option {
	return func(s *Session) { s.phys = p }
}

// WithNow replaces the wall clock used for frame rate statistics.
func WithNow(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

type Session struct {
	mu    sync.Mutex
	sched scheduler
	wake  chan struct{}

	phys      crt.PhysicsConstants
	cfg       crt.Configuration
	clock     crt.Clock
	trail     *trail.Buffer
	renderer  *render.Renderer
	observers []Observer

	log   *zap.Logger
	now   func() time.Time
	fps   fpsCounter
	stats Stats

	last        crt.ElectronState
	lastVisible bool
}

// New builds a stopped session. Every view must be non-nil.
func New(views render.Views, cfg crt.Configuration, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		wake: make(chan struct{}, 1),
		phys: crt.DefaultPhysics(),
		cfg:  cfg,
		log:  zap.NewNop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.trail == nil {
		s.trail = trail.NewDefault()
	}

	r, err := render.New(s.phys, views)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.renderer = r
	return s, nil
}

func (s *Session) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Session) Physics() crt.PhysicsConstants { return s.phys }

func (s *Session) Configuration() crt.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfiguration replaces the configuration. A mode change clears the trail
// and the screen.
func (s *Session) SetConfiguration(cfg crt.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	modeChanged := cfg.Mode != s.cfg.Mode
	s.cfg = cfg
	if modeChanged {
		s.log.Info("mode switched", zap.Stringer("mode", cfg.Mode))
		s.clearLocked()
	}
	return nil
}

func (s *Session) SwitchMode(m crt.Mode) error {
	if m != crt.ModeManual && m != crt.ModeLissajous {
		return fmt.Errorf("%w: %d", crt.ErrUnknownMode, int(m))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Mode = m
	s.log.Info("mode switched", zap.Stringer("mode", m))
	s.clearLocked()
	return nil
}

// ClearTrail empties the trail and paints the screen black. The clock keeps
// running.
func (s *Session) ClearTrail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// ResetClock rewinds the tick to zero. The trail is cleared too, since its
// timestamps would otherwise lie in the future.
func (s *Session) ResetClock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Reset()
	s.clearLocked()
}

// ResetDefaults restores default voltages, Lissajous parameters and display
// settings. The mode is kept.
func (s *Session) ResetDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.cfg.Mode
	s.cfg = crt.DefaultConfiguration()
	s.cfg.Mode = mode
	s.log.Info("configuration reset to defaults")
	s.clearLocked()
}

// ApplyFigure switches to Lissajous mode with a named figure preset.
func (s *Session) ApplyFigure(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, err := config.FigureConfiguration(s.cfg, name)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.log.Info("figure applied", zap.String("figure", name))
	s.clearLocked()
	return nil
}

func (s *Session) SetPersistencePreset(name string) error {
	p, err := config.PersistencePreset(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Display.Persistence = p
	return nil
}

// SetElectronPosition sets the manual deflection voltages that land the beam
// at screen offset (x, y) meters. The mode is left unchanged.
func (s *Session) SetElectronPosition(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vv, vh := physics.DeflectionVoltages(s.phys, s.cfg.Voltages.Acceleration, x, y)
	s.cfg.Voltages.Vertical = vv
	s.cfg.Voltages.Horizontal = vh
	s.log.Debug("electron positioned",
		zap.Float64("x", x), zap.Float64("y", y),
		zap.Float64("vertical", vv), zap.Float64("horizontal", vh))
}

// Nudge shifts the manual voltages by the given deltas, clamped to the
// control ranges.
func (s *Session) Nudge(vertical, horizontal, acceleration float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := &s.cfg.Voltages
	v.Vertical = config.Clamp(v.Vertical+vertical, -config.MaxDeflection, config.MaxDeflection)
	v.Horizontal = config.Clamp(v.Horizontal+horizontal, -config.MaxDeflection, config.MaxDeflection)
	v.Acceleration = config.Clamp(v.Acceleration+acceleration, config.MinAcceleration, config.MaxAcceleration)
}

func (s *Session) clearLocked() {
	s.trail.Clear()
	s.renderer.ClearScreen()
}

// Step runs one scheduled frame. The clock advances only while running; a
// paused session redraws the frozen tick. It reports whether a frame was
// attempted.
func (s *Session) Step() (bool, error) {
	s.mu.Lock()
	st := s.sched.state()
	if st == Stopped {
		s.mu.Unlock()
		return false, nil
	}
	if st == Running {
		s.clock.Advance()
	}
	s.mu.Unlock()
	return true, s.RenderFrame()
}

// RenderFrame solves and draws the current tick into every view and feeds the
// trail. A panic while drawing is returned as a *crt.FrameError.
func (s *Session) RenderFrame() error {
	s.mu.Lock()
	tick, e, visible, err := s.renderLocked()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	for _, o := range observers {
		o.OnFrame(tick, e, visible)
	}
	return nil
}

func (s *Session) renderLocked() (tick int64, e crt.ElectronState, visible bool, err error) {
	tick = s.clock.Tick()
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}
			err = &crt.FrameError{Tick: tick, Cause: cause}
			s.stats.Skipped++
			s.log.Error("frame skipped", zap.Int64("tick", tick), zap.Error(cause))
		}
	}()

	cfg := s.cfg
	e = physics.Solve(s.phys, cfg, tick)
	visible = physics.InBounds(s.phys, e)
	s.renderer.Frame(cfg, tick, e, s.trail)

	s.last, s.lastVisible = e, visible
	s.stats.Frames++
	s.fps.frame(s.now())
	return tick, e, visible, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.state()
}

func (s *Session) Start() {
	s.transition("start", func(sc *scheduler) { sc.started = true })
}

// Stop halts scheduling and forgets any pause.
func (s *Session) Stop() {
	s.transition("stop", func(sc *scheduler) {
		sc.started = false
		sc.paused = false
	})
}

func (s *Session) Pause() {
	s.transition("pause", func(sc *scheduler) { sc.paused = true })
}

func (s *Session) Resume() {
	s.transition("resume", func(sc *scheduler) { sc.paused = false })
}

func (s *Session) TogglePause() {
	s.transition("toggle pause", func(sc *scheduler) {
		sc.paused = !sc.paused
		if !sc.paused {
			sc.started = true
		}
	})
}

// SetVisible stops scheduling while the display is hidden. On becoming
// visible again the session returns to Running, or to Paused when the user
// had paused it.
func (s *Session) SetVisible(visible bool) {
	s.transition("visibility", func(sc *scheduler) { sc.hidden = !visible })
}

// Restart stops the loop, empties the trail, blanks all three views and
// starts again from the current tick.
func (s *Session) Restart() {
	s.mu.Lock()
	s.sched.started = false
	s.sched.paused = false
	s.trail.Clear()
	s.renderer.ClearAll()
	s.fps.reset()
	s.mu.Unlock()
	s.Start()
}

func (s *Session) transition(name string, apply func(*scheduler)) {
	s.mu.Lock()
	from := s.sched.state()
	apply(&s.sched)
	to := s.sched.state()
	s.mu.Unlock()

	if from != to {
		s.log.Debug("scheduler transition",
			zap.String("event", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to))
	}
	if to != Stopped {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

// Run drives the session at fps frames per second until ctx is done. While
// stopped it blocks without spinning.
func (s *Session) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		if s.State() == Stopped {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.wake:
				continue
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Step(); err != nil {
				// already logged and counted by renderLocked
				s.log.Debug("run loop continues after fault", zap.Error(err))
			}
		}
	}
}

// RunFrames runs n scheduled steps back to back. It returns the number of
// frames drawn and the joined frame faults, if any.
func (s *Session) RunFrames(n int) (int, error) {
	var errs []error
	drawn := 0
	for i := 0; i < n; i++ {
		ran, err := s.Step()
		if !ran {
			break
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		drawn++
	}
	return drawn, errors.Join(errs...)
}

type Snapshot struct {
	Mode          crt.Mode
	Tick          int64
	State         State
	Visible       bool
	Electron      crt.ElectronState
	TrailLen      int
	Stats         Stats
	Configuration crt.Configuration
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	stats.FPS = s.fps.fps
	return Snapshot{
		Mode:          s.cfg.Mode,
		Tick:          s.clock.Tick(),
		State:         s.sched.state(),
		Visible:       s.lastVisible,
		Electron:      s.last,
		TrailLen:      s.trail.Len(),
		Stats:         stats,
		Configuration: s.cfg,
	}
}
