package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/crtsim/internal/analysis"
	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/physics"
	"github.com/san-kum/crtsim/internal/raster"
	"github.com/san-kum/crtsim/internal/session"
	"github.com/san-kum/crtsim/internal/storage"
)

// frameChunk is how many frames run between cancellation checks.
const frameChunk = 50

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	ViewWidth   int            `yaml:"view_width"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Overrides apply on top of the base
// configuration in the order mode, voltages, lissajous, figure, persistence.
type ScenarioStep struct {
	Name        string         `yaml:"name"`
	Mode        string         `yaml:"mode"`
	Voltages    *crt.Voltages  `yaml:"voltages"`
	Lissajous   *crt.Lissajous `yaml:"lissajous"`
	Figure      string         `yaml:"figure"`
	Persistence string         `yaml:"persistence"`
	Frames      int            `yaml:"frames"`
	Snapshot    string         `yaml:"snapshot"`
	SaveAs      string         `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %s has no steps", crt.ErrInvalidConfig, path)
	}
	return &scenario, nil
}

// Runner executes scenario steps against a base configuration.
type Runner struct {
	Base *config.Config
	// Store receives runs for steps with save_as; nil skips saving.
	Store *storage.Store
	// OutDir is where snapshots are written.
	OutDir string
	Log    *zap.Logger
}

type StepResult struct {
	Name     string
	RunID    string
	Frames   int
	Snapshot string
	Report   analysis.Report
}

// Configuration resolves the effective configuration of one step.
func (r *Runner) Configuration(step ScenarioStep) (crt.Configuration, error) {
	cfg := r.Base.Simulation
	if step.Mode != "" {
		m, err := crt.ParseMode(step.Mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = m
	}
	if step.Voltages != nil {
		cfg.Voltages = *step.Voltages
	}
	if step.Lissajous != nil {
		cfg.Lissajous = *step.Lissajous
	}
	if step.Figure != "" {
		var err error
		if cfg, err = config.FigureConfiguration(cfg, step.Figure); err != nil {
			return cfg, err
		}
	}
	if step.Persistence != "" {
		p, err := config.PersistencePreset(step.Persistence)
		if err != nil {
			return cfg, err
		}
		cfg.Display.Persistence = p
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order and stops at the first failure.
func (r *Runner) RunScenario(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	width := sc.ViewWidth
	if width <= 0 {
		width = r.Base.Render.ViewWidth
	}

	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		log.Info("running step",
			zap.String("scenario", sc.Name),
			zap.String("step", name),
			zap.Int("index", i+1),
			zap.Int("total", len(sc.Steps)))

		res, err := r.runStep(ctx, name, step, width, log)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runStep(ctx context.Context, name string, step ScenarioStep, width int, log *zap.Logger) (StepResult, error) {
	res := StepResult{Name: name}

	cfg, err := r.Configuration(step)
	if err != nil {
		return res, err
	}
	frames := step.Frames
	if frames <= 0 {
		frames = r.Base.Render.Frames
	}

	tr, err := r.Base.NewTrail()
	if err != nil {
		return res, err
	}
	sheet := raster.NewSheet(width)
	sess, err := session.New(sheet.Views(), cfg,
		session.WithLogger(log.Named(name)),
		session.WithTrail(tr),
	)
	if err != nil {
		return res, err
	}
	rec := &storage.Recorder{}
	sess.AddObserver(rec)
	sess.Start()

	for done := 0; done < frames; {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n, err := sess.RunFrames(min(frameChunk, frames-done))
		if err != nil {
			log.Warn("frames skipped", zap.String("step", name), zap.Error(err))
		}
		res.Frames += n
		done += min(frameChunk, frames-done)
	}

	res.Report = analysis.Analyze(rec.Samples, physics.TimeScale)

	if step.Snapshot != "" {
		path := step.Snapshot
		if r.OutDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(r.OutDir, path)
		}
		sheet.Annotate(name)
		if err := sheet.SavePNG(path); err != nil {
			return res, err
		}
		res.Snapshot = path
	}

	if step.SaveAs != "" && r.Store != nil {
		snap := sess.Snapshot()
		runID, err := r.Store.Save(storage.Run{
			Name:          step.SaveAs,
			Configuration: cfg,
			Physics:       sess.Physics(),
			TimeScale:     physics.TimeScale,
			TrailLen:      snap.TrailLen,
			Samples:       rec.Samples,
			Metrics:       res.Report.Metrics(),
		})
		if err != nil {
			return res, err
		}
		res.RunID = runID
		log.Info("run saved", zap.String("step", name), zap.String("run", runID))
	}
	return res, nil
}
