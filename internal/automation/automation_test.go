package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/storage"
)

const scenarioYAML = `name: demo
description: a circle and a fixed spot
view_width: 120
steps:
  - name: circle
    figure: circle
    persistence: slow
    frames: 100
    snapshot: circle.png
    save_as: circle
  - mode: manual
    voltages:
      acceleration: 1000
      vertical: 50
      horizontal: -50
    frames: 10
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[1].Voltages == nil || sc.Steps[1].Voltages.Vertical != 50 {
		t.Errorf("voltages override not parsed: %+v", sc.Steps[1].Voltages)
	}
}

func TestLoadScenarioRejectsEmpty(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "name: empty\n"))
	if !errors.Is(err, crt.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStepConfiguration(t *testing.T) {
	r := &Runner{Base: config.DefaultConfig()}

	cfg, err := r.Configuration(ScenarioStep{Figure: "figure8", Persistence: "fast"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != crt.ModeLissajous || cfg.Lissajous.FreqY != config.Figures["figure8"].FreqY {
		t.Errorf("figure not applied: %+v", cfg)
	}
	if cfg.Display.Persistence != config.Persistence["fast"] {
		t.Errorf("persistence not applied: %f", cfg.Display.Persistence)
	}

	if _, err := r.Configuration(ScenarioStep{Figure: "spiral"}); !errors.Is(err, crt.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := r.Configuration(ScenarioStep{Mode: "vector"}); !errors.Is(err, crt.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()
	st := storage.New(filepath.Join(out, "runs"))
	r := &Runner{Base: config.DefaultConfig(), Store: st, OutDir: out}

	results, err := r.RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	circle := results[0]
	if circle.Frames != 100 {
		t.Errorf("expected 100 frames, got %d", circle.Frames)
	}
	if math.Abs(circle.Report.Ratio-1) > 1e-9 {
		t.Errorf("circle should have a 1:1 ratio, got %f", circle.Report.Ratio)
	}
	if _, err := os.Stat(circle.Snapshot); err != nil {
		t.Errorf("snapshot missing: %v", err)
	}
	meta, err := st.Load(circle.RunID)
	if err != nil {
		t.Fatalf("saved run not found: %v", err)
	}
	if meta.Frames != 100 || meta.Configuration.Mode != crt.ModeLissajous {
		t.Errorf("unexpected metadata %+v", meta)
	}

	spot := results[1]
	if spot.Name != "step2" || spot.RunID != "" {
		t.Errorf("unexpected second step %+v", spot)
	}
	if spot.Report.MinX != spot.Report.MaxX {
		t.Error("a manual spot should not move")
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Base: config.DefaultConfig()}
	results, err := r.RunScenario(ctx, sc)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRunSweep(t *testing.T) {
	p := crt.DefaultPhysics()
	base := crt.DefaultConfiguration()

	res, err := RunSweep(p, Sweep{Base: base, Param: "vertical", Min: -100, Max: 100, Steps: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res[1].Y != 0 {
		t.Errorf("zero plate voltage should not deflect, got %g", res[1].Y)
	}
	if math.Abs(res[0].Y+res[2].Y) > 1e-12 || res[0].Y == 0 {
		t.Errorf("deflection should be antisymmetric: %g %g", res[0].Y, res[2].Y)
	}

	base.Voltages.Vertical = 100
	res, err = RunSweep(p, Sweep{Base: base, Param: "acceleration", Min: 500, Max: 5000, Steps: 10})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(res); i++ {
		if math.Abs(res[i].Y) >= math.Abs(res[i-1].Y) {
			t.Fatalf("stiffer beam should deflect less: %g then %g", res[i-1].Y, res[i].Y)
		}
		if res[i].Speed <= res[i-1].Speed {
			t.Fatalf("speed should grow with acceleration voltage")
		}
	}
}

func TestRunSweepValidation(t *testing.T) {
	p := crt.DefaultPhysics()
	if _, err := RunSweep(p, Sweep{Param: "vertical", Steps: 1}); !errors.Is(err, crt.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for one step, got %v", err)
	}
	if _, err := RunSweep(p, Sweep{Param: "focus", Steps: 3}); !errors.Is(err, crt.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown param, got %v", err)
	}
}

func TestBundledScenarioResolves(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("..", "..", "scenarios", "figures.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	r := &Runner{Base: config.DefaultConfig()}
	for _, step := range sc.Steps {
		if _, err := r.Configuration(step); err != nil {
			t.Errorf("step %s: %v", step.Name, err)
		}
	}
}
