package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/trail"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation.Mode != crt.ModeManual {
		t.Errorf("expected manual mode, got %s", cfg.Simulation.Mode)
	}
	if cfg.Trail.Capacity != 3000 || cfg.Trail.MaxAge != 200 {
		t.Errorf("unexpected trail defaults %+v", cfg.Trail)
	}
	if cfg.Window.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crtsim.yaml")

	cfg := DefaultConfig()
	cfg.Simulation.Mode = crt.ModeLissajous
	cfg.Simulation.Lissajous.FreqY = 3
	cfg.Trail.Expiry = "lazy"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Simulation.Mode != crt.ModeLissajous || loaded.Simulation.Lissajous.FreqY != 3 {
		t.Errorf("simulation section not round-tripped: %+v", loaded.Simulation)
	}

	// a partial file keeps the defaults for everything it omits
	partial := filepath.Join(dir, "partial.yaml")
	os.WriteFile(partial, []byte("simulation:\n  mode: lissajous\n"), 0644)
	loaded, err = Load(partial)
	if err != nil {
		t.Fatalf("load partial: %v", err)
	}
	if loaded.Simulation.Voltages.Acceleration != 2000 {
		t.Errorf("expected default acceleration, got %f", loaded.Simulation.Voltages.Acceleration)
	}
	if loaded.Window.Width != DefaultWidth {
		t.Errorf("expected default width, got %d", loaded.Window.Width)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"mode":        "simulation:\n  mode: sweep\n",
		"persistence": "simulation:\n  display:\n    persistence: 1.5\n",
		"expiry":      "trail:\n  expiry: sometimes\n",
	}
	for name, body := range tests {
		path := filepath.Join(dir, name+".yaml")
		os.WriteFile(path, []byte(body), 0644)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewTrail(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trail = TrailConfig{Capacity: 10, MaxAge: 5, Expiry: "lazy"}
	tr, err := cfg.NewTrail()
	if err != nil {
		t.Fatal(err)
	}
	if tr.Capacity() != 10 || tr.MaxAge() != 5 || tr.Policy() != trail.ExpireLazy {
		t.Errorf("trail not built from config: cap %d age %d policy %s", tr.Capacity(), tr.MaxAge(), tr.Policy())
	}
}

func TestFigureConfiguration(t *testing.T) {
	base := crt.DefaultConfiguration()
	base.Lissajous.Amplitude = 250
	base.Lissajous.PhaseX = 30

	for _, name := range ListFigures() {
		cfg, err := FigureConfiguration(base, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		fig := Figures[name]
		if cfg.Mode != crt.ModeLissajous {
			t.Errorf("%s: expected lissajous mode", name)
		}
		if cfg.Lissajous.FreqX != fig.FreqX || cfg.Lissajous.FreqY != fig.FreqY || cfg.Lissajous.PhaseY != fig.PhaseY {
			t.Errorf("%s: unexpected lissajous %+v", name, cfg.Lissajous)
		}
		if cfg.Lissajous.PhaseX != 0 {
			t.Errorf("%s: phase x should reset to 0", name)
		}
		if cfg.Lissajous.Amplitude != 250 {
			t.Errorf("%s: amplitude should be kept", name)
		}
	}

	if base.Mode != crt.ModeManual {
		t.Error("base configuration was modified")
	}
}

func TestUnknownPresets(t *testing.T) {
	if _, err := FigureConfiguration(crt.DefaultConfiguration(), "spiral"); !errors.Is(err, crt.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := PersistencePreset("forever"); !errors.Is(err, crt.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPersistence(t *testing.T) {
	names := ListPersistence()
	want := []string{"fast", "medium", "slow", "infinite"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
	p, _ := PersistencePreset("slow")
	if p != 0.97 {
		t.Errorf("expected slow=0.97, got %f", p)
	}
}
