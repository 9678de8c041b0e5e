package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/crtsim/internal/export"
	"github.com/san-kum/crtsim/internal/storage"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := NewRootCmd(nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestOutFlagDefaults(t *testing.T) {
	root := NewRootCmd(nil)
	tests := []struct {
		command string
		want    string
	}{
		{"render", "crtsim.png"},
		{"export-svg", ""},
		{"export-json", ""},
		{"scenario", "."},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			sub, _, err := root.Find([]string{tt.command})
			if err != nil {
				t.Fatal(err)
			}
			got, err := sub.Flags().GetString("out")
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("--out defaults to %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderWritesDefaultPNG(t *testing.T) {
	chdir(t, t.TempDir())
	execute(t, "render", "--frames", "3", "--width", "120")

	if _, err := os.Stat("crtsim.png"); err != nil {
		t.Errorf("render without --out should write crtsim.png: %v", err)
	}
}

func TestExportDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	data := filepath.Join(".", "runs")
	execute(t, "record", "--data", data, "--name", "beam", "--frames", "20", "--width", "120")

	runs, err := storage.New(data).List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d (%v)", len(runs), err)
	}
	id := runs[0].ID

	out := execute(t, "export-json", id, "--data", data)
	var rd export.RunData
	if err := json.Unmarshal([]byte(out), &rd); err != nil {
		t.Fatalf("export-json without --out should print JSON: %v", err)
	}
	if rd.Meta.ID != id || len(rd.Ticks) != 20 {
		t.Errorf("unexpected export: id %s, %d ticks", rd.Meta.ID, len(rd.Ticks))
	}

	execute(t, "export-svg", id, "--data", data)
	if _, err := os.Stat(id + ".svg"); err != nil {
		t.Errorf("export-svg without --out should write %s.svg: %v", id, err)
	}
}

func TestScenarioOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	scenario := "name: one\nsteps:\n  - name: spot\n    frames: 5\n    snapshot: spot.png\n"
	if err := os.WriteFile("one.yaml", []byte(scenario), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir("shots", 0755); err != nil {
		t.Fatal(err)
	}

	execute(t, "scenario", "one.yaml", "--data", "runs", "--out", "shots")
	if _, err := os.Stat(filepath.Join("shots", "spot.png")); err != nil {
		t.Errorf("snapshot not written under --out: %v", err)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
