package raster

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/physics"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/trail"
)

func TestNewIsBlack(t *testing.T) {
	c := New(20, 10)
	w, h := c.Size()
	if w != 20 || h != 10 {
		t.Fatalf("expected 20x10, got %gx%g", w, h)
	}
	r, g, b, a := c.Image().At(5, 5).RGBA()
	if r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("expected opaque black, got %d %d %d %d", r, g, b, a)
	}
}

func TestFillCircle(t *testing.T) {
	c := New(50, 50)
	c.FillCircle(25, 25, 10, color.NRGBA{G: 255, A: 255})
	_, g, _, _ := c.Image().At(25, 25).RGBA()
	if g>>8 != 255 {
		t.Errorf("expected green center, got g=%d", g>>8)
	}
	_, g, _, _ = c.Image().At(2, 2).RGBA()
	if g != 0 {
		t.Errorf("corner should stay black, got g=%d", g>>8)
	}
}

func TestScreenPersistenceFades(t *testing.T) {
	sheet := NewSheet(200)
	r, err := render.New(crt.DefaultPhysics(), sheet.Views())
	if err != nil {
		t.Fatal(err)
	}
	cfg := crt.DefaultConfiguration()
	cfg.Display.Persistence = 0.5
	e := physics.Solve(r.Physics(), cfg, 0)
	r.Frame(cfg, 0, e, trail.NewDefault())

	_, g0, _, _ := sheet.Screen.Image().At(100, 100).RGBA()
	if g0 == 0 {
		t.Fatal("impact should light the screen center")
	}

	// move the beam away and let the old spot fade
	cfg.Voltages.Vertical = 500
	e = physics.Solve(r.Physics(), cfg, 1)
	for i := 0; i < 5; i++ {
		r.DrawScreen(sheet.Screen, cfg, 1, e, nil)
	}
	_, g1, _, _ := sheet.Screen.Image().At(100, 100).RGBA()
	if g1 >= g0 {
		t.Errorf("old impact should fade: before %d, after %d", g0>>8, g1>>8)
	}
}

func TestCompositeAndSave(t *testing.T) {
	sheet := NewSheet(100)
	sheet.Screen.Label(2, 2, "tick 0", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img := sheet.Composite()
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Errorf("unexpected composite bounds %v", img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "screen.png")
	if err := sheet.Screen.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}

func TestSheetAnnotateAndSave(t *testing.T) {
	sheet := NewSheet(120)
	sheet.Annotate("circle")
	path := filepath.Join(t.TempDir(), "sheet.png")
	if err := sheet.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("sheet not written: %v", err)
	}
}
