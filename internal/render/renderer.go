package render

import (
	"fmt"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/physics"
	"github.com/san-kum/crtsim/internal/trail"
)

// Views holds the three drawing targets. All must be non-nil.
type Views struct {
	Lateral Surface
	Top     Surface
	Screen  Surface
}

type Renderer struct {
	phys  crt.PhysicsConstants
	views Views
}

func New(p crt.PhysicsConstants, v Views) (*Renderer, error) {
	switch {
	case v.Lateral == nil:
		return nil, fmt.Errorf("%w: lateral view", crt.ErrMissingSurface)
	case v.Top == nil:
		return nil, fmt.Errorf("%w: top view", crt.ErrMissingSurface)
	case v.Screen == nil:
		return nil, fmt.Errorf("%w: screen view", crt.ErrMissingSurface)
	}
	return &Renderer{phys: p, views: v}, nil
}

func (r *Renderer) Views() Views                  { return r.views }
func (r *Renderer) Physics() crt.PhysicsConstants { return r.phys }

// Frame draws one frame into all three views. In Lissajous mode an on-screen
// impact is appended to tr, at most once per tick.
func (r *Renderer) Frame(cfg crt.Configuration, tick int64, e crt.ElectronState, tr *trail.Buffer) {
	vh, vv := physics.PlateVoltages(cfg, tick)
	r.DrawSchematic(r.views.Lateral, vv, e.Y, e.Brightness)
	r.DrawSchematic(r.views.Top, vh, e.X, e.Brightness)
	r.DrawScreen(r.views.Screen, cfg, tick, e, tr)
}

// ClearScreen wipes the accumulated phosphor image.
func (r *Renderer) ClearScreen() {
	blank(r.views.Screen)
}

// ClearAll paints every view black.
func (r *Renderer) ClearAll() {
	blank(r.views.Lateral)
	blank(r.views.Top)
	blank(r.views.Screen)
}

func blank(s Surface) {
	w, h := s.Size()
	s.FillRect(0, 0, w, h, RGBA(0, 0, 0, 1))
}
