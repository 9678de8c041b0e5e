package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/crtsim/internal/render"
)

const radialBands = 10

// target serializes texture mode between panels so the renderer can draw the
// three views back to back with one mode switch per view.
type target struct {
	active *rl.RenderTexture2D
}

func (t *target) use(rt *rl.RenderTexture2D) {
	if t.active == rt {
		return
	}
	t.release()
	rl.BeginTextureMode(*rt)
	t.active = rt
}

func (t *target) release() {
	if t.active != nil {
		rl.EndTextureMode()
		t.active = nil
	}
}

// Panel is a render.Surface drawing into its own render texture. The texture
// is only cleared explicitly, which is what keeps the phosphor afterglow.
type Panel struct {
	tex    rl.RenderTexture2D
	target *target
	w, h   float64
}

func newPanel(t *target, w, h int) *Panel {
	p := &Panel{
		tex:    rl.LoadRenderTexture(int32(w), int32(h)),
		target: t,
		w:      float64(w),
		h:      float64(h),
	}
	t.use(&p.tex)
	rl.ClearBackground(rl.Black)
	t.release()
	return p
}

func (p *Panel) unload() { rl.UnloadRenderTexture(p.tex) }

// blit draws the panel texture with its top-left corner at (x, y).
func (p *Panel) blit(x, y float32) {
	src := rl.NewRectangle(0, 0, float32(p.w), -float32(p.h))
	rl.DrawTextureRec(p.tex.Texture, src, rl.NewVector2(x, y), rl.White)
}

func (p *Panel) Size() (float64, float64) { return p.w, p.h }

func (p *Panel) FillRect(x, y, w, h float64, c color.NRGBA) {
	p.target.use(&p.tex)
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), rlColor(c))
}

// FillRectLinear projects the gradient onto the vertical axis of the rect.
func (p *Panel) FillRectLinear(x, y, w, h float64, g render.LinearGradient) {
	p.target.use(&p.tex)
	top := render.ColorAt(g.Stops, project(g, x+w/2, y))
	bottom := render.ColorAt(g.Stops, project(g, x+w/2, y+h))
	rl.DrawRectangleGradientV(int32(x), int32(y), int32(w), int32(h), rlColor(top), rlColor(bottom))
}

func project(g render.LinearGradient, x, y float64) float64 {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0
	}
	return ((x-g.X0)*dx + (y-g.Y0)*dy) / l2
}

func (p *Panel) FillCircle(cx, cy, r float64, c color.NRGBA) {
	p.target.use(&p.tex)
	rl.DrawCircleV(rl.NewVector2(float32(cx), float32(cy)), float32(r), rlColor(c))
}

// FillCircleRadial draws non-overlapping rings sampled from the stops, so
// translucent stops do not stack.
func (p *Panel) FillCircleRadial(g render.RadialGradient) {
	p.target.use(&p.tex)
	center := rl.NewVector2(float32(g.CX), float32(g.CY))
	step := g.Radius / radialBands
	for i := 0; i < radialBands; i++ {
		inner := step * float64(i)
		c := render.ColorAt(g.Stops, (inner+step/2)/g.Radius)
		rl.DrawRing(center, float32(inner), float32(inner+step), 0, 360, 36, rlColor(c))
	}
}

func (p *Panel) StrokePolyline(pts []render.Point, s render.Stroke) {
	p.target.use(&p.tex)
	if s.Glow > 0 {
		halo := s.Color
		halo.A = uint8(float64(s.Color.A) * 0.25)
		for _, seg := range render.DashSegments(pts, nil) {
			rl.DrawLineEx(vec(seg[0]), vec(seg[1]), float32(s.Width+s.Glow), rlColor(halo))
		}
	}
	for _, seg := range render.DashSegments(pts, s.Dash) {
		rl.DrawLineEx(vec(seg[0]), vec(seg[1]), float32(math.Max(s.Width, 1)), rlColor(s.Color))
	}
}

func vec(p render.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func rlColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
