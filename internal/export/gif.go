package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

var ErrNoFrames = errors.New("no frames captured")

// GIFRecorder accumulates frames for an animated GIF. Delay is in
// hundredths of a second per frame.
type GIFRecorder struct {
	frames []*image.Paletted
	delay  int
	limit  int
}

// NewGIFRecorder keeps at most limit frames, dropping the oldest. A limit of
// zero keeps everything.
func NewGIFRecorder(delay, limit int) *GIFRecorder {
	if delay <= 0 {
		delay = 2
	}
	return &GIFRecorder{delay: delay, limit: limit}
}

func (g *GIFRecorder) Add(img image.Image) {
	p, ok := img.(*image.Paletted)
	if !ok {
		p = image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, img.Bounds(), img, img.Bounds().Min)
	}
	g.frames = append(g.frames, p)
	if g.limit > 0 && len(g.frames) > g.limit {
		g.frames = g.frames[len(g.frames)-g.limit:]
	}
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Reset() { g.frames = nil }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := &gif.GIF{
		Image: g.frames,
		Delay: make([]int, len(g.frames)),
	}
	for i := range anim.Delay {
		anim.Delay[i] = g.delay
	}
	return gif.EncodeAll(w, anim)
}

func (g *GIFRecorder) Save(path string) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
