package glyphgrid_test

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/termfolio/internal/glyphgrid"
)

type drawnText struct {
	text string
	x, y float64
	c    colorful.Color
}

type recordingContext struct {
	rects []colorful.Color
	texts []drawnText
	font  glyphgrid.Font
	align glyphgrid.Align
	calls []string
}

func (c *recordingContext) FillRect(x, y, w, h float64, col colorful.Color) {
	c.rects = append(c.rects, col)
	c.calls = append(c.calls, "rect")
}

func (c *recordingContext) SetFont(f glyphgrid.Font) { c.font = f }

func (c *recordingContext) SetTextAlign(a glyphgrid.Align) { c.align = a }

func (c *recordingContext) FillText(text string, x, y float64, col colorful.Color) {
	c.texts = append(c.texts, drawnText{text: text, x: x, y: y, c: col})
	c.calls = append(c.calls, "text")
}

func (c *recordingContext) reset() {
	c.rects, c.texts, c.calls = nil, nil, nil
}

type fakeSurface struct {
	w, h       float64
	ratio      float64
	ox, oy     float64
	noContext  bool
	configured []float64
	ctx        *recordingContext
}

func newFakeSurface(w, h float64) *fakeSurface {
	return &fakeSurface{w: w, h: h, ratio: 1, ctx: &recordingContext{}}
}

func (s *fakeSurface) Size() (float64, float64) { return s.w, s.h }

func (s *fakeSurface) PixelRatio() float64 { return s.ratio }

func (s *fakeSurface) Origin() (float64, float64) { return s.ox, s.oy }

func (s *fakeSurface) Configure(scale float64) { s.configured = append(s.configured, scale) }

func (s *fakeSurface) Context() (glyphgrid.Context, error) {
	if s.noContext {
		return nil, glyphgrid.ErrNoContext
	}
	return s.ctx, nil
}
