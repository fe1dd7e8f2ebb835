package glyphgrid

import (
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

// Renderer owns one grid and drives it from a Scheduler.
type Renderer struct {
	params  Params
	charset []rune
	surface Surface
	sched   Scheduler
	events  Events
	rng     *rand.Rand
	log     *zap.Logger

	ctx           Context
	grid          *Grid
	pointer       Pointer
	width, height float64
	scale         float64
	frames        uint64

	mounted bool
	handle  FrameHandle
	remove  []func()
}

type Option func(*Renderer)

// WithRand sets the random source for seeding, scrambling and flicker.
func WithRand(rng *rand.Rand) Option {
	return func(r *Renderer) { r.rng = rng }
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

func New(params Params, surface Surface, sched Scheduler, events Events, opts ...Option) *Renderer {
	r := &Renderer{
		params:  params,
		charset: []rune(params.Charset),
		surface: surface,
		sched:   sched,
		events:  events,
		pointer: Offscreen,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	if len(r.charset) == 0 {
		r.charset = []rune(DefaultCharset)
	}
	return r
}

// Mount sets up the grid, attaches listeners and schedules the first frame.
// Without a rendering context it does nothing.
func (r *Renderer) Mount() {
	if r.mounted {
		return
	}
	if !r.setup() {
		return
	}
	r.mounted = true
	r.remove = append(r.remove,
		r.events.OnPointerMove(r.HandlePointer),
		r.events.OnResize(r.HandleResize),
	)
	r.handle = r.sched.RequestFrame(r.frame)
}

func (r *Renderer) setup() bool {
	ctx, err := r.surface.Context()
	if err != nil {
		r.log.Debug("glyph grid disabled", zap.Error(err))
		return false
	}
	r.ctx = ctx

	r.width, r.height = r.surface.Size()
	r.scale = r.surface.PixelRatio()
	if r.scale <= 0 {
		r.scale = 1
	}
	if r.scale > r.params.MaxPixelRatio {
		r.scale = r.params.MaxPixelRatio
	}
	r.surface.Configure(r.scale)

	cols, rows := Dimensions(r.width, r.height, r.params.CellSize)
	r.grid = NewGrid(cols, rows, r.charset, r.rng)
	r.log.Debug("glyph grid allocated",
		zap.Int("cols", cols), zap.Int("rows", rows), zap.Float64("scale", r.scale))
	return true
}

// HandlePointer records the pointer in surface-local coordinates.
func (r *Renderer) HandlePointer(e PointerEvent) {
	ox, oy := r.surface.Origin()
	r.pointer = Pointer{X: e.PageX - ox, Y: e.PageY - oy}
}

// HandleResize re-measures the surface and reallocates the grid.
func (r *Renderer) HandleResize() {
	if !r.mounted {
		return
	}
	r.setup()
}

func (r *Renderer) frame(time.Time) {
	r.handle = 0
	if !r.mounted {
		return
	}
	r.Step()
	r.handle = r.sched.RequestFrame(r.frame)
}

// Step runs one frame: repaint, update every cell, draw every glyph.
func (r *Renderer) Step() {
	if r.grid == nil || r.ctx == nil {
		return
	}
	p := &r.params
	r.ctx.FillRect(0, 0, r.width, r.height, p.Background)

	r.grid.Step(r.pointer, p, r.rng)

	r.ctx.SetFont(p.Font())
	r.ctx.SetTextAlign(AlignCenter)
	for i := 0; i < r.grid.Cols; i++ {
		for j := 0; j < r.grid.Rows; j++ {
			x, y := r.grid.Center(i, j, p.CellSize)
			r.ctx.FillText(string(r.grid.Glyph[i][j]), x, y, p.Shade(r.grid.Intensity[i][j]))
		}
	}
	r.frames++
}

// Teardown cancels the pending frame and removes both listeners. Calling it
// again is a no-op.
func (r *Renderer) Teardown() {
	if !r.mounted {
		return
	}
	r.mounted = false
	if r.handle != 0 {
		r.sched.CancelFrame(r.handle)
		r.handle = 0
	}
	for _, remove := range r.remove {
		remove()
	}
	r.remove = nil
	r.grid = nil
	r.ctx = nil
}

func (r *Renderer) Running() bool { return r.mounted }

// Grid exposes the live grid; nil before mount and after teardown.
func (r *Renderer) Grid() *Grid { return r.grid }

func (r *Renderer) Pointer() Pointer { return r.pointer }

func (r *Renderer) Params() Params { return r.params }

// Frames counts completed steps since construction.
func (r *Renderer) Frames() uint64 { return r.frames }

// SetPalette recolors the effect without touching grid state.
func (r *Renderer) SetPalette(background, ambient, active colorful.Color) {
	r.params.Background = background
	r.params.Ambient = ambient
	r.params.Active = active
}
