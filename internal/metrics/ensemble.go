package metrics

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/termfolio/internal/export"
	"github.com/san-kum/termfolio/internal/glyphgrid"
)

// Ensemble runs the same parameters under consecutive seeds in parallel.
// Each run owns its renderer, so no grid state is shared.
type Ensemble struct {
	params    glyphgrid.Params
	w, h      float64
	frames    int
	runs      int
	seedStart uint64
}

func NewEnsemble(params glyphgrid.Params, w, h float64, frames, runs int, seedStart uint64) *Ensemble {
	return &Ensemble{params: params, w: w, h: h, frames: frames, runs: runs, seedStart: seedStart}
}

// Run returns the metric values of every run, in seed order.
func (e *Ensemble) Run(ctx context.Context) ([]map[string]float64, error) {
	results := make([]map[string]float64, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.run(ctx, e.seedStart+uint64(idx))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (e *Ensemble) run(ctx context.Context, seed uint64) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := &glyphgrid.FrameQueue{}
	l := &glyphgrid.Listeners{}
	r := glyphgrid.New(e.params, blank{e.w, e.h}, q, l,
		glyphgrid.WithRand(rand.New(rand.NewPCG(seed, seed))))
	r.Mount()
	if !r.Running() {
		return nil, glyphgrid.ErrNoContext
	}
	defer r.Teardown()

	s := NewSeries(e.params.Threshold, Standard()...)
	export.Sweep(q, l, e.w, e.h, e.frames, func(int) { s.Record(r.Grid()) })
	return s.Values(), ctx.Err()
}

// MeanValues averages each metric across runs.
func MeanValues(runs []map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	if len(runs) == 0 {
		return out
	}
	for _, vals := range runs {
		for k, v := range vals {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(runs))
	}
	return out
}

// blank is a surface that accepts and discards every draw call.
type blank struct{ w, h float64 }

func (b blank) Size() (float64, float64) { return b.w, b.h }

func (blank) PixelRatio() float64 { return 1 }

func (blank) Origin() (float64, float64) { return 0, 0 }

func (blank) Configure(float64) {}

func (blank) Context() (glyphgrid.Context, error) { return blank{}, nil }

func (blank) FillRect(x, y, w, h float64, c colorful.Color) {}

func (blank) SetFont(glyphgrid.Font) {}

func (blank) SetTextAlign(glyphgrid.Align) {}

func (blank) FillText(text string, x, y float64, c colorful.Color) {}
