package metrics

import "github.com/san-kum/termfolio/internal/glyphgrid"

// Series records per-frame samples and feeds them to a set of metrics.
type Series struct {
	threshold float64
	metrics   []Metric
	frames    []Frame
}

func NewSeries(threshold float64, ms ...Metric) *Series {
	return &Series{threshold: threshold, metrics: ms}
}

// Record samples g and returns the frame.
func (s *Series) Record(g *glyphgrid.Grid) Frame {
	f := Sample(g, s.threshold)
	s.frames = append(s.frames, f)
	for _, m := range s.metrics {
		m.Observe(f)
	}
	return f
}

func (s *Series) Len() int { return len(s.frames) }

func (s *Series) Frames() []Frame { return s.frames }

func (s *Series) Metrics() []Metric { return s.metrics }

// Mean returns the per-frame mean intensities, ready for plotting.
func (s *Series) Mean() []float64 {
	out := make([]float64, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Mean
	}
	return out
}

// Lit returns the per-frame lit fractions.
func (s *Series) Lit() []float64 {
	out := make([]float64, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.LitFraction()
	}
	return out
}

// Values maps metric names to their current values.
func (s *Series) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Series) Reset() {
	s.frames = nil
	for _, m := range s.metrics {
		m.Reset()
	}
}
