// Package metrics summarizes glyph grid activity frame by frame.
package metrics

import "github.com/san-kum/termfolio/internal/glyphgrid"

// Frame is a one-frame summary of a grid.
type Frame struct {
	Cells int
	Lit   int
	Mean  float64
	Max   float64
}

// LitFraction is the share of cells at or above the visibility threshold.
func (f Frame) LitFraction() float64 {
	if f.Cells == 0 {
		return 0
	}
	return float64(f.Lit) / float64(f.Cells)
}

// Sample reads the grid's current intensities. A nil grid yields a zero Frame.
func Sample(g *glyphgrid.Grid, threshold float64) Frame {
	var f Frame
	if g == nil {
		return f
	}
	var sum float64
	for i := 0; i < g.Cols; i++ {
		for _, v := range g.Intensity[i] {
			f.Cells++
			sum += v
			if v >= threshold {
				f.Lit++
			}
			if v > f.Max {
				f.Max = v
			}
		}
	}
	if f.Cells > 0 {
		f.Mean = sum / float64(f.Cells)
	}
	return f
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Standard returns the metrics reported by the bench command.
func Standard() []Metric {
	return []Metric{NewCoverage(), NewPeak(), NewSettle(0.01)}
}
