package glyphgrid

import (
	"math"
	"math/rand/v2"
)

// Pointer is a position in surface-local logical pixels.
type Pointer struct {
	X, Y float64
}

// Offscreen is where the pointer rests before the first move event.
var Offscreen = Pointer{X: -9999, Y: -9999}

// Grid holds per-cell state. Both arrays are indexed [col][row].
type Grid struct {
	Cols, Rows int
	Glyph      [][]rune
	Intensity  [][]float64
	charset    []rune
}

// Dimensions returns the cell counts covering a w×h surface. The extra
// column and row cover the partial cell at the far edge.
func Dimensions(w, h, cell float64) (cols, rows int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return int(math.Floor(w/cell)) + 1, int(math.Floor(h/cell)) + 1
}

// NewGrid allocates a grid seeded with random glyphs and zero intensity.
func NewGrid(cols, rows int, charset []rune, rng *rand.Rand) *Grid {
	g := &Grid{
		Cols:      cols,
		Rows:      rows,
		Glyph:     make([][]rune, cols),
		Intensity: make([][]float64, cols),
		charset:   charset,
	}
	for i := 0; i < cols; i++ {
		g.Glyph[i] = make([]rune, rows)
		g.Intensity[i] = make([]float64, rows)
		for j := 0; j < rows; j++ {
			g.Glyph[i][j] = pick(charset, rng)
		}
	}
	return g
}

// Center returns the pixel center of cell (i, j).
func (g *Grid) Center(i, j int, cell float64) (x, y float64) {
	return float64(i)*cell + cell/2, float64(j)*cell + cell/2
}

// Step advances every cell by one frame.
func (g *Grid) Step(p Pointer, prm *Params, rng *rand.Rand) {
	for i := 0; i < g.Cols; i++ {
		glyphs, levels := g.Glyph[i], g.Intensity[i]
		for j := 0; j < g.Rows; j++ {
			x, y := g.Center(i, j, prm.CellSize)
			if math.Hypot(x-p.X, y-p.Y) < prm.Radius {
				levels[j] = 1
				if rng.Float64() < prm.ScrambleChance {
					glyphs[j] = pick(g.charset, rng)
				}
			} else {
				levels[j] *= prm.Decay
			}

			if rng.Float64() < prm.FlickerChance {
				glyphs[j] = pick(g.charset, rng)
				if levels[j] < prm.FlickerFloor {
					levels[j] = prm.FlickerFloor
				}
			}
		}
	}
}

// Charset returns the runes glyphs are drawn from.
func (g *Grid) Charset() []rune { return g.charset }

// Clone returns a deep copy, used for frame-to-frame comparisons.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Cols:      g.Cols,
		Rows:      g.Rows,
		Glyph:     make([][]rune, g.Cols),
		Intensity: make([][]float64, g.Cols),
		charset:   g.charset,
	}
	for i := 0; i < g.Cols; i++ {
		c.Glyph[i] = append([]rune(nil), g.Glyph[i]...)
		c.Intensity[i] = append([]float64(nil), g.Intensity[i]...)
	}
	return c
}
