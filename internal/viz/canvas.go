package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/termfolio/internal/glyphgrid"
)

type cell struct {
	ch     rune
	fg, bg colorful.Color
}

// styleKey is a color pair at terminal precision (8 bits per channel).
type styleKey [6]uint8

func keyOf(fg, bg colorful.Color) styleKey {
	fr, fgc, fb := fg.Clamped().RGB255()
	br, bgc, bb := bg.Clamped().RGB255()
	return styleKey{fr, fgc, fb, br, bgc, bb}
}

// maxStyles bounds the style cache; it is dropped when full.
const maxStyles = 1024

// Canvas is a terminal-backed glyphgrid.Surface. Each terminal cell spans
// Scale logical pixels in both directions, so a glyph drawn at a pixel
// position lands in cell (floor(x/Scale), floor(y/Scale)). Writes outside
// the terminal are clipped.
type Canvas struct {
	Cols, Rows int
	Scale      float64

	cells  [][]cell // [row][col]
	styles map[styleKey]lipgloss.Style
	bg     colorful.Color
	align glyphgrid.Align
	ok    bool
}

func NewCanvas(cols, rows int, scale float64) *Canvas {
	c := &Canvas{Scale: scale, ok: true, bg: glyphgrid.MustHex("#0d1117")}
	c.Resize(cols, rows)
	return c
}

// Resize changes the terminal size and clears the buffer.
func (c *Canvas) Resize(cols, rows int) {
	c.Cols, c.Rows = max(cols, 0), max(rows, 0)
	c.cells = make([][]cell, c.Rows)
	for i := range c.cells {
		c.cells[i] = make([]cell, c.Cols)
	}
	c.Clear()
}

// Clear fills every cell with a blank on the last background color.
func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = cell{ch: ' ', fg: c.bg, bg: c.bg}
		}
	}
}

// Disable makes Context fail, as a host without a drawing context would.
func (c *Canvas) Disable() { c.ok = false }

func (c *Canvas) Size() (float64, float64) {
	return float64(c.Cols) * c.Scale, float64(c.Rows) * c.Scale
}

// PixelRatio is 1: a terminal has no backing store to oversample.
func (c *Canvas) PixelRatio() float64 { return 1 }

func (c *Canvas) Origin() (float64, float64) { return 0, 0 }

func (c *Canvas) Configure(float64) {}

func (c *Canvas) Context() (glyphgrid.Context, error) {
	if !c.ok {
		return nil, glyphgrid.ErrNoContext
	}
	return c, nil
}

// CellCenter maps a terminal cell to the logical pixel at its center.
func (c *Canvas) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * c.Scale, (float64(row) + 0.5) * c.Scale
}

func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color) {
	if x <= 0 && y <= 0 {
		c.bg = col
	}
	c0 := max(int(math.Floor(x/c.Scale)), 0)
	r0 := max(int(math.Floor(y/c.Scale)), 0)
	c1 := min(int(math.Ceil((x+w)/c.Scale)), c.Cols)
	r1 := min(int(math.Ceil((y+h)/c.Scale)), c.Rows)
	for r := r0; r < r1; r++ {
		for k := c0; k < c1; k++ {
			c.cells[r][k] = cell{ch: ' ', fg: col, bg: col}
		}
	}
}

// SetFont is a no-op; the terminal picks the font.
func (c *Canvas) SetFont(glyphgrid.Font) {}

func (c *Canvas) SetTextAlign(a glyphgrid.Align) { c.align = a }

func (c *Canvas) FillText(text string, x, y float64, col colorful.Color) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	k := int(math.Floor(x / c.Scale))
	r := int(math.Floor(y / c.Scale))
	switch c.align {
	case glyphgrid.AlignCenter:
		k -= len(runes) / 2
	case glyphgrid.AlignRight:
		k -= len(runes) - 1
	}
	if r < 0 || r >= c.Rows {
		return
	}
	for i, ch := range runes {
		if k+i < 0 || k+i >= c.Cols {
			continue
		}
		cl := &c.cells[r][k+i]
		cl.ch = ch
		cl.fg = col
	}
}

// At returns the rune and foreground color of a cell.
func (c *Canvas) At(col, row int) (rune, colorful.Color) {
	if row < 0 || row >= c.Rows || col < 0 || col >= c.Cols {
		return 0, colorful.Color{}
	}
	cl := c.cells[row][col]
	return cl.ch, cl.fg
}

// Lines renders each row, batching runs of equal terminal colors into one
// style.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.Rows)
	var b, run strings.Builder
	for r, row := range c.cells {
		b.Reset()
		i := 0
		for i < len(row) {
			fg, bg := row[i].fg, row[i].bg
			k := keyOf(fg, bg)
			run.Reset()
			for i < len(row) && keyOf(row[i].fg, row[i].bg) == k {
				run.WriteRune(row[i].ch)
				i++
			}
			b.WriteString(c.style(k, fg, bg).Render(run.String()))
		}
		lines[r] = b.String()
	}
	return lines
}

func (c *Canvas) style(k styleKey, fg, bg colorful.Color) lipgloss.Style {
	if st, ok := c.styles[k]; ok {
		return st
	}
	if c.styles == nil || len(c.styles) >= maxStyles {
		c.styles = make(map[styleKey]lipgloss.Style)
	}
	st := lipgloss.NewStyle().Foreground(toColor(fg)).Background(toColor(bg))
	c.styles[k] = st
	return st
}

func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Plain returns the glyphs without styling.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for r, row := range c.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range row {
			b.WriteRune(cl.ch)
		}
	}
	return b.String()
}
