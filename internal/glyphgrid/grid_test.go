package glyphgrid_test

import (
	"math/rand/v2"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/termfolio/internal/glyphgrid"
)

func inCharset(g *glyphgrid.Grid, charset string) bool {
	for i := 0; i < g.Cols; i++ {
		for j := 0; j < g.Rows; j++ {
			if !strings.ContainsRune(charset, g.Glyph[i][j]) {
				return false
			}
		}
	}
	return true
}

var _ = Describe("Dimensions", func() {
	DescribeTable("covers the surface with one extra cell per axis",
		func(w, h, cell float64, cols, rows int) {
			c, r := glyphgrid.Dimensions(w, h, cell)
			Expect(c).To(Equal(cols))
			Expect(r).To(Equal(rows))
		},
		Entry("exact multiple", 140.0, 70.0, 14.0, 11, 6),
		Entry("partial cell", 150.0, 75.0, 14.0, 11, 6),
		Entry("smaller than a cell", 5.0, 5.0, 14.0, 1, 1),
		Entry("empty surface", 0.0, 0.0, 14.0, 1, 1),
		Entry("negative size clamps", -20.0, -1.0, 14.0, 1, 1),
		Entry("wide viewport", 1920.0, 1080.0, 14.0, 138, 78),
	)
})

var _ = Describe("Grid", func() {
	var (
		rng     *rand.Rand
		params  glyphgrid.Params
		charset []rune
	)

	BeforeEach(func() {
		rng = rand.New(rand.NewPCG(1, 2))
		params = glyphgrid.DefaultParams()
		charset = []rune(params.Charset)
	})

	It("seeds glyphs from the charset with zero intensity", func() {
		g := glyphgrid.NewGrid(12, 7, charset, rng)
		Expect(g.Glyph).To(HaveLen(12))
		Expect(g.Intensity).To(HaveLen(12))
		for i := 0; i < g.Cols; i++ {
			Expect(g.Glyph[i]).To(HaveLen(7))
			for j := 0; j < g.Rows; j++ {
				Expect(g.Intensity[i][j]).To(BeZero())
			}
		}
		Expect(inCharset(g, params.Charset)).To(BeTrue())
	})

	It("centers cells at half a cell past their corner", func() {
		g := glyphgrid.NewGrid(4, 4, charset, rng)
		x, y := g.Center(2, 3, 14)
		Expect(x).To(Equal(35.0))
		Expect(y).To(Equal(49.0))
	})

	It("activates cells within the radius in the same frame", func() {
		g := glyphgrid.NewGrid(20, 20, charset, rng)
		x, y := g.Center(10, 10, params.CellSize)
		g.Step(glyphgrid.Pointer{X: x, Y: y}, &params, rng)

		Expect(g.Intensity[10][10]).To(Equal(1.0))
		Expect(g.Intensity[11][10]).To(Equal(1.0))
		Expect(g.Intensity[0][0]).To(BeNumerically("<", 1.0))
	})

	It("decays without proximity or flicker and never increases", func() {
		params.FlickerChance = 0
		g := glyphgrid.NewGrid(8, 8, charset, rng)
		for i := 0; i < g.Cols; i++ {
			for j := 0; j < g.Rows; j++ {
				g.Intensity[i][j] = float64(i*g.Rows+j) / float64(g.Cols*g.Rows)
			}
		}
		for frame := 0; frame < 50; frame++ {
			prev := g.Clone()
			g.Step(glyphgrid.Offscreen, &params, rng)
			for i := 0; i < g.Cols; i++ {
				for j := 0; j < g.Rows; j++ {
					Expect(g.Intensity[i][j]).To(BeNumerically("<=", prev.Intensity[i][j]))
					Expect(g.Intensity[i][j]).To(BeNumerically("~", prev.Intensity[i][j]*params.Decay, 1e-12))
					Expect(g.Glyph[i][j]).To(Equal(prev.Glyph[i][j]))
				}
			}
		}
	})

	It("bumps flickering cells to the floor without lowering brighter ones", func() {
		params.FlickerChance = 1
		g := glyphgrid.NewGrid(3, 3, charset, rng)
		g.Intensity[1][1] = 0.9
		g.Step(glyphgrid.Offscreen, &params, rng)

		Expect(g.Intensity[0][0]).To(Equal(params.FlickerFloor))
		Expect(g.Intensity[1][1]).To(BeNumerically("~", 0.9*params.Decay, 1e-12))
	})

	It("keeps intensity within [0, 1] and glyphs within the charset", func() {
		params.FlickerChance = 0.05
		g := glyphgrid.NewGrid(30, 20, charset, rng)
		for frame := 0; frame < 300; frame++ {
			p := glyphgrid.Pointer{X: float64(frame * 3), Y: float64(frame % 200)}
			g.Step(p, &params, rng)
			for i := 0; i < g.Cols; i++ {
				for j := 0; j < g.Rows; j++ {
					v := g.Intensity[i][j]
					Expect(v).To(BeNumerically(">=", 0))
					Expect(v).To(BeNumerically("<=", 1))
				}
			}
			Expect(inCharset(g, params.Charset)).To(BeTrue())
		}
	})
})

var _ = Describe("Params", func() {
	It("accepts the defaults", func() {
		Expect(glyphgrid.DefaultParams().Validate()).To(Succeed())
	})

	DescribeTable("rejects out-of-range fields",
		func(mutate func(*glyphgrid.Params)) {
			p := glyphgrid.DefaultParams()
			mutate(&p)
			Expect(p.Validate()).To(MatchError(glyphgrid.ErrInvalidParams))
		},
		Entry("zero cell size", func(p *glyphgrid.Params) { p.CellSize = 0 }),
		Entry("decay of one", func(p *glyphgrid.Params) { p.Decay = 1 }),
		Entry("negative scramble", func(p *glyphgrid.Params) { p.ScrambleChance = -0.1 }),
		Entry("flicker above one", func(p *glyphgrid.Params) { p.FlickerChance = 1.5 }),
		Entry("empty charset", func(p *glyphgrid.Params) { p.Charset = "" }),
		Entry("pixel ratio below one", func(p *glyphgrid.Params) { p.MaxPixelRatio = 0.5 }),
	)

	It("shades dim cells ambient and lit cells active", func() {
		p := glyphgrid.DefaultParams()
		Expect(p.Shade(0).Hex()).To(Equal(p.Ambient.Hex()))
		Expect(p.Shade(p.Threshold / 2).Hex()).To(Equal(p.Ambient.Hex()))
		Expect(p.Shade(1).Hex()).To(Equal(p.Active.Hex()))
		Expect(p.Shade(0.5).Hex()).NotTo(Equal(p.Active.Hex()))
	})
})
