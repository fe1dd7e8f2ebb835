package glyphgrid_test

import (
	"math/rand/v2"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/termfolio/internal/glyphgrid"
)

var _ = Describe("Renderer", func() {
	var (
		surface *fakeSurface
		queue   *glyphgrid.FrameQueue
		events  *glyphgrid.Listeners
		r       *glyphgrid.Renderer
		params  glyphgrid.Params
	)

	BeforeEach(func() {
		surface = newFakeSurface(280, 140)
		queue = &glyphgrid.FrameQueue{}
		events = &glyphgrid.Listeners{}
		params = glyphgrid.DefaultParams()
		r = glyphgrid.New(params, surface, queue, events,
			glyphgrid.WithRand(rand.New(rand.NewPCG(7, 11))))
	})

	Describe("Mount", func() {
		It("allocates the grid, attaches listeners and schedules a frame", func() {
			r.Mount()
			Expect(r.Running()).To(BeTrue())
			Expect(r.Grid().Cols).To(Equal(21))
			Expect(r.Grid().Rows).To(Equal(11))
			Expect(events.Count()).To(Equal(2))
			Expect(queue.Pending()).To(Equal(1))
		})

		It("starts with the pointer off the surface", func() {
			r.Mount()
			queue.Flush(time.Now())
			for i := 0; i < r.Grid().Cols; i++ {
				for j := 0; j < r.Grid().Rows; j++ {
					Expect(r.Grid().Intensity[i][j]).To(BeNumerically("<", 1))
				}
			}
		})

		It("caps the device pixel ratio", func() {
			surface.ratio = 3
			r.Mount()
			Expect(surface.configured).To(Equal([]float64{params.MaxPixelRatio}))
		})

		It("silently does nothing without a rendering context", func() {
			surface.noContext = true
			r.Mount()
			Expect(r.Running()).To(BeFalse())
			Expect(r.Grid()).To(BeNil())
			Expect(events.Count()).To(BeZero())
			Expect(queue.Pending()).To(BeZero())
		})

		It("is a no-op when already mounted", func() {
			r.Mount()
			r.Mount()
			Expect(events.Count()).To(Equal(2))
			Expect(queue.Pending()).To(Equal(1))
		})
	})

	Describe("frames", func() {
		BeforeEach(func() { r.Mount() })

		It("repaints the background before drawing every cell", func() {
			queue.Flush(time.Now())
			ctx := surface.ctx
			Expect(ctx.calls[0]).To(Equal("rect"))
			Expect(ctx.rects[0].Hex()).To(Equal(params.Background.Hex()))
			Expect(ctx.texts).To(HaveLen(r.Grid().Cols * r.Grid().Rows))
			Expect(ctx.align).To(Equal(glyphgrid.AlignCenter))
			Expect(ctx.font.Size).To(BeNumerically("~", params.CellSize*glyphgrid.DefaultFontScale))
		})

		It("reschedules itself once per flush", func() {
			for i := 0; i < 5; i++ {
				Expect(queue.Flush(time.Now())).To(Equal(1))
			}
			Expect(r.Frames()).To(Equal(uint64(5)))
			Expect(queue.Pending()).To(Equal(1))
		})

		It("lights the cell under the pointer in page coordinates", func() {
			surface.ox, surface.oy = 100, 50
			x, y := r.Grid().Center(4, 3, params.CellSize)
			events.DispatchPointer(glyphgrid.PointerEvent{PageX: x + 100, PageY: y + 50})
			Expect(r.Pointer()).To(Equal(glyphgrid.Pointer{X: x, Y: y}))

			queue.Flush(time.Now())
			Expect(r.Grid().Intensity[4][3]).To(Equal(1.0))
		})

		It("draws only charset glyphs", func() {
			for i := 0; i < 30; i++ {
				surface.ctx.reset()
				events.DispatchPointer(glyphgrid.PointerEvent{PageX: float64(i * 9), PageY: 70})
				queue.Flush(time.Now())
				for _, t := range surface.ctx.texts {
					Expect(params.Charset).To(ContainSubstring(t.text))
				}
			}
		})
	})

	Describe("resize", func() {
		It("recomputes both dimensions without stale cells", func() {
			r.Mount()
			queue.Flush(time.Now())

			surface.w, surface.h = 100, 400
			events.DispatchResize()

			g := r.Grid()
			Expect(g.Cols).To(Equal(8))
			Expect(g.Rows).To(Equal(29))
			Expect(g.Glyph).To(HaveLen(8))
			Expect(g.Intensity).To(HaveLen(8))
			for i := 0; i < g.Cols; i++ {
				Expect(g.Glyph[i]).To(HaveLen(29))
				Expect(g.Intensity[i]).To(HaveLen(29))
			}

			surface.ctx.reset()
			queue.Flush(time.Now())
			Expect(surface.ctx.texts).To(HaveLen(8 * 29))
		})
	})

	Describe("Teardown", func() {
		It("cancels the frame and removes listeners, twice without harm", func() {
			r.Mount()
			r.Teardown()
			Expect(func() { r.Teardown() }).NotTo(Panic())

			Expect(r.Running()).To(BeFalse())
			Expect(r.Grid()).To(BeNil())
			Expect(events.Count()).To(BeZero())
			Expect(queue.Pending()).To(BeZero())
			Expect(queue.Flush(time.Now())).To(BeZero())
			Expect(r.Frames()).To(BeZero())
		})

		It("ignores events delivered after teardown", func() {
			r.Mount()
			r.Teardown()
			events.DispatchResize()
			Expect(r.Grid()).To(BeNil())
		})
	})
})

var _ = Describe("FrameQueue", func() {
	It("defers callbacks requested during a flush", func() {
		q := &glyphgrid.FrameQueue{}
		runs := 0
		var tick func(time.Time)
		tick = func(time.Time) {
			runs++
			q.RequestFrame(tick)
		}
		q.RequestFrame(tick)
		Expect(q.Flush(time.Now())).To(Equal(1))
		Expect(runs).To(Equal(1))
		Expect(q.Pending()).To(Equal(1))
	})

	It("drops cancelled callbacks", func() {
		q := &glyphgrid.FrameQueue{}
		ran := false
		h := q.RequestFrame(func(time.Time) { ran = true })
		Expect(h).NotTo(BeZero())
		q.CancelFrame(h)
		q.CancelFrame(h)
		Expect(q.Flush(time.Now())).To(BeZero())
		Expect(ran).To(BeFalse())
	})
})
