package export

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/termfolio/internal/glyphgrid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GIFSurface draws into an RGBA backing store and captures paletted frames.
type GIFSurface struct {
	w, h   float64
	ratio  float64
	scale  float64
	delay  int
	img    *image.RGBA
	frames []*image.Paletted
	ctx    *gifContext
}

// NewGIFSurface creates a w×h logical-pixel surface. delay is the time each
// captured frame is shown for; GIF stores it in hundredths of a second.
func NewGIFSurface(w, h, ratio float64, delay time.Duration) *GIFSurface {
	cs := int(delay / (10 * time.Millisecond))
	if cs < 1 {
		cs = 1
	}
	s := &GIFSurface{w: w, h: h, ratio: ratio, scale: 1, delay: cs}
	s.ctx = &gifContext{s: s, face: basicfont.Face7x13}
	return s
}

func (s *GIFSurface) Size() (float64, float64) { return s.w, s.h }

func (s *GIFSurface) PixelRatio() float64 { return s.ratio }

func (s *GIFSurface) Origin() (float64, float64) { return 0, 0 }

func (s *GIFSurface) Configure(scale float64) {
	s.scale = scale
	pw := int(math.Ceil(s.w * scale))
	ph := int(math.Ceil(s.h * scale))
	s.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
}

func (s *GIFSurface) Context() (glyphgrid.Context, error) {
	return s.ctx, nil
}

// Resize changes the logical size. The next Configure reallocates.
func (s *GIFSurface) Resize(w, h float64) {
	s.w, s.h = w, h
}

// Bounds is the backing-store rectangle in device pixels.
func (s *GIFSurface) Bounds() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Image returns the live backing store.
func (s *GIFSurface) Image() *image.RGBA { return s.img }

// Capture quantizes the current backing store into a new frame.
func (s *GIFSurface) Capture() {
	if s.img == nil {
		return
	}
	p := image.NewPaletted(s.img.Bounds(), palette.Plan9)
	draw.Draw(p, p.Rect, s.img, image.Point{}, draw.Src)
	s.frames = append(s.frames, p)
}

func (s *GIFSurface) Frames() int { return len(s.frames) }

// Encode writes every captured frame as a looping animation.
func (s *GIFSurface) Encode(w io.Writer) error {
	if len(s.frames) == 0 {
		return fmt.Errorf("encode gif: no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range s.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, s.delay)
	}
	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

type gifContext struct {
	s     *GIFSurface
	face  font.Face
	align glyphgrid.Align
}

func (c *gifContext) FillRect(x, y, w, h float64, col colorful.Color) {
	img := c.s.img
	if img == nil {
		return
	}
	sc := c.s.scale
	r := image.Rect(
		int(math.Floor(x*sc)), int(math.Floor(y*sc)),
		int(math.Ceil((x+w)*sc)), int(math.Ceil((y+h)*sc)),
	).Intersect(img.Bounds())
	draw.Draw(img, r, image.NewUniform(rgba(col)), image.Point{}, draw.Src)
}

// SetFont is accepted but the bitmap face has a single size.
func (c *gifContext) SetFont(glyphgrid.Font) {}

func (c *gifContext) SetTextAlign(a glyphgrid.Align) { c.align = a }

func (c *gifContext) FillText(text string, x, y float64, col colorful.Color) {
	img := c.s.img
	if img == nil {
		return
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(rgba(col)), Face: c.face}
	adv := d.MeasureString(text)
	m := c.face.Metrics()

	px := fixed.Int26_6(x * c.s.scale * 64)
	switch c.align {
	case glyphgrid.AlignCenter:
		px -= adv / 2
	case glyphgrid.AlignRight:
		px -= adv
	}
	py := fixed.Int26_6(y*c.s.scale*64) + (m.Ascent-m.Descent)/2
	d.Dot = fixed.Point26_6{X: px, Y: py}
	d.DrawString(text)
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
