package glyphgrid

import "github.com/lucasb-eyer/go-colorful"

// Align is the horizontal anchor used by FillText.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font describes the glyph font. Size is in logical pixels.
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

// Context draws in logical pixels. Implementations apply the backing-store
// scale chosen by Surface.Configure.
type Context interface {
	FillRect(x, y, w, h float64, c colorful.Color)
	SetFont(f Font)
	SetTextAlign(a Align)
	// FillText draws text with its vertical middle at y and its horizontal
	// anchor at x.
	FillText(text string, x, y float64, c colorful.Color)
}

// Surface is a drawing area sized to its container.
type Surface interface {
	// Size reports the current logical size in pixels.
	Size() (w, h float64)
	// PixelRatio reports the device pixel ratio.
	PixelRatio() float64
	// Origin is the surface's top-left corner in page coordinates.
	Origin() (x, y float64)
	// Configure sizes the backing store for the current logical size.
	Configure(scale float64)
	// Context acquires the rendering context or returns ErrNoContext.
	Context() (Context, error)
}
