package glyphgrid

import (
	"fmt"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultCharset        = "0123456789ABCDEF<>/\\|{}[]()=+-*#$%&;:"
	DefaultCellSize       = 14.0
	DefaultMaxPixelRatio  = 2.0
	DefaultRadius         = 60.0
	DefaultDecay          = 0.92
	DefaultScrambleChance = 0.15
	DefaultFlickerChance  = 0.0005
	DefaultFlickerFloor   = 0.35
	DefaultThreshold      = 0.05
	DefaultFontScale      = 0.8
	DefaultFontFamily     = "monospace"
)

// Params tunes the effect. Colors are sRGB.
type Params struct {
	CellSize       float64
	MaxPixelRatio  float64
	Radius         float64
	Decay          float64
	ScrambleChance float64
	FlickerChance  float64
	FlickerFloor   float64
	Threshold      float64
	Charset        string

	Background colorful.Color
	Ambient    colorful.Color
	Active     colorful.Color
}

func DefaultParams() Params {
	return Params{
		CellSize:       DefaultCellSize,
		MaxPixelRatio:  DefaultMaxPixelRatio,
		Radius:         DefaultRadius,
		Decay:          DefaultDecay,
		ScrambleChance: DefaultScrambleChance,
		FlickerChance:  DefaultFlickerChance,
		FlickerFloor:   DefaultFlickerFloor,
		Threshold:      DefaultThreshold,
		Charset:        DefaultCharset,
		Background:     MustHex("#0d1117"),
		Ambient:        MustHex("#1c2433"),
		Active:         MustHex("#2f81f7"),
	}
}

// Validate reports the first out-of-range field wrapped in ErrInvalidParams.
func (p Params) Validate() error {
	switch {
	case p.CellSize <= 0:
		return fmt.Errorf("%w: cell size %v must be positive", ErrInvalidParams, p.CellSize)
	case p.MaxPixelRatio < 1:
		return fmt.Errorf("%w: max pixel ratio %v below 1", ErrInvalidParams, p.MaxPixelRatio)
	case p.Radius < 0:
		return fmt.Errorf("%w: radius %v is negative", ErrInvalidParams, p.Radius)
	case p.Decay <= 0 || p.Decay >= 1:
		return fmt.Errorf("%w: decay %v outside (0, 1)", ErrInvalidParams, p.Decay)
	case !unit(p.ScrambleChance):
		return fmt.Errorf("%w: scramble chance %v outside [0, 1]", ErrInvalidParams, p.ScrambleChance)
	case !unit(p.FlickerChance):
		return fmt.Errorf("%w: flicker chance %v outside [0, 1]", ErrInvalidParams, p.FlickerChance)
	case !unit(p.FlickerFloor):
		return fmt.Errorf("%w: flicker floor %v outside [0, 1]", ErrInvalidParams, p.FlickerFloor)
	case !unit(p.Threshold):
		return fmt.Errorf("%w: threshold %v outside [0, 1]", ErrInvalidParams, p.Threshold)
	case len([]rune(p.Charset)) == 0:
		return fmt.Errorf("%w: empty charset", ErrInvalidParams)
	}
	return nil
}

// Shade returns the draw color for a cell. Cells below the visibility
// threshold get the ambient tone.
func (p *Params) Shade(intensity float64) colorful.Color {
	if intensity < p.Threshold {
		return p.Ambient
	}
	if intensity > 1 {
		intensity = 1
	}
	return p.Ambient.BlendRgb(p.Active, intensity).Clamped()
}

// Font is the glyph font for the configured cell size.
func (p *Params) Font() Font {
	return Font{Family: DefaultFontFamily, Size: p.CellSize * DefaultFontScale, Bold: true}
}

// MustHex parses a #rrggbb color and panics on malformed input. Intended for
// package-level defaults.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func unit(v float64) bool { return v >= 0 && v <= 1 }

func pick(charset []rune, rng *rand.Rand) rune {
	return charset[rng.IntN(len(charset))]
}
