package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/termfolio/internal/glyphgrid"
)

type svgRect struct {
	x, y, w, h float64
	fill       string
}

type svgText struct {
	text   string
	x, y   float64
	fill   string
	font   glyphgrid.Font
	anchor string
}

// SVGSurface records drawing calls since the last full-surface fill.
type SVGSurface struct {
	w, h  float64
	rects []svgRect
	texts []svgText
	font  glyphgrid.Font
	align glyphgrid.Align
}

func NewSVGSurface(w, h float64) *SVGSurface {
	return &SVGSurface{w: w, h: h}
}

func (s *SVGSurface) Size() (float64, float64) { return s.w, s.h }

// PixelRatio is 1; vector output has no backing store.
func (s *SVGSurface) PixelRatio() float64 { return 1 }

func (s *SVGSurface) Origin() (float64, float64) { return 0, 0 }

func (s *SVGSurface) Configure(float64) {}

func (s *SVGSurface) Context() (glyphgrid.Context, error) { return s, nil }

func (s *SVGSurface) FillRect(x, y, w, h float64, c colorful.Color) {
	if x <= 0 && y <= 0 && x+w >= s.w && y+h >= s.h {
		s.rects = s.rects[:0]
		s.texts = s.texts[:0]
	}
	s.rects = append(s.rects, svgRect{x: x, y: y, w: w, h: h, fill: c.Clamped().Hex()})
}

func (s *SVGSurface) SetFont(f glyphgrid.Font) { s.font = f }

func (s *SVGSurface) SetTextAlign(a glyphgrid.Align) { s.align = a }

func (s *SVGSurface) FillText(text string, x, y float64, c colorful.Color) {
	anchor := "start"
	switch s.align {
	case glyphgrid.AlignCenter:
		anchor = "middle"
	case glyphgrid.AlignRight:
		anchor = "end"
	}
	s.texts = append(s.texts, svgText{
		text: text, x: x, y: y, fill: c.Clamped().Hex(), font: s.font, anchor: anchor,
	})
}

// Elements reports how many rects and texts the current frame holds.
func (s *SVGSurface) Elements() (rects, texts int) {
	return len(s.rects), len(s.texts)
}

// String renders the recorded frame as a standalone SVG document.
func (s *SVGSurface) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.w, s.h, s.w, s.h))

	for _, r := range s.rects {
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, r.x, r.y, r.w, r.h, r.fill))
	}

	for _, t := range s.texts {
		weight := "normal"
		if t.font.Bold {
			weight = "bold"
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="%s" font-size="%.1f" font-weight="%s" text-anchor="%s" dominant-baseline="middle">`,
			t.x, t.y, t.fill, t.font.Family, t.font.Size, weight, t.anchor))
		_ = xml.EscapeText(&sb, []byte(t.text))
		sb.WriteString("</text>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteTo writes String() to w.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// SeriesToSVG plots values as a polyline scaled to a width×height box.
func SeriesToSVG(values []float64, width, height int, stroke string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0d1117"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke))

	step := float64(width) / float64(len(values)-1)
	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
