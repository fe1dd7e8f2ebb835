// Package export renders the glyph grid off screen.
//
// GIFSurface rasterizes every frame with the 7x13 bitmap face from
// golang.org/x/image and encodes the captured frames as an animated GIF.
// SVGSurface keeps the most recent full repaint as vector elements.
// Both satisfy glyphgrid.Surface, so a Renderer drives them exactly as it
// drives the terminal canvas.
package export
