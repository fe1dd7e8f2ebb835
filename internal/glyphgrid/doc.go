// Package glyphgrid renders an animated grid of monospace glyphs onto a
// drawing surface.
//
// The grid reacts to the pointer: cells whose center lies within the
// interaction radius light up fully and occasionally scramble their glyph,
// every other cell fades geometrically. Independent of input, each cell has a
// tiny per-frame chance to flicker to a new glyph.
//
//   - [Grid]: glyph and intensity arrays, indexed [col][row]
//   - [Params]: cell size, radius, decay, probabilities, colors
//   - [Renderer]: setup, per-frame update and teardown
//   - [Surface], [Context]: the drawing surface contract
//   - [Scheduler], [FrameQueue]: cancellable next-frame scheduling
//   - [Events], [Listeners]: pointer-move and resize delivery
//
// # Example
//
//	q := &glyphgrid.FrameQueue{}
//	l := &glyphgrid.Listeners{}
//	r := glyphgrid.New(glyphgrid.DefaultParams(), surface, q, l)
//	r.Mount()
//	defer r.Teardown()
//	for range ticker.C {
//		q.Flush(time.Now())
//	}
//
// # Thread Safety
//
// A Renderer is NOT safe for concurrent use. The host must deliver events
// and flush frames from a single goroutine.
package glyphgrid
