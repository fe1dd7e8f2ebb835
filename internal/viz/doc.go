// Package viz runs the portfolio as a full-screen terminal app.
//
// The package implements the interactive TUI using the Bubble Tea framework:
//
//   - [App]: pages, navigation and the per-frame loop
//   - [Canvas]: a terminal glyphgrid.Surface, one cell per Scale pixels
//   - [ChatWidget]: the floating assistant panel
//   - Theme selection with 5 built-in color schemes
//
// The glyph grid is drawn first on every frame and the pages are composited
// over it with [Overlay].
//
// # Key Bindings
//
//	Tab/Shift+Tab - Select project
//	Enter         - Open selected project
//	Esc/Backspace - Back
//	1 2 3         - Jump to About, Projects, Contact
//	T             - Cycle color themes
//	C             - Open the chat widget (Esc closes it)
//	Q             - Quit
package viz
