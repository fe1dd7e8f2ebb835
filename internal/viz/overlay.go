package viz

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const resetStyle = "\x1b[m"

// Overlay writes block over bg with its top-left corner at column x, row y.
// Both may contain ANSI styling; cells of bg outside the block are kept.
// Rows of the block that fall outside bg are dropped and columns past the
// end of a non-empty bg row are clipped.
func Overlay(bg []string, block string, x, y int) []string {
	out := append([]string(nil), bg...)
	if x < 0 {
		x = 0
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(out) {
			continue
		}
		out[row] = overlayLine(out[row], line, x)
	}
	return out
}

func overlayLine(base, fg string, x int) string {
	w := ansi.StringWidth(fg)
	if w == 0 {
		return base
	}
	bw := ansi.StringWidth(base)
	if bw > 0 && x+w > bw {
		if x >= bw {
			return base
		}
		fg = ansi.Truncate(fg, bw-x, "")
		w = bw - x
	}
	left := ansi.Truncate(base, x, "")
	if bw < x {
		left += strings.Repeat(" ", x-bw)
	}
	right := ""
	if bw > x+w {
		right = ansi.TruncateLeft(base, x+w, "")
	}
	return left + resetStyle + fg + resetStyle + right
}
