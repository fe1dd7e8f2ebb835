package export

import (
	"time"

	"github.com/san-kum/termfolio/internal/glyphgrid"
)

// Sweep flushes q n times while moving the pointer left to right along the
// vertical middle of a w×h surface. onFrame, when set, runs after each
// flush. It returns the number of frames that actually ran.
func Sweep(q *glyphgrid.FrameQueue, l *glyphgrid.Listeners, w, h float64, n int, onFrame func(i int)) int {
	ran := 0
	now := time.Unix(0, 0)
	for i := 0; i < n; i++ {
		x := w * float64(i) / float64(max(n-1, 1))
		l.DispatchPointer(glyphgrid.PointerEvent{PageX: x, PageY: h / 2})
		if q.Flush(now) == 0 {
			break
		}
		ran++
		now = now.Add(time.Second / 60)
		if onFrame != nil {
			onFrame(i)
		}
	}
	return ran
}
