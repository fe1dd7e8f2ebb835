package glyphgrid

import "time"

// FrameHandle identifies a scheduled frame. Zero is never issued.
type FrameHandle uint64

// Scheduler requests a callback on the next frame.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
}

type frameRequest struct {
	handle FrameHandle
	fn     func(time.Time)
}

// FrameQueue is a cooperative Scheduler. The host calls Flush once per
// display refresh from the same goroutine that delivers events.
type FrameQueue struct {
	last    FrameHandle
	pending []frameRequest
}

func (q *FrameQueue) RequestFrame(fn func(now time.Time)) FrameHandle {
	q.last++
	q.pending = append(q.pending, frameRequest{handle: q.last, fn: fn})
	return q.last
}

func (q *FrameQueue) CancelFrame(h FrameHandle) {
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Flush runs the callbacks queued before the call and returns how many ran.
// Callbacks requested while flushing wait for the next Flush.
func (q *FrameQueue) Flush(now time.Time) int {
	batch := q.pending
	q.pending = nil
	for _, r := range batch {
		r.fn(now)
	}
	return len(batch)
}

// Pending reports the number of queued callbacks.
func (q *FrameQueue) Pending() int { return len(q.pending) }
