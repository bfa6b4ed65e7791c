// Package scheduler provides frame-callback schedulers with explicit, owned handles.
// A callback is one-shot: it runs at most once per request, and a callback that wants the next frame must request it again.
package scheduler

import (
	"sync"
	"sync/atomic"
)

// FrameCallback is invoked once per requested frame with the elapsed time since the previous frame in seconds.
type FrameCallback func(dt float32)

// Handle identifies a single pending frame request.
// A cancelled handle is never invoked, even if cancellation races with a frame that is already being dispatched.
type Handle struct {
	id    uint64
	cb    FrameCallback
	state atomic.Int32
}

const (
	handlePending int32 = iota
	handleCancelled
	handleDone
)

// ID returns the scheduler-unique identifier of the request.
func (h *Handle) ID() uint64 {
	if h == nil {
		return 0
	}
	return h.id
}

// Cancelled reports whether the request has been cancelled.
func (h *Handle) Cancelled() bool {
	if h == nil {
		return true
	}
	return h.state.Load() == handleCancelled
}

// Done reports whether the callback has been invoked.
func (h *Handle) Done() bool {
	if h == nil {
		return false
	}
	return h.state.Load() == handleDone
}

// Scheduler defines the interface every frame scheduler implements.
type Scheduler interface {
	// RequestFrame queues cb to run on the next frame.
	//
	// Parameters:
	//   - cb: the callback to run
	//
	// Returns:
	//   - *Handle: the handle that can be passed to Cancel
	RequestFrame(cb FrameCallback) *Handle

	// Cancel removes a pending request. Cancelling a nil, already-run or already-cancelled handle is a no-op.
	//
	// Parameters:
	//   - h: the handle returned by RequestFrame
	Cancel(h *Handle)

	// Pending returns the number of requests waiting for the next frame.
	//
	// Returns:
	//   - int: the pending request count
	Pending() int
}

// queue is the request list shared by the scheduler implementations.
type queue struct {
	mu      *sync.Mutex
	nextID  uint64
	pending []*Handle
}

func newQueue() *queue {
	return &queue{
		mu:      &sync.Mutex{},
		pending: make([]*Handle, 0, 4),
	}
}

func (q *queue) request(cb FrameCallback) *Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	h := &Handle{id: q.nextID, cb: cb}
	if cb == nil {
		h.state.Store(handleCancelled)
		return h
	}
	q.pending = append(q.pending, h)
	return h
}

func (q *queue) cancel(h *Handle) {
	if h == nil {
		return
	}
	h.state.CompareAndSwap(handlePending, handleCancelled)
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, p := range q.pending {
		if p == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

func (q *queue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// take detaches the current batch so callbacks requested while it runs land in the next frame.
func (q *queue) take() []*Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	batch := q.pending
	q.pending = make([]*Handle, 0, cap(batch))
	return batch
}

func (q *queue) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, h := range q.pending {
		h.state.CompareAndSwap(handlePending, handleCancelled)
	}
	q.pending = q.pending[:0]
}

// run invokes every live handle of the batch and returns how many ran.
func run(batch []*Handle, dt float32, invoke func(*Handle, float32)) int {
	ran := 0
	for _, h := range batch {
		// Consume the handle so a late Cancel stays a no-op.
		if !h.state.CompareAndSwap(handlePending, handleDone) {
			continue
		}
		invoke(h, dt)
		ran++
	}
	return ran
}
