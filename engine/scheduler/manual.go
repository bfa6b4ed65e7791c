package scheduler

// manualImpl is a deterministic scheduler advanced explicitly by Step.
type manualImpl struct {
	q      *queue
	frames uint64
}

// Manual is a Scheduler driven by the caller rather than a clock.
// It is used by the headless renderer and by tests.
type Manual interface {
	Scheduler

	// Step runs every callback that was pending when Step was called.
	// Callbacks requested during the step run on the following step.
	//
	// Parameters:
	//   - dt: the frame delta passed to each callback, in seconds
	//
	// Returns:
	//   - int: the number of callbacks invoked
	Step(dt float32) int

	// Frames returns the number of steps taken so far.
	//
	// Returns:
	//   - uint64: the step count
	Frames() uint64
}

var _ Manual = &manualImpl{}

// NewManual creates an empty Manual scheduler.
//
// Returns:
//   - Manual: the new scheduler
func NewManual() Manual {
	return &manualImpl{q: newQueue()}
}

func (m *manualImpl) RequestFrame(cb FrameCallback) *Handle {
	return m.q.request(cb)
}

func (m *manualImpl) Cancel(h *Handle) {
	m.q.cancel(h)
}

func (m *manualImpl) Pending() int {
	return m.q.count()
}

func (m *manualImpl) Step(dt float32) int {
	m.frames++
	return run(m.q.take(), dt, func(h *Handle, dt float32) {
		h.cb(dt)
	})
}

func (m *manualImpl) Frames() uint64 {
	return m.frames
}
