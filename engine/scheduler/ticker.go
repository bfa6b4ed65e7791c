package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// tickerImpl drives pending callbacks from its own goroutine at a fixed rate.
type tickerImpl struct {
	q *queue

	logger *zap.Logger

	interval   time.Duration
	frameLimit uint64
	afterFrame func(dt float32)

	frames atomic.Uint64

	wg          sync.WaitGroup
	startOnce   sync.Once
	quitOnce    sync.Once
	quitChannel chan struct{}
}

// Ticker is a clock-driven Scheduler.
type Ticker interface {
	Scheduler

	// Start launches the frame goroutine. Calling Start more than once has no effect.
	Start()

	// Stop signals the frame goroutine to exit and waits for it.
	// Pending requests are cancelled. Safe to call multiple times and before Start.
	Stop()

	// Done returns a channel closed once the ticker has been stopped, either by Stop or by reaching the frame limit.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}

	// Frames returns the number of frames dispatched so far.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Interval returns the target frame interval.
	//
	// Returns:
	//   - time.Duration: the interval between frames
	Interval() time.Duration
}

var _ Ticker = &tickerImpl{}

// NewTicker creates a stopped Ticker running at 60 frames per second unless configured otherwise.
//
// Parameters:
//   - options: functional options applied to the ticker
//
// Returns:
//   - Ticker: the new ticker
func NewTicker(options ...TickerBuilderOption) Ticker {
	t := &tickerImpl{
		q:           newQueue(),
		logger:      zap.NewNop(),
		interval:    time.Second / 60,
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *tickerImpl) RequestFrame(cb FrameCallback) *Handle {
	return t.q.request(cb)
}

func (t *tickerImpl) Cancel(h *Handle) {
	t.q.cancel(h)
}

func (t *tickerImpl) Pending() int {
	return t.q.count()
}

func (t *tickerImpl) Start() {
	t.startOnce.Do(func() {
		select {
		case <-t.quitChannel:
			return
		default:
		}
		t.wg.Add(1)
		go t.handleFrames()
	})
}

func (t *tickerImpl) Stop() {
	t.signalQuit()
	t.wg.Wait()
	t.q.clear()
}

func (t *tickerImpl) Done() <-chan struct{} {
	return t.quitChannel
}

func (t *tickerImpl) Frames() uint64 {
	return t.frames.Load()
}

func (t *tickerImpl) Interval() time.Duration {
	return t.interval
}

// signalQuit closes the quit channel exactly once.
func (t *tickerImpl) signalQuit() {
	t.quitOnce.Do(func() {
		close(t.quitChannel)
	})
}

// handleFrames runs the frame loop until the quit channel closes or the frame limit is reached.
func (t *tickerImpl) handleFrames() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-t.quitChannel:
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now

			run(t.q.take(), dt, t.invoke)
			if t.afterFrame != nil {
				t.afterFrame(dt)
			}

			n := t.frames.Add(1)
			if t.frameLimit > 0 && n >= t.frameLimit {
				t.logger.Debug("frame limit reached", zap.Uint64("frames", n))
				t.signalQuit()
				return
			}
		}
	}
}

// invoke runs a single callback and keeps a panic from killing the frame goroutine.
func (t *tickerImpl) invoke(h *Handle, dt float32) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("frame callback panicked",
				zap.Uint64("handle", h.ID()),
				zap.Any("panic", r),
			)
		}
	}()
	h.cb(dt)
}
