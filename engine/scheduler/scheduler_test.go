package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManualStepRunsPendingOnce(t *testing.T) {
	m := NewManual()
	calls := 0
	h := m.RequestFrame(func(dt float32) {
		calls++
		assert.Equal(t, float32(0.016), dt)
	})

	assert.Equal(t, 1, m.Pending())
	assert.Equal(t, 1, m.Step(0.016))
	assert.Equal(t, 0, m.Step(0.016))
	assert.Equal(t, 1, calls)
	assert.True(t, h.Done())
	assert.False(t, h.Cancelled())
	assert.Equal(t, uint64(2), m.Frames())
}

func TestManualRequestDuringStepDefersToNextStep(t *testing.T) {
	m := NewManual()
	calls := 0
	var loop FrameCallback
	loop = func(float32) {
		calls++
		m.RequestFrame(loop)
	}
	m.RequestFrame(loop)

	assert.Equal(t, 1, m.Step(0))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Pending())

	m.Step(0)
	m.Step(0)
	assert.Equal(t, 3, calls)
}

func TestManualCancel(t *testing.T) {
	m := NewManual()
	ran := false
	h := m.RequestFrame(func(float32) { ran = true })

	m.Cancel(h)
	assert.True(t, h.Cancelled())
	assert.Equal(t, 0, m.Pending())
	assert.Equal(t, 0, m.Step(0))
	assert.False(t, ran)

	// cancelling twice, cancelling nil and cancelling a finished handle are all no-ops
	m.Cancel(h)
	m.Cancel(nil)
	done := m.RequestFrame(func(float32) {})
	m.Step(0)
	m.Cancel(done)
	assert.True(t, done.Done())
	assert.False(t, done.Cancelled())
}

func TestManualCancelDuringBatch(t *testing.T) {
	m := NewManual()
	var second *Handle
	secondRan := false
	m.RequestFrame(func(float32) { m.Cancel(second) })
	second = m.RequestFrame(func(float32) { secondRan = true })

	assert.Equal(t, 1, m.Step(0))
	assert.False(t, secondRan)
}

func TestNilCallbackIsNeverQueued(t *testing.T) {
	m := NewManual()
	h := m.RequestFrame(nil)
	assert.True(t, h.Cancelled())
	assert.Equal(t, 0, m.Pending())
}

func TestHandleIDsAreUnique(t *testing.T) {
	m := NewManual()
	a := m.RequestFrame(func(float32) {})
	b := m.RequestFrame(func(float32) {})
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, uint64(0), (*Handle)(nil).ID())
}

func TestTickerDispatchesUntilStopped(t *testing.T) {
	tk := NewTicker(WithRate(500))
	var calls atomic.Int32
	var loop FrameCallback
	loop = func(float32) {
		calls.Add(1)
		tk.RequestFrame(loop)
	}
	tk.RequestFrame(loop)
	tk.Start()
	tk.Start()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	tk.Stop()
	tk.Stop()
	assert.Equal(t, 0, tk.Pending())

	n := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, calls.Load(), "no callbacks after Stop")
}

func TestTickerFrameLimit(t *testing.T) {
	var after atomic.Int32
	tk := NewTicker(WithRate(1000), WithFrameLimit(3), WithAfterFrame(func(float32) { after.Add(1) }))
	tk.Start()

	select {
	case <-tk.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not stop at its frame limit")
	}
	tk.Stop()

	assert.Equal(t, uint64(3), tk.Frames())
	assert.Equal(t, int32(3), after.Load())
}

func TestTickerRecoversPanickingCallback(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	tk := NewTicker(WithRate(1000), WithLogger(zap.New(core)))

	var ok atomic.Bool
	tk.RequestFrame(func(float32) { panic("boom") })
	tk.RequestFrame(func(float32) { ok.Store(true) })
	tk.Start()
	defer tk.Stop()

	require.Eventually(t, ok.Load, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "frame callback panicked", logs.All()[0].Message)
}

func TestTickerStopBeforeStart(t *testing.T) {
	tk := NewTicker()
	h := tk.RequestFrame(func(float32) {})
	tk.Stop()
	tk.Start()

	assert.True(t, h.Cancelled())
	assert.Equal(t, time.Second/60, tk.Interval())
}
