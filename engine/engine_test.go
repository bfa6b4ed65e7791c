package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer/wgpu_presenter"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/viewport"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow is a window.Window with no platform window behind it.
type fakeWindow struct {
	viewport.Registry

	mu        sync.Mutex
	width     int
	height    int
	requested bool
	closed    bool
	onUpdate  func()
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
}

var _ window.Window = &fakeWindow{}

func (f *fakeWindow) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

func (f *fakeWindow) SetUpdateCallback(cb func())                { f.onUpdate = cb }
func (f *fakeWindow) SetScrollCallback(cb func(delta float32))   { f.onScroll = cb }
func (f *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32)) { f.onKeyDown = cb }
func (f *fakeWindow) SetKeyUpCallback(func(keyCode uint32))      {}
func (f *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }

func (f *fakeWindow) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.requested && !f.closed
}

func (f *fakeWindow) RequestClose() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = true
}

func (f *fakeWindow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWindow) ProcessMessages() {
	for f.IsRunning() {
		if f.onUpdate != nil {
			f.onUpdate()
		}
		time.Sleep(time.Millisecond)
	}
}

func (f *fakeWindow) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type presenters struct {
	mu  sync.Mutex
	all []renderer.OffscreenPresenter
}

func (p *presenters) factory(wgpu_presenter.SurfaceSource) (renderer.Presenter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	o := renderer.NewOffscreenPresenter()
	p.all = append(p.all, o)
	return o, nil
}

func newTestEngine(t *testing.T, opts ...EngineBuilderOption) (Engine, *fakeWindow, *presenters) {
	t.Helper()
	w := &fakeWindow{width: 160, height: 90}
	p := &presenters{}
	e, err := NewEngine(append([]EngineBuilderOption{
		WithWindow(w),
		WithPresenterFactory(p.factory),
		WithTickRate(500),
		WithWorkers(1),
		WithBackdropOptions(backdrop.WithSeed(1), backdrop.WithTraceCount(5), backdrop.WithStreakCount(5)),
	}, opts...)...)
	require.NoError(t, err)
	return e, w, p
}

func TestRunStopsAtFrameLimit(t *testing.T) {
	e, w, p := newTestEngine(t, WithFrameLimit(5), WithProfiling(true))

	require.NoError(t, e.Run(context.Background()))
	assert.True(t, w.isClosed())
	assert.False(t, e.Backdrop().Mounted())
	assert.Empty(t, w.Children())

	require.Len(t, p.all, 1)
	assert.Equal(t, uint64(5), p.all[0].Presented())
	assert.Nil(t, p.all[0].Last(), "presenter released on unmount")

	assert.ErrorIs(t, e.Run(context.Background()), ErrAlreadyRunning)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	e, w, _ := newTestEngine(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, e.Run(ctx))
	assert.True(t, w.isClosed())
}

func TestQuitFromAnotherGoroutine(t *testing.T) {
	e, w, _ := newTestEngine(t)
	go func() {
		time.Sleep(20 * time.Millisecond)
		e.Quit()
		e.Quit()
	}()
	require.NoError(t, e.Run(context.Background()))
	assert.True(t, w.isClosed())
}

func TestQuitBeforeRunReleasesWindow(t *testing.T) {
	e, w, _ := newTestEngine(t)
	e.Quit()
	assert.True(t, w.isClosed())
	assert.ErrorIs(t, e.Run(context.Background()), ErrAlreadyRunning)
}

func TestInputDrivesScrollProgress(t *testing.T) {
	e, w, _ := newTestEngine(t)

	w.onScroll(-1)
	assert.Greater(t, e.Scroll().Progress(), 0.0)
	assert.Equal(t, e.Scroll().Progress(), e.Backdrop().ScrollProgress())

	w.onKeyDown(common.KeyEnd)
	assert.Equal(t, 1.0, e.Backdrop().ScrollProgress())
	w.onKeyDown(common.KeyHome)
	assert.Zero(t, e.Backdrop().ScrollProgress())

	e.Quit()
}

func TestResizeReachesScrollTracker(t *testing.T) {
	e, w, _ := newTestEngine(t)
	w.mu.Lock()
	w.width, w.height = 320, 200
	w.mu.Unlock()
	w.Notify(320, 200)
	assert.Equal(t, 200.0, e.Scroll().ViewportHeight())
	e.Quit()
}
