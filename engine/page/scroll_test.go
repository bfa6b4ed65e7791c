package page

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressFollowsOffset(t *testing.T) {
	s := NewScrollTracker(600, WithPageScreens(3))
	assert.Equal(t, 1800.0, s.PageHeight())
	assert.Equal(t, 1200.0, s.MaxOffset())
	assert.Zero(t, s.Progress())

	s.ScrollTo(300)
	assert.Equal(t, 0.25, s.Progress())
	s.ScrollBy(300)
	assert.Equal(t, 0.5, s.Progress())

	s.ScrollBy(10_000)
	assert.Equal(t, 1200.0, s.Offset())
	assert.Equal(t, 1.0, s.Progress())

	s.ScrollTo(-50)
	assert.Zero(t, s.Offset())
}

func TestPageThatFitsNeverScrolls(t *testing.T) {
	s := NewScrollTracker(600, WithPageScreens(0.5))
	assert.Equal(t, 600.0, s.PageHeight())
	s.ScrollBy(100)
	s.End()
	assert.Zero(t, s.Offset())
	assert.Zero(t, s.Progress())
}

func TestNavigation(t *testing.T) {
	s := NewScrollTracker(500, WithPageScreens(4), WithLineStep(50), WithWheelStep(125))

	s.PageDown()
	assert.Equal(t, 500.0, s.Offset())
	s.End()
	assert.Equal(t, 1.0, s.Progress())
	s.PageUp()
	assert.Equal(t, 1000.0, s.Offset())
	s.Home()
	assert.Zero(t, s.Offset())

	s.Wheel(-2)
	assert.Equal(t, 250.0, s.Offset(), "wheel down scrolls down the page")
	s.Wheel(1)
	assert.Equal(t, 125.0, s.Offset())

	cases := []struct {
		key  uint32
		want float64
	}{
		{common.KeyDown, 175},
		{common.KeyUp, 125},
		{common.KeySpace, 625},
		{common.KeyPageDown, 1125},
		{common.KeyPageUp, 625},
		{common.KeyEnd, 1500},
		{common.KeyHome, 0},
	}
	for _, tc := range cases {
		require.True(t, s.HandleKey(tc.key))
		assert.Equal(t, tc.want, s.Offset(), "after key %d", tc.key)
	}
	assert.False(t, s.HandleKey(common.KeyLeft))
}

func TestSubscribersSeeChangesOnly(t *testing.T) {
	s := NewScrollTracker(100, WithPageScreens(2))
	var got []float64
	id := s.Subscribe(func(p float64) { got = append(got, p) })

	s.ScrollTo(50)
	s.ScrollTo(50)
	s.Home()
	s.Home()
	assert.Equal(t, []float64{0.5, 0}, got)

	require.True(t, s.Unsubscribe(id))
	assert.False(t, s.Unsubscribe(id))
	s.End()
	assert.Len(t, got, 2)
}

func TestResizeKeepsOffsetInRange(t *testing.T) {
	s := NewScrollTracker(400, WithPageScreens(2))
	s.End()
	assert.Equal(t, 400.0, s.Offset())

	var last float64
	s.Subscribe(func(p float64) { last = p })

	s.OnResize(800, 200)
	assert.Equal(t, 200.0, s.ViewportHeight())
	assert.Equal(t, 200.0, s.Offset(), "offset clamps to the shorter page")
	assert.Equal(t, 1.0, s.Progress())

	s.OnResize(800, 800)
	assert.Equal(t, 0.25, s.Progress())
	assert.Equal(t, 0.25, last)

	s.OnResize(0, 0)
	assert.Equal(t, 800.0, s.ViewportHeight(), "minimised windows are ignored")
}
