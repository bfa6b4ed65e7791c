// Package page models the scrollable document the backdrop sits behind. It turns wheel and keyboard input into a
// scroll offset and publishes the normalised scroll progress.
package page

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"go.uber.org/zap"
)

// ScrollListener receives the scroll progress in [0, 1] after every change.
type ScrollListener func(progress float64)

// SubscriptionID identifies a registered ScrollListener.
type SubscriptionID uint64

type subscriber struct {
	id SubscriptionID
	fn ScrollListener
}

// scrollTrackerImpl is the implementation of the ScrollTracker interface.
type scrollTrackerImpl struct {
	mu *sync.Mutex

	logger *zap.Logger

	viewportHeight float64
	pageScreens    float64
	wheelStep      float64
	lineStep       float64

	offset float64

	nextID      SubscriptionID
	subscribers []subscriber
}

// ScrollTracker tracks the vertical scroll position of a page taller than the viewport.
//
// The page height is a multiple of the viewport height, so resizing the viewport keeps the page proportions. Progress is
// offset / (pageHeight - viewportHeight), or 0 when the page fits in the viewport.
type ScrollTracker interface {
	// SetViewportHeight sets the visible height in pixels and clamps the offset to the new range.
	//
	// Parameters:
	//   - height: the viewport height, non-positive values are ignored
	SetViewportHeight(height float64)

	// OnResize adapts a viewport resize to SetViewportHeight. It matches viewport.ResizeListener.
	//
	// Parameters:
	//   - width, height: the new viewport size in pixels
	OnResize(width, height int)

	// ViewportHeight returns the visible height in pixels.
	ViewportHeight() float64

	// PageHeight returns the full page height in pixels.
	PageHeight() float64

	// Offset returns the scroll offset from the top of the page in pixels.
	Offset() float64

	// MaxOffset returns the largest reachable offset.
	MaxOffset() float64

	// Progress returns the normalised scroll position.
	//
	// Returns:
	//   - float64: the progress in [0, 1]
	Progress() float64

	// ScrollTo moves to an absolute offset, clamped to [0, MaxOffset].
	//
	// Parameters:
	//   - offset: the target offset in pixels
	ScrollTo(offset float64)

	// ScrollBy moves by delta pixels; positive scrolls down the page.
	//
	// Parameters:
	//   - delta: the distance in pixels
	ScrollBy(delta float64)

	// Wheel applies a mouse wheel delta. Positive wheel values scroll up the page, like a browser.
	//
	// Parameters:
	//   - delta: the wheel delta in notches
	Wheel(delta float32)

	// Home scrolls to the top of the page.
	Home()

	// End scrolls to the bottom of the page.
	End()

	// PageUp scrolls up by one viewport height.
	PageUp()

	// PageDown scrolls down by one viewport height.
	PageDown()

	// HandleKey applies the navigation key with the given code.
	//
	// Parameters:
	//   - keyCode: a common.Key* code
	//
	// Returns:
	//   - bool: true if the key scrolled the page
	HandleKey(keyCode uint32) bool

	// Subscribe registers fn for progress changes. fn is called outside the tracker lock.
	//
	// Parameters:
	//   - fn: the listener
	//
	// Returns:
	//   - SubscriptionID: the id used to unsubscribe
	Subscribe(fn ScrollListener) SubscriptionID

	// Unsubscribe removes a listener.
	//
	// Parameters:
	//   - id: the id returned by Subscribe
	//
	// Returns:
	//   - bool: true if a listener was removed
	Unsubscribe(id SubscriptionID) bool
}

var _ ScrollTracker = &scrollTrackerImpl{}

// NewScrollTracker creates a ScrollTracker at the top of the page.
//
// Parameters:
//   - viewportHeight: the initial visible height in pixels
//   - options: functional options
//
// Returns:
//   - ScrollTracker: the new tracker
func NewScrollTracker(viewportHeight float64, options ...ScrollTrackerBuilderOption) ScrollTracker {
	s := &scrollTrackerImpl{
		mu:             &sync.Mutex{},
		logger:         zap.NewNop(),
		viewportHeight: math.Max(viewportHeight, 0),
		pageScreens:    3,
		wheelStep:      100,
		lineStep:       40,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scrollTrackerImpl) SetViewportHeight(height float64) {
	if !(height > 0) {
		return
	}
	s.update(func() {
		s.viewportHeight = height
	})
}

func (s *scrollTrackerImpl) OnResize(_, height int) {
	s.SetViewportHeight(float64(height))
}

func (s *scrollTrackerImpl) ViewportHeight() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewportHeight
}

func (s *scrollTrackerImpl) PageHeight() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageHeight()
}

func (s *scrollTrackerImpl) Offset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

func (s *scrollTrackerImpl) MaxOffset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxOffset()
}

func (s *scrollTrackerImpl) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress()
}

func (s *scrollTrackerImpl) ScrollTo(offset float64) {
	if math.IsNaN(offset) {
		return
	}
	s.update(func() {
		s.offset = offset
	})
}

func (s *scrollTrackerImpl) ScrollBy(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	s.update(func() {
		s.offset += delta
	})
}

func (s *scrollTrackerImpl) Wheel(delta float32) {
	s.mu.Lock()
	step := s.wheelStep
	s.mu.Unlock()
	s.ScrollBy(-float64(delta) * step)
}

func (s *scrollTrackerImpl) Home() {
	s.ScrollTo(0)
}

func (s *scrollTrackerImpl) End() {
	s.ScrollTo(math.Inf(1))
}

func (s *scrollTrackerImpl) PageUp() {
	s.update(func() {
		s.offset -= s.viewportHeight
	})
}

func (s *scrollTrackerImpl) PageDown() {
	s.update(func() {
		s.offset += s.viewportHeight
	})
}

func (s *scrollTrackerImpl) HandleKey(keyCode uint32) bool {
	s.mu.Lock()
	line := s.lineStep
	s.mu.Unlock()

	switch keyCode {
	case common.KeyHome:
		s.Home()
	case common.KeyEnd:
		s.End()
	case common.KeyPageUp:
		s.PageUp()
	case common.KeyPageDown, common.KeySpace:
		s.PageDown()
	case common.KeyUp:
		s.ScrollBy(-line)
	case common.KeyDown:
		s.ScrollBy(line)
	default:
		return false
	}
	return true
}

func (s *scrollTrackerImpl) Subscribe(fn ScrollListener) SubscriptionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *scrollTrackerImpl) Unsubscribe(id SubscriptionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return true
		}
	}
	return false
}

// update applies mutate under the lock, clamps the offset, and notifies subscribers when progress moved.
func (s *scrollTrackerImpl) update(mutate func()) {
	s.mu.Lock()
	before := s.progress()
	mutate()
	s.offset = common.Clamp(s.offset, 0, s.maxOffset())
	after := s.progress()
	if after == before {
		s.mu.Unlock()
		return
	}
	subs := make([]ScrollListener, len(s.subscribers))
	for i, sub := range s.subscribers {
		subs[i] = sub.fn
	}
	offset := s.offset
	s.mu.Unlock()

	s.logger.Debug("scroll", zap.Float64("offset", offset), zap.Float64("progress", after))
	for _, fn := range subs {
		fn(after)
	}
}

// Caller must hold the mutex.
func (s *scrollTrackerImpl) pageHeight() float64 {
	return s.viewportHeight * s.pageScreens
}

// Caller must hold the mutex.
func (s *scrollTrackerImpl) maxOffset() float64 {
	return math.Max(0, s.pageHeight()-s.viewportHeight)
}

// Caller must hold the mutex.
func (s *scrollTrackerImpl) progress() float64 {
	maxOffset := s.maxOffset()
	if maxOffset == 0 {
		return 0
	}
	return common.Clamp(s.offset/maxOffset, 0, 1)
}
