package backdrop

import (
	"math"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
)

// Signal is a pulse travelling along a Trace at constant speed.
type Signal struct {
	trace    *Trace
	progress float64
	speed    float64
	position common.Vec3
}

func newSignal(t *Trace, progress, speed float64) *Signal {
	s := &Signal{trace: t, progress: progress, speed: speed}
	s.position = t.PointAt(progress)
	return s
}

// Trace returns the trace the signal rides on.
func (s *Signal) Trace() *Trace {
	return s.trace
}

// Progress returns the fraction of the trace covered, in [0, 1).
func (s *Signal) Progress() float64 {
	return s.progress
}

// Speed returns the progress added per frame.
func (s *Signal) Speed() float64 {
	return s.speed
}

// Position returns the world position computed by the last advance.
func (s *Signal) Position() common.Vec3 {
	return s.position
}

// advance moves the signal one frame forward and recomputes its position.
func (s *Signal) advance() {
	s.progress = math.Mod(s.progress+s.speed, 1)
	s.position = s.trace.PointAt(s.progress)
}
