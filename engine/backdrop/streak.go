package backdrop

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
)

// Streak is a thin vertical light bar drifting along +x.
type Streak struct {
	Position common.Vec3
	Height   float32
	Speed    float32
}

// advance moves the streak one frame, wrapping to the left edge once it passes the right bound.
func (s *Streak) advance() {
	s.Position.X += s.Speed
	if s.Position.X > StreakBoundX {
		s.Position.X = -StreakBoundX
	}
}

// generateStreaks scatters count streaks through the streak volume.
//
// Parameters:
//   - rng: the random source
//   - count: the number of streaks
//
// Returns:
//   - []Streak: the streaks
func generateStreaks(rng *rand.Rand, count int) []Streak {
	out := make([]Streak, count)
	for i := range out {
		out[i] = Streak{
			Position: common.Vec3{
				X: float32(rng.Float64()*2*StreakBoundX - StreakBoundX),
				Y: float32(rng.Float64()*2*StreakBoundY - StreakBoundY),
				Z: float32(rng.Float64() * -StreakDepth),
			},
			Height: float32(MinStreakHeight + rng.Float64()*(MaxStreakHeight-MinStreakHeight)),
			Speed:  float32(MinStreakSpeed + rng.Float64()*(MaxStreakSpeed-MinStreakSpeed)),
		}
	}
	return out
}
