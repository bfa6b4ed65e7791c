package camera

import "sync"

// fixedControllerImpl is a stationary CameraController: it never moves on its own.
type fixedControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
}

var _ CameraController = &fixedControllerImpl{}

// NewFixedController creates a controller placed at position looking at target.
//
// Parameters:
//   - position: world-space camera position
//   - target: world-space look-at point
//
// Returns:
//   - CameraController: the new controller
func NewFixedController(position, target [3]float32) CameraController {
	return &fixedControllerImpl{
		mu:       &sync.Mutex{},
		position: position,
		target:   target,
	}
}

func (fc *fixedControllerImpl) Position() (x, y, z float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.position[0], fc.position[1], fc.position[2]
}

func (fc *fixedControllerImpl) Target() (x, y, z float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.target[0], fc.target[1], fc.target[2]
}

func (fc *fixedControllerImpl) SetPosition(x, y, z float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.position = [3]float32{x, y, z}
}

func (fc *fixedControllerImpl) SetTarget(x, y, z float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.target = [3]float32{x, y, z}
}
