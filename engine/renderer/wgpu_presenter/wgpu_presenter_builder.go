package wgpu_presenter

import (
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// PresenterBuilderOption is a functional option applied to the presenter during construction via NewWGPUPresenter.
type PresenterBuilderOption func(*wgpuPresenterImpl)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - PresenterBuilderOption: a function that applies the present mode option
func WithPresentMode(mode PresentMode) PresenterBuilderOption {
	return func(p *wgpuPresenterImpl) {
		switch mode {
		case PresentModeUncapped:
			p.presentMode = wgpu.PresentModeImmediate
		default:
			p.presentMode = wgpu.PresentModeFifo
		}
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - PresenterBuilderOption: a function that applies the force software renderer option
func WithForceSoftwareRenderer(force bool) PresenterBuilderOption {
	return func(p *wgpuPresenterImpl) {
		p.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger used for device and surface lifecycle events.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op logger
//
// Returns:
//   - PresenterBuilderOption: a function that applies the logger option
func WithLogger(logger *zap.Logger) PresenterBuilderOption {
	return func(p *wgpuPresenterImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}
