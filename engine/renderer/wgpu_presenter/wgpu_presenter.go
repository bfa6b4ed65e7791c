// Package wgpu_presenter displays CPU-rendered frames in a window through WebGPU.
// Each frame is uploaded into a texture and drawn onto the swapchain with a full-screen triangle.
package wgpu_presenter

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

//go:embed assets/blit.wgsl
var blitSource string

// PresentMode controls how presented frames are delivered to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// SurfaceSource is anything that can describe a platform surface, typically a window.
type SurfaceSource interface {
	// SurfaceDescriptor returns the platform-specific WebGPU surface descriptor.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if the source has no surface
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

type wgpuPresenterImpl struct {
	mu     *sync.Mutex
	logger *zap.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	textureFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode

	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	sampler         *wgpu.Sampler

	// Frame texture state, recreated on every Configure.
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
	bindGroup    *wgpu.BindGroup
	width        int
	height       int

	forceFallbackAdapter bool
	released             bool
}

var _ renderer.Presenter = &wgpuPresenterImpl{}

// NewWGPUPresenter creates the WebGPU instance, adapter and device for src and builds the blit pipeline.
// The surface is not configured until Configure is called.
//
// Parameters:
//   - src: the surface source, typically the window
//   - options: functional options applied before the adapter is requested
//
// Returns:
//   - renderer.Presenter: the presenter
//   - error: an error if no adapter or device is available or the pipeline cannot be built
func NewWGPUPresenter(src SurfaceSource, options ...PresenterBuilderOption) (renderer.Presenter, error) {
	runtime.LockOSThread()

	desc := src.SurfaceDescriptor()
	if desc == nil {
		return nil, errors.New("surface source has no surface descriptor")
	}

	p := &wgpuPresenterImpl{
		mu:          &sync.Mutex{},
		logger:      zap.NewNop(),
		presentMode: wgpu.PresentModeFifo,
	}
	for _, opt := range options {
		opt(p)
	}

	p.instance = wgpu.CreateInstance(nil)
	p.surface = p.instance.CreateSurface(desc)

	a, err := p.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: p.forceFallbackAdapter,
		CompatibleSurface:    p.surface,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	p.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Backdrop Device",
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	p.device = d
	p.queue = d.GetQueue()

	capabilities := p.surface.GetCapabilities(p.adapter)
	if len(capabilities.Formats) == 0 {
		p.Release()
		return nil, errors.New("surface reports no supported formats")
	}
	p.surfaceFormat = capabilities.Formats[0]
	p.textureFormat = frameTextureFormat(p.surfaceFormat)

	if err := p.createPipeline(); err != nil {
		p.Release()
		return nil, fmt.Errorf("create blit pipeline: %w", err)
	}

	p.logger.Debug("wgpu presenter created",
		zap.Uint32("surface_format", uint32(p.surfaceFormat)),
		zap.Bool("fallback_adapter", p.forceFallbackAdapter),
	)
	return p, nil
}

// frameTextureFormat picks the upload format so that sampling and writing to the surface
// leaves the sRGB-encoded frame bytes unchanged.
func frameTextureFormat(surface wgpu.TextureFormat) wgpu.TextureFormat {
	switch surface {
	case wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	default:
		return wgpu.TextureFormatRGBA8Unorm
	}
}

// createPipeline builds the sampler, bind group layout and full-screen blit pipeline.
func (p *wgpuPresenterImpl) createPipeline() error {
	module, err := p.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "blit.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: blitSource,
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	textureEntry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageFragment,
	}
	textureEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
	textureEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D

	samplerEntry := wgpu.BindGroupLayoutEntry{
		Binding:    1,
		Visibility: wgpu.ShaderStageFragment,
	}
	samplerEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	p.bindGroupLayout, err = p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Blit Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{textureEntry, samplerEntry},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}

	pipelineLayout, err := p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Blit Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.bindGroupLayout},
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	p.pipeline, err = p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Blit Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    p.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}

	p.sampler, err = p.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Blit Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}
	return nil
}

// Configure is a wrapper for the boilerplate required when the surface size changes:
// it reconfigures the surface and recreates the frame texture and its bind group.
func (p *wgpuPresenterImpl) Configure(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return errors.New("presenter released")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	capabilities := p.surface.GetCapabilities(p.adapter)
	p.surface.Configure(p.adapter, p.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      p.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: p.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	p.releaseFrameTexture()

	tex, err := p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Frame Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        p.textureFormat,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create frame texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create frame texture view: %w", err)
	}
	bg, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Blit Bind Group",
		Layout: p.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: p.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("failed to create blit bind group: %w", err)
	}

	p.frameTexture, p.frameView, p.bindGroup = tex, view, bg
	p.width, p.height = width, height
	p.logger.Debug("surface configured", zap.Int("width", width), zap.Int("height", height))
	return nil
}

func (p *wgpuPresenterImpl) Present(frame *image.RGBA) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released || p.frameTexture == nil {
		return errors.New("presenter not configured")
	}
	b := frame.Bounds()
	if b.Dx() != p.width || b.Dy() != p.height {
		// The surface was resized between render and present; the next frame will match.
		return nil
	}

	p.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  p.frameTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		frame.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(frame.Stride),
			RowsPerImage: uint32(p.height),
		},
		&wgpu.Extent3D{
			Width:              uint32(p.width),
			Height:             uint32(p.height),
			DepthOrArrayLayers: 1,
		},
	)

	surfaceTexture, err := p.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := p.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1.0},
			},
		},
	})
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	p.queue.Submit(commandBuffer)
	commandBuffer.Release()

	p.surface.Present()
	return nil
}

func (p *wgpuPresenterImpl) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return
	}
	p.released = true

	p.releaseFrameTexture()
	if p.sampler != nil {
		p.sampler.Release()
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
	}
	if p.queue != nil {
		p.queue.Release()
	}
	if p.device != nil {
		p.device.Release()
	}
	if p.adapter != nil {
		p.adapter.Release()
	}
	if p.surface != nil {
		p.surface.Release()
	}
	if p.instance != nil {
		p.instance.Release()
	}
	p.logger.Debug("wgpu presenter released")
}

// releaseFrameTexture frees the per-size resources. Caller must hold the mutex.
func (p *wgpuPresenterImpl) releaseFrameTexture() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.frameView != nil {
		p.frameView.Release()
		p.frameView = nil
	}
	if p.frameTexture != nil {
		p.frameTexture.Release()
		p.frameTexture = nil
	}
}
