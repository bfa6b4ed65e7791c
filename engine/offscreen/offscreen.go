// Package offscreen renders the backdrop without a window and writes PNG snapshots.
package offscreen

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/viewport"
	"go.uber.org/zap"
)

// Options configures a capture run.
type Options struct {
	Width, Height int

	// Frames is how many frames are animated before each snapshot. At least one frame is always rendered.
	Frames int

	// Progress lists the scroll progress of each snapshot, in order. Empty captures a single snapshot at 0.
	Progress []float64

	OutputDir string

	Workers  int
	Backdrop []backdrop.BackdropBuilderOption
	Logger   *zap.Logger
}

// Snapshot describes one written frame.
type Snapshot struct {
	Progress float64
	Path     string
	Frame    uint64
}

// Capture mounts a backdrop on a headless viewport, animates it with a manual scheduler and writes one PNG per
// progress value. The animation continues across snapshots, so later snapshots show a later point in time.
//
// Parameters:
//   - ctx: checked between frames
//   - opts: the capture options
//
// Returns:
//   - []Snapshot: the written snapshots
//   - error: a setup, render or write error, or ctx.Err()
func Capture(ctx context.Context, opts Options) ([]Snapshot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	progress := opts.Progress
	if len(progress) == 0 {
		progress = []float64{0}
	}
	frames := max(opts.Frames, 1)

	vp, err := viewport.NewHeadless(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var surface renderer.Renderer
	factory := func(w, h int) (backdrop.Surface, error) {
		ropts := []renderer.RendererBuilderOption{
			renderer.WithPresenter(renderer.NewOffscreenPresenter()),
			renderer.WithLogger(logger.Named("renderer")),
		}
		if opts.Workers > 0 {
			ropts = append(ropts, renderer.WithWorkers(opts.Workers))
		}
		r, err := renderer.NewRenderer(w, h, ropts...)
		if err != nil {
			return nil, err
		}
		surface = r
		return r, nil
	}

	sched := scheduler.NewManual()
	b := backdrop.NewBackdrop(vp, vp, sched, factory,
		append([]backdrop.BackdropBuilderOption{backdrop.WithLogger(logger.Named("backdrop"))}, opts.Backdrop...)...)
	if err := b.Mount(ctx); err != nil {
		return nil, err
	}
	defer b.Unmount()

	out := make([]Snapshot, 0, len(progress))
	for i, p := range progress {
		b.SetScrollProgress(p)
		for range frames {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			sched.Step(1.0 / 60)
		}

		path := filepath.Join(opts.OutputDir, fmt.Sprintf("backdrop_%02d_p%03d.png", i, int(math.Round(b.ScrollProgress()*100))))
		if err := writePNG(surface, path); err != nil {
			return out, err
		}
		snap := Snapshot{Progress: b.ScrollProgress(), Path: path, Frame: surface.FrameCount()}
		out = append(out, snap)
		logger.Info("snapshot written", zap.String("path", path), zap.Float64("progress", snap.Progress), zap.Uint64("frame", snap.Frame))
	}
	return out, nil
}

func writePNG(r renderer.Renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.EncodePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
