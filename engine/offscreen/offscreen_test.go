package offscreen

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureWritesOnePNGPerProgress(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	snaps, err := Capture(context.Background(), Options{
		Width:     96,
		Height:    54,
		Frames:    3,
		Progress:  []float64{0, 0.25, 2},
		OutputDir: dir,
		Workers:   1,
		Backdrop:  []backdrop.BackdropBuilderOption{backdrop.WithSeed(4), backdrop.WithTraceCount(8), backdrop.WithStreakCount(30)},
	})
	require.NoError(t, err)
	require.Len(t, snaps, 3)

	assert.Equal(t, []float64{0, 0.25, 1}, []float64{snaps[0].Progress, snaps[1].Progress, snaps[2].Progress})
	assert.Equal(t, []uint64{3, 6, 9}, []uint64{snaps[0].Frame, snaps[1].Frame, snaps[2].Frame})
	assert.Equal(t, filepath.Join(dir, "backdrop_02_p100.png"), snaps[2].Path)

	for _, s := range snaps {
		f, err := os.Open(s.Path)
		require.NoError(t, err)
		img, err := png.Decode(f)
		_ = f.Close()
		require.NoError(t, err)
		assert.Equal(t, 96, img.Bounds().Dx())
		assert.Equal(t, 54, img.Bounds().Dy())
	}

	// Past the halfway point the frame is cleared to the streak backdrop colour.
	f, err := os.Open(snaps[2].Path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.InDelta(t, 0x00, r>>8, 2)
	assert.InDelta(t, 0x33, g>>8, 2)
	assert.InDelta(t, 0x66, b>>8, 2)
}

func TestCaptureDefaults(t *testing.T) {
	snaps, err := Capture(context.Background(), Options{Width: 8, Height: 8, OutputDir: t.TempDir(), Workers: 1})
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Zero(t, snaps[0].Progress)
	assert.Equal(t, uint64(1), snaps[0].Frame)
}

func TestCaptureRejectsInvalidSize(t *testing.T) {
	_, err := Capture(context.Background(), Options{Width: 0, Height: 8, OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, viewport.ErrInvalidSize)
}

func TestCaptureHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snaps, err := Capture(ctx, Options{Width: 8, Height: 8, OutputDir: t.TempDir(), Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, snaps)
}
