package renderer

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	navy  = common.ColorFromHex(0x003366)
	white = common.ColorFromHex(0xffffff)
)

func testCamera(aspect float32) camera.Camera {
	return camera.NewCamera(
		camera.WithFovDegrees(75),
		camera.WithAspect(aspect),
		camera.WithNear(0.1),
		camera.WithFar(1000),
		camera.WithController(camera.NewFixedController([3]float32{0, 0, 150}, [3]float32{})),
	)
}

func newTestRenderer(t *testing.T, w, h int, opts ...RendererBuilderOption) Renderer {
	t.Helper()
	r, err := NewRenderer(w, h, append([]RendererBuilderOption{WithWorkers(2)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func pixel(t *testing.T, r Renderer, x, y int) [3]int {
	t.Helper()
	img := r.Image()
	require.NotNil(t, img)
	c := img.RGBAAt(x, y)
	return [3]int{int(c.R), int(c.G), int(c.B)}
}

func assertPixel(t *testing.T, want common.Color, got [3]int) {
	t.Helper()
	assert.InDelta(t, want.R*255, got[0], 1.5)
	assert.InDelta(t, want.G*255, got[1], 1.5)
	assert.InDelta(t, want.B*255, got[2], 1.5)
}

func TestNewRendererRejectsInvalidSize(t *testing.T) {
	_, err := NewRenderer(0, 100)
	assert.ErrorIs(t, err, viewport.ErrInvalidSize)
}

func TestRenderClearsToClearColor(t *testing.T) {
	r := newTestRenderer(t, 64, 32, WithClearColor(navy))
	assert.Nil(t, r.Image())

	require.NoError(t, r.Render(nil, nil))
	assertPixel(t, navy, pixel(t, r, 0, 0))
	assertPixel(t, navy, pixel(t, r, 63, 31))
	assert.Equal(t, uint64(1), r.FrameCount())
	assert.Equal(t, "backdrop-canvas", r.Label())
}

func TestRenderDrawsDiscAtCenter(t *testing.T) {
	r := newTestRenderer(t, 200, 200, WithClearColor(navy))
	list := &DrawList{Layers: []Layer{{
		Name:    "signals",
		Color:   white,
		Opacity: 1,
		Shapes:  []Shape{Disc(common.Vec3{}, 20)},
	}}}

	require.NoError(t, r.Render(list, testCamera(1)))
	assertPixel(t, white, pixel(t, r, 100, 100))
	assertPixel(t, navy, pixel(t, r, 2, 2))
}

func TestInvisibleLayersAreSkipped(t *testing.T) {
	r := newTestRenderer(t, 100, 100, WithClearColor(navy))
	list := &DrawList{Layers: []Layer{
		{Color: white, Opacity: 0, Blend: BlendAdditive, Shapes: []Shape{Quad(common.Vec3{}, 50, 50)}},
		{Color: white, Opacity: 1},
	}}

	require.NoError(t, r.Render(list, testCamera(1)))
	assertPixel(t, navy, pixel(t, r, 50, 50))
}

func TestAdditiveLayerBrightens(t *testing.T) {
	r := newTestRenderer(t, 100, 100, WithClearColor(navy))
	list := &DrawList{Layers: []Layer{{
		Color:   common.ColorFromHex(0xe0ffff),
		Opacity: 0.7,
		Blend:   BlendAdditive,
		Shapes:  []Shape{Quad(common.Vec3{}, 40, 40)},
	}}}

	require.NoError(t, r.Render(list, testCamera(1)))
	got := pixel(t, r, 50, 50)
	assert.Greater(t, got[0], int(navy.R*255))
	assert.Greater(t, got[1], int(navy.G*255))
	assert.Greater(t, got[2], int(navy.B*255))
}

func TestRenderCullsOutsideFrustum(t *testing.T) {
	r := newTestRenderer(t, 100, 100)
	list := &DrawList{Layers: []Layer{{
		Color:   white,
		Opacity: 1,
		Shapes: []Shape{
			Disc(common.Vec3{X: 5000}, 1),
			Ring(common.Vec3{Z: -2000}, 0.4, 0.6),
			Disc(common.Vec3{}, 1),
		},
	}}}

	require.NoError(t, r.Render(list, testCamera(1)))
	assert.Equal(t, 2, r.LastCulled())
	assert.Equal(t, 3, list.ShapeCount())
}

func TestSetSizeReconfiguresPresenter(t *testing.T) {
	p := NewOffscreenPresenter()
	r := newTestRenderer(t, 40, 30, WithPresenter(p))

	w, h := p.Size()
	assert.Equal(t, [2]int{40, 30}, [2]int{w, h})

	require.NoError(t, r.SetSize(80, 60))
	w, h = r.Size()
	assert.Equal(t, [2]int{80, 60}, [2]int{w, h})
	w, h = p.Size()
	assert.Equal(t, [2]int{80, 60}, [2]int{w, h})

	assert.ErrorIs(t, r.SetSize(0, 60), viewport.ErrInvalidSize)

	require.NoError(t, r.Render(nil, nil))
	require.NoError(t, r.Render(nil, nil))
	assert.Equal(t, uint64(2), p.Presented())
	last := p.Last()
	require.NotNil(t, last)
	assert.Equal(t, 80, last.Bounds().Dx())
	assert.Equal(t, 60, last.Bounds().Dy())
}

func TestEncodePNG(t *testing.T) {
	r := newTestRenderer(t, 16, 8, WithClearColor(navy))
	var buf bytes.Buffer
	assert.Error(t, r.EncodePNG(&buf), "nothing rendered yet")

	require.NoError(t, r.Render(nil, nil))
	require.NoError(t, r.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestCloseIsIdempotent(t *testing.T) {
	p := NewOffscreenPresenter()
	r, err := NewRenderer(10, 10, WithWorkers(1), WithPresenter(p))
	require.NoError(t, err)
	require.NoError(t, r.Render(nil, nil))

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Nil(t, p.Last())
	assert.ErrorIs(t, r.Render(nil, nil), ErrClosed)
}

func TestClearColorRoundTrip(t *testing.T) {
	r := newTestRenderer(t, 4, 4)
	r.SetClearColor(navy)
	assert.Equal(t, navy, r.ClearColor())
}
