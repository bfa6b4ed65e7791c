package renderer

import (
	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/gogpu/gg"
)

// minPixelSize keeps far-away discs and streaks from vanishing below one pixel.
const minPixelSize = 0.75

// toRGBA converts a straight colour plus alpha into the gg colour type.
func toRGBA(c common.Color, a float64) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// rasterize draws the projected layers onto dc, which must already be cleared.
//
// Parameters:
//   - dc: the gg drawing context
//   - layers: the projected layers in back-to-front order
//
// Returns:
//   - error: the first stroke or fill error encountered
func rasterize(dc *gg.Context, layers []screenLayer) error {
	for i := range layers {
		l := &layers[i]
		if len(l.shapes) == 0 {
			continue
		}
		var err error
		switch l.src.Blend {
		case BlendAdditive:
			dc.PushLayer(gg.BlendScreen, common.Clamp(l.src.Opacity, 0, 1))
			err = drawShapes(dc, l, 1)
			dc.PopLayer()
		default:
			err = drawShapes(dc, l, common.Clamp(l.src.Opacity, 0, 1))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func drawShapes(dc *gg.Context, l *screenLayer, alpha float64) error {
	col := toRGBA(l.src.Color, alpha)
	lineWidth := common.Coalesce(l.src.LineWidth, 1.0)

	for i := range l.shapes {
		s := &l.shapes[i]
		dc.SetColor(col)

		switch s.kind {
		case ShapePolyline:
			dc.SetLineWidth(lineWidth)
			for _, strip := range s.strips {
				dc.MoveTo(strip[0].X, strip[0].Y)
				for _, pt := range strip[1:] {
					dc.LineTo(pt.X, pt.Y)
				}
			}
			if err := dc.Stroke(); err != nil {
				return err
			}

		case ShapeRing:
			// An annulus is a circle stroked along its mid radius.
			width := max(s.radius-s.inner, minPixelSize)
			dc.SetLineWidth(width)
			dc.DrawCircle(s.center.X, s.center.Y, (s.radius+s.inner)/2)
			if err := dc.Stroke(); err != nil {
				return err
			}

		case ShapeDisc:
			dc.DrawCircle(s.center.X, s.center.Y, max(s.radius, minPixelSize))
			if err := dc.Fill(); err != nil {
				return err
			}

		case ShapeQuad:
			w := max(s.width, minPixelSize)
			h := max(s.height, minPixelSize)
			dc.DrawRectangle(s.center.X-w/2, s.center.Y-h/2, w, h)
			if err := dc.Fill(); err != nil {
				return err
			}
		}
	}
	return nil
}
