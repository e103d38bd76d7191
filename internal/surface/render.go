package surface

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"PhotoSketch/internal/state"
)

// Render paints the surface into dc: background, overlay, baked strokes,
// then the stroke in progress. It does not modify the surface, so it may be
// called as often as the host likes.
func (s *Surface) Render(dc *gg.Context) {
	dc.ClearWithColor(gg.FromColor(s.opts.Palette.Background))
	if s.overlay != nil && s.overlayBuf != nil {
		s.drawOverlay(dc)
	}
	if s.backingBuf != nil {
		dc.DrawImageEx(s.backingBuf, gg.DrawImageOptions{
			Interpolation: gg.InterpBilinear,
			Opacity:       1,
			BlendMode:     gg.BlendNormal,
		})
	}
	if active := s.strokes.Active(); active != nil && active.Extended() {
		drawStroke(dc, active)
	}
}

// ExportBitmap renders the surface off-screen at its native size. The
// result does not alias any surface state.
func (s *Surface) ExportBitmap() *image.RGBA {
	if s.width <= 0 || s.height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	dc := gg.NewContext(s.width, s.height)
	defer dc.Close()
	s.Render(dc)
	return toRGBA(dc.Image())
}

// drawOverlay draws only the part of the overlay that lies on the surface,
// so gg never has to clamp (and stretch) a partly off-screen image.
func (s *Surface) drawOverlay(dc *gg.Context) {
	w, h := s.overlay.Size()
	x, y := s.overlay.Pos.X, s.overlay.Pos.Y
	visible := image.Rect(0, 0, int(w), int(h)).Intersect(image.Rect(
		int(math.Floor(-x)), int(math.Floor(-y)),
		int(math.Ceil(float64(s.width)-x)), int(math.Ceil(float64(s.height)-y)),
	))
	if visible.Empty() {
		return
	}
	dc.DrawImageEx(s.overlayBuf, gg.DrawImageOptions{
		X:             x + float64(visible.Min.X),
		Y:             y + float64(visible.Min.Y),
		DstWidth:      float64(visible.Dx()),
		DstHeight:     float64(visible.Dy()),
		SrcRect:       &visible,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

func (s *Surface) bake(st *state.Stroke) {
	if s.backing == nil {
		return
	}
	drawStroke(s.backing, st)
	s.refreshBacking()
}

func (s *Surface) refreshBacking() {
	s.backingBuf = gg.ImageBufFromImage(s.backing.Image())
}

func drawStroke(dc *gg.Context, st *state.Stroke) {
	if !st.Extended() {
		return
	}
	dc.SetColor(st.Style.Color)
	dc.SetStroke(gg.Stroke{
		Width:      st.Style.Width,
		Cap:        lineCap(st.Style.Cap),
		Join:       lineJoin(st.Style.Join),
		MiterLimit: 4,
	})
	for _, seg := range st.Segments {
		switch seg.Kind {
		case state.SegMoveTo:
			dc.MoveTo(seg.To.X, seg.To.Y)
		case state.SegQuadTo:
			dc.QuadraticTo(seg.Ctrl.X, seg.Ctrl.Y, seg.To.X, seg.To.Y)
		case state.SegLineTo:
			dc.LineTo(seg.To.X, seg.To.Y)
		}
	}
	if err := dc.Stroke(); err != nil {
		logger().Warn("[SURFACE] stroke failed", "id", st.ID, "err", err)
	}
}

func lineCap(c state.Cap) gg.LineCap {
	switch c {
	case state.CapRound:
		return gg.LineCapRound
	case state.CapSquare:
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

func lineJoin(j state.Join) gg.LineJoin {
	switch j {
	case state.JoinRound:
		return gg.LineJoinRound
	case state.JoinBevel:
		return gg.LineJoinBevel
	}
	return gg.LineJoinMiter
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(out, image.Point{}, img, b, draw.Src, nil)
	return out
}
