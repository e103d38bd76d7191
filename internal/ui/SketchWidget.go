package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"

	"PhotoSketch/internal/surface"
)

// SketchWidget shows a drawing surface and feeds it pointer events. The
// surface works in pixels; the widget converts from fyne's device
// independent units using the scale of the last rendered frame.
type SketchWidget struct {
	widget.BaseWidget

	surface *surface.Surface
	raster  *canvas.Raster

	mu    sync.Mutex // guards scale
	scale float32

	// OnResize is called with the new pixel size after the surface resized.
	OnResize func(w, h int)
}

var _ fyne.Widget = (*SketchWidget)(nil)
var _ fyne.Draggable = (*SketchWidget)(nil)
var _ desktop.Mouseable = (*SketchWidget)(nil)
var _ mobile.Touchable = (*SketchWidget)(nil)

func NewSketchWidget(s *surface.Surface) *SketchWidget {
	w := &SketchWidget{surface: s, scale: 1}
	w.raster = canvas.NewRaster(w.draw)
	s.OnInvalidate = w.invalidate
	w.ExtendBaseWidget(w)
	return w
}

func (w *SketchWidget) Surface() *surface.Surface { return w.surface }

// Scale is the number of pixels per fyne unit.
func (w *SketchWidget) Scale() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale
}

func (w *SketchWidget) invalidate() {
	if w.raster != nil {
		w.raster.Refresh()
	}
}

// draw is the raster generator. It runs with the pixel size fyne is about
// to display, so the surface is resized to match before rendering.
func (w *SketchWidget) draw(pw, ph int) image.Image {
	if pw <= 0 || ph <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	if size := w.Size(); size.Width > 0 {
		w.mu.Lock()
		w.scale = float32(pw) / size.Width
		w.mu.Unlock()
	}

	ow, oh := w.surface.Size()
	if ow != pw || oh != ph {
		// resizing invalidates; keep that from queueing another frame
		cb := w.surface.OnInvalidate
		w.surface.OnInvalidate = nil
		w.surface.Resize(pw, ph)
		w.surface.OnInvalidate = cb
		if w.OnResize != nil {
			w.OnResize(pw, ph)
		}
	}

	dc := gg.NewContext(pw, ph)
	defer dc.Close()
	w.surface.Render(dc)
	return dc.Image()
}

func (w *SketchWidget) toPixels(p fyne.Position) (float64, float64) {
	s := w.Scale()
	return float64(p.X * s), float64(p.Y * s)
}

func (w *SketchWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.surface.PointerDown(w.toPixels(e.Position))
}

func (w *SketchWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.surface.PointerUp()
}

func (w *SketchWidget) Dragged(e *fyne.DragEvent) {
	w.surface.PointerMove(w.toPixels(e.Position))
}

func (w *SketchWidget) DragEnd() {
	w.surface.PointerUp()
}

func (w *SketchWidget) TouchDown(e *mobile.TouchEvent) {
	w.surface.PointerDown(w.toPixels(e.Position))
}

func (w *SketchWidget) TouchUp(*mobile.TouchEvent) {
	w.surface.PointerUp()
}

func (w *SketchWidget) TouchCancel(*mobile.TouchEvent) {
	w.surface.PointerCancel()
}

func (w *SketchWidget) CreateRenderer() fyne.WidgetRenderer {
	return &sketchRenderer{sketch: w}
}

type sketchRenderer struct {
	sketch *SketchWidget
}

func (r *sketchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.sketch.raster}
}

func (r *sketchRenderer) Layout(size fyne.Size) {
	r.sketch.raster.Resize(size)
}

func (r *sketchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *sketchRenderer) Refresh() {
	r.sketch.raster.Refresh()
}

func (r *sketchRenderer) Destroy() {}
