// Package surface implements the freehand drawing surface: it turns pointer
// events into strokes, keeps an optional photo overlay, and rasterizes the
// result with gg.
//
// A Surface is not safe for concurrent use. All pointer events, Render
// calls and mutations are expected on one goroutine (the UI thread); only
// Capture hands its result to another goroutine.
package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"PhotoSketch/internal/state"
)

// Options configures a Surface. Zero fields take the defaults below.
type Options struct {
	Width, Height int
	Palette       state.Palette
	// Tolerance is the minimum pointer travel along either axis before a
	// new curve segment is added.
	Tolerance     float64
	OverlayOffset state.Point
}

const (
	DefaultStrokeWidth = 12
	DefaultTolerance   = 4
)

var (
	DefaultForeground    = color.NRGBA{R: 255, A: 255}
	DefaultBackground    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	DefaultOverlayOffset = state.Point{X: 100, Y: 100}
)

func (o Options) withDefaults() Options {
	if o.Palette.Width <= 0 {
		o.Palette.Width = DefaultStrokeWidth
	}
	if o.Palette.Foreground == (color.NRGBA{}) {
		o.Palette.Foreground = DefaultForeground
	}
	if o.Palette.Background == (color.NRGBA{}) {
		o.Palette.Background = DefaultBackground
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.OverlayOffset == (state.Point{}) {
		o.OverlayOffset = DefaultOverlayOffset
	}
	return o
}

type Surface struct {
	opts          Options
	width, height int

	strokes *state.StrokeList
	eraser  bool

	overlay    *state.Overlay
	overlayBuf *gg.ImageBuf

	gesture Gesture
	last    state.Point // last recorded point of the active stroke

	// backing accumulates sealed strokes; backingBuf is its drawable copy.
	backing    *gg.Context
	backingBuf *gg.ImageBuf

	// OnInvalidate is called whenever the surface needs a redraw.
	OnInvalidate func()
}

func New(opts Options) *Surface {
	s := &Surface{
		opts:    opts.withDefaults(),
		strokes: state.NewStrokeList(),
	}
	s.Resize(opts.Width, opts.Height)
	// the surface always has an active stroke ready for the next gesture
	s.strokes.Begin(s.opts.Palette.StyleFor(false), false, state.Point{})
	return s
}

func (s *Surface) Size() (w, h int) { return s.width, s.height }

func (s *Surface) Gesture() Gesture { return s.gesture }

func (s *Surface) Strokes() []*state.Stroke { return s.strokes.All() }

func (s *Surface) SealedCount() int { return s.strokes.SealedCount() }

// Overlay returns a copy of the current overlay, or nil.
func (s *Surface) Overlay() *state.Overlay {
	if s.overlay == nil {
		return nil
	}
	o := *s.overlay
	return &o
}

func (s *Surface) Palette() state.Palette { return s.opts.Palette }

// Extent is the area covered by sealed strokes and the overlay. It is empty
// for a blank surface.
func (s *Surface) Extent() state.Rect {
	var r state.Rect
	for _, st := range s.strokes.Sealed() {
		if st.Extended() {
			r = r.Union(st.Bounds())
		}
	}
	if s.overlay != nil {
		r = r.Union(s.overlay.Bounds())
	}
	return r
}

func (s *Surface) invalidate() {
	if s.OnInvalidate != nil {
		s.OnInvalidate()
	}
}

// PointerDown starts a gesture. A down inside the overlay grabs it and moves
// its corner to the pointer; anywhere else starts a stroke.
func (s *Surface) PointerDown(x, y float64) {
	p := state.Point{X: x, Y: y}
	if s.gesture == DrawingStroke {
		s.finishStroke()
	}

	ev := evDownOnCanvas
	if s.overlay.Hit(p) {
		ev = evDownOnOverlay
		s.overlay.Pos = p
	} else {
		s.beginStroke(p)
	}
	s.gesture = next(s.gesture, ev)
	logger().Debug("[SURFACE] pointer down", "x", x, "y", y, "gesture", s.gesture)
	s.invalidate()
}

// PointerMove either drags the overlay to the pointer or extends the active
// stroke with a quadratic segment through the midpoint of the last point and
// the pointer. Moves shorter than the tolerance on both axes are dropped.
func (s *Surface) PointerMove(x, y float64) {
	p := state.Point{X: x, Y: y}
	switch s.gesture {
	case DraggingOverlay:
		s.overlay.Pos = p
	case DrawingStroke:
		dx := math.Abs(p.X - s.last.X)
		dy := math.Abs(p.Y - s.last.Y)
		if dx < s.opts.Tolerance && dy < s.opts.Tolerance {
			return
		}
		if active := s.strokes.Active(); active != nil {
			active.QuadTo(s.last, s.last.Mid(p))
		}
		s.last = p
	default:
		return
	}
	s.gesture = next(s.gesture, evMove)
	s.invalidate()
}

// PointerUp ends the gesture. A stroke in progress gets a closing line to
// the last recorded point, is sealed and baked into the backing buffer, and
// a fresh empty stroke is started.
func (s *Surface) PointerUp() {
	if s.gesture == DrawingStroke {
		s.finishStroke()
	}
	s.gesture = next(s.gesture, evUp)
	s.invalidate()
}

// PointerCancel is delivered when the platform aborts a touch. The stroke
// drawn so far is kept.
func (s *Surface) PointerCancel() {
	s.PointerUp()
}

func (s *Surface) beginStroke(p state.Point) {
	s.strokes.Begin(s.opts.Palette.StyleFor(s.eraser), s.eraser, p)
	s.last = p
}

func (s *Surface) finishStroke() {
	active := s.strokes.Active()
	if active == nil {
		return
	}
	active.LineTo(s.last)
	active.Seal()
	s.bake(active)
	logger().Debug("[SURFACE] stroke sealed", "id", active.ID, "segments", active.Len(), "eraser", active.Eraser)
	s.strokes.Begin(s.opts.Palette.StyleFor(s.eraser), s.eraser, s.last)
}

// SetEraserActive switches between drawing and erasing. Only strokes begun
// after the call are affected.
func (s *Surface) SetEraserActive(on bool) {
	s.eraser = on
	logger().Info("[SURFACE] eraser", "active", on)
}

func (s *Surface) EraserActive() bool { return s.eraser }

// ToggleEraser flips eraser mode and returns the new state.
func (s *Surface) ToggleEraser() bool {
	s.SetEraserActive(!s.eraser)
	return s.eraser
}

// AttachImage replaces the overlay. The new image is placed at the default
// offset. A nil image removes the overlay.
func (s *Surface) AttachImage(img image.Image) {
	if img == nil {
		s.overlay, s.overlayBuf = nil, nil
		s.invalidate()
		return
	}
	s.overlay = &state.Overlay{Image: img, Pos: s.opts.OverlayOffset}
	s.overlayBuf = gg.ImageBufFromImage(img)
	if s.gesture == DraggingOverlay {
		s.gesture = Idle
	}
	b := img.Bounds()
	logger().Info("[SURFACE] image attached", "width", b.Dx(), "height", b.Dy())
	s.invalidate()
}

// Resize sets the native size of the surface and rebuilds the backing
// buffer from the sealed strokes.
func (s *Surface) Resize(w, h int) {
	if w == s.width && h == s.height && (s.backing != nil || w <= 0 || h <= 0) {
		return
	}
	s.width, s.height = w, h
	if s.backing != nil {
		_ = s.backing.Close()
	}
	s.backing, s.backingBuf = nil, nil
	if w <= 0 || h <= 0 {
		return
	}
	s.backing = gg.NewContext(w, h)
	view := state.Rect{W: float64(w), H: float64(h)}
	for _, st := range s.strokes.Sealed() {
		if !st.Bounds().Overlaps(view) {
			continue
		}
		drawStroke(s.backing, st)
	}
	s.refreshBacking()
	s.invalidate()
}
