package state

import "image"

// Overlay is the imported picture shown underneath the strokes.
type Overlay struct {
	Image image.Image
	Pos   Point
}

func (o *Overlay) Size() (w, h float64) {
	b := o.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Bounds is the axis-aligned area the overlay covers at its current position.
func (o *Overlay) Bounds() Rect {
	w, h := o.Size()
	return Rect{X: o.Pos.X, Y: o.Pos.Y, W: w, H: h}
}

// Hit reports whether a pointer at p grabs the overlay.
func (o *Overlay) Hit(p Point) bool {
	if o == nil || o.Image == nil {
		return false
	}
	return o.Bounds().Contains(p)
}
