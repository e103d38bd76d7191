package state

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = Palette{
	Foreground: color.NRGBA{R: 255, A: 255},
	Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	Width:      12,
}

func TestBeginSealsExtendedTail(t *testing.T) {
	l := NewStrokeList()
	first := l.Begin(testPalette.StyleFor(false), false, Point{1, 1})
	first.LineTo(Point{5, 5})

	second := l.Begin(testPalette.StyleFor(false), false, Point{9, 9})

	require.Equal(t, 2, l.Len())
	assert.True(t, first.Sealed)
	assert.False(t, second.Sealed)
	assert.Same(t, second, l.Active())
	assert.Equal(t, 1, l.SealedCount())
}

func TestBeginReplacesEmptyTail(t *testing.T) {
	l := NewStrokeList()
	for i := 0; i < 5; i++ {
		l.Begin(testPalette.StyleFor(false), false, Point{float64(i), 0})
	}
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.SealedCount())
	assert.Equal(t, Point{4, 0}, l.Active().Start())
}

func TestSealedStrokeIgnoresAppends(t *testing.T) {
	l := NewStrokeList()
	s := l.Begin(testPalette.StyleFor(false), false, Point{0, 0})
	s.QuadTo(Point{0, 0}, Point{2, 2})
	s.Seal()
	s.LineTo(Point{10, 10})
	s.QuadTo(Point{1, 1}, Point{3, 3})

	assert.Equal(t, 2, s.Len())
	assert.Nil(t, l.Active())
}

func TestSealHook(t *testing.T) {
	var got []string
	OnStrokeSealed = func(s *Stroke) { got = append(got, s.ID) }
	defer func() { OnStrokeSealed = nil }()

	l := NewStrokeList()
	s := l.Begin(testPalette.StyleFor(true), true, Point{0, 0})
	s.LineTo(Point{0, 0})
	s.Seal()
	s.Seal()

	assert.Equal(t, []string{s.ID}, got)
}

func TestStyleIsCopiedPerStroke(t *testing.T) {
	p := testPalette
	l := NewStrokeList()
	s := l.Begin(p.StyleFor(false), false, Point{0, 0})

	p.Foreground = color.NRGBA{B: 255, A: 255}
	assert.Equal(t, testPalette.Foreground, s.Style.Color)
	assert.Equal(t, CapRound, s.Style.Cap)
	assert.Equal(t, JoinRound, s.Style.Join)
}

func TestSeqIncreasesInPaintOrder(t *testing.T) {
	l := NewStrokeList()
	a := l.Begin(testPalette.StyleFor(false), false, Point{})
	a.LineTo(Point{1, 1})
	b := l.Begin(testPalette.StyleFor(false), false, Point{})
	assert.Less(t, a.Seq, b.Seq)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStrokeBounds(t *testing.T) {
	l := NewStrokeList()
	s := l.Begin(NewStyle(color.NRGBA{A: 255}, 4), false, Point{10, 10})
	s.QuadTo(Point{10, 10}, Point{20, 30})

	assert.Equal(t, Rect{X: 8, Y: 8, W: 14, H: 24}, s.Bounds())
}

func TestRect(t *testing.T) {
	r := Rect{X: 100, Y: 100, W: 50, H: 20}

	assert.True(t, r.Contains(Point{100, 100}))
	assert.True(t, r.Contains(Point{149.9, 119.9}))
	assert.False(t, r.Contains(Point{150, 110}))
	assert.False(t, r.Contains(Point{120, 120}))
	assert.False(t, r.Contains(Point{99, 110}))

	u := r.Union(Rect{X: 0, Y: 0, W: 10, H: 10})
	assert.Equal(t, Rect{X: 0, Y: 0, W: 150, H: 120}, u)
	assert.Equal(t, r, r.Union(Rect{}))
	assert.True(t, r.Overlaps(u))
	assert.False(t, r.Overlaps(Rect{X: 150, Y: 100, W: 5, H: 5}))
}

func TestOverlayHit(t *testing.T) {
	var nilOverlay *Overlay
	assert.False(t, nilOverlay.Hit(Point{}))

	o := &Overlay{Image: image.NewRGBA(image.Rect(0, 0, 40, 30)), Pos: Point{100, 100}}
	assert.True(t, o.Hit(Point{100, 100}))
	assert.True(t, o.Hit(Point{139, 129}))
	assert.False(t, o.Hit(Point{140, 100}))
	assert.Equal(t, Rect{X: 100, Y: 100, W: 40, H: 30}, o.Bounds())
}
