package state

import (
	"image/color"
	"time"

	"github.com/google/uuid"
)

type Point struct{ X, Y float64 }

// Mid returns the point halfway between p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

type Join int

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style is the paint applied to a whole stroke. It is a value: every stroke
// gets its own copy at creation time and nothing mutates it afterwards.
type Style struct {
	Color color.NRGBA
	Width float64
	Cap   Cap
	Join  Join
}

func NewStyle(c color.NRGBA, width float64) Style {
	return Style{Color: c, Width: width, Cap: CapRound, Join: JoinRound}
}

// Palette holds the two colours the surface paints with.
type Palette struct {
	Foreground color.NRGBA
	Background color.NRGBA
	Width      float64
}

// StyleFor picks the style for a new stroke. The eraser paints with the
// background colour.
func (p Palette) StyleFor(eraser bool) Style {
	if eraser {
		return NewStyle(p.Background, p.Width)
	}
	return NewStyle(p.Foreground, p.Width)
}

type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegQuadTo
	SegLineTo
)

type Segment struct {
	Kind SegmentKind
	Ctrl Point // QuadTo only
	To   Point
}

type Stroke struct {
	ID       string
	Seq      uint64
	Style    Style
	Eraser   bool
	Segments []Segment
	Sealed   bool
	Time     time.Time
}

func newStroke(style Style, eraser bool, start Point) *Stroke {
	return &Stroke{
		ID:       uuid.NewString(),
		Seq:      nextSeq(),
		Style:    style,
		Eraser:   eraser,
		Segments: []Segment{{Kind: SegMoveTo, To: start}},
		Time:     time.Now(),
	}
}

func (s *Stroke) QuadTo(ctrl, to Point) {
	if s.Sealed {
		return
	}
	s.Segments = append(s.Segments, Segment{Kind: SegQuadTo, Ctrl: ctrl, To: to})
}

func (s *Stroke) LineTo(to Point) {
	if s.Sealed {
		return
	}
	s.Segments = append(s.Segments, Segment{Kind: SegLineTo, To: to})
}

func (s *Stroke) Seal() {
	if s.Sealed {
		return
	}
	s.Sealed = true
	if OnStrokeSealed != nil {
		OnStrokeSealed(s)
	}
}

func (s *Stroke) Len() int { return len(s.Segments) }

// Extended reports whether anything was drawn past the initial cursor.
func (s *Stroke) Extended() bool { return len(s.Segments) > 1 }

// Start returns the initial cursor position.
func (s *Stroke) Start() Point {
	if len(s.Segments) == 0 {
		return Point{}
	}
	return s.Segments[0].To
}

// Bounds covers every point and control point of the stroke, padded by half
// the line width so round caps are inside.
func (s *Stroke) Bounds() Rect {
	if len(s.Segments) == 0 {
		return Rect{}
	}
	pts := make([]Point, 0, len(s.Segments)*2)
	for _, seg := range s.Segments {
		if seg.Kind == SegQuadTo {
			pts = append(pts, seg.Ctrl)
		}
		pts = append(pts, seg.To)
	}
	return BoundsOf(pts).Inset(-s.Style.Width / 2)
}
