package state

// StrokeList is the ordered set of strokes on a surface. Index order is paint
// order. Only the tail may be unsealed.
type StrokeList struct {
	strokes []*Stroke
}

func NewStrokeList() *StrokeList {
	return &StrokeList{strokes: make([]*Stroke, 0, 16)}
}

// Active returns the unsealed tail stroke, or nil.
func (l *StrokeList) Active() *Stroke {
	if len(l.strokes) == 0 {
		return nil
	}
	tail := l.strokes[len(l.strokes)-1]
	if tail.Sealed {
		return nil
	}
	return tail
}

// Begin starts a new active stroke at start. The previous active stroke is
// sealed, unless nothing was drawn into it: an empty tail is replaced in
// place so repeated taps do not pile up empty strokes.
func (l *StrokeList) Begin(style Style, eraser bool, start Point) *Stroke {
	s := newStroke(style, eraser, start)
	if tail := l.Active(); tail != nil {
		if !tail.Extended() {
			l.strokes[len(l.strokes)-1] = s
			return s
		}
		tail.Seal()
	}
	l.strokes = append(l.strokes, s)
	return s
}

func (l *StrokeList) Len() int { return len(l.strokes) }

// SealedCount returns the number of finished strokes.
func (l *StrokeList) SealedCount() int {
	n := 0
	for _, s := range l.strokes {
		if s.Sealed {
			n++
		}
	}
	return n
}

// All returns a snapshot of the list. The strokes themselves are shared.
func (l *StrokeList) All() []*Stroke {
	out := make([]*Stroke, len(l.strokes))
	copy(out, l.strokes)
	return out
}

// Sealed returns the finished strokes in paint order.
func (l *StrokeList) Sealed() []*Stroke {
	out := make([]*Stroke, 0, len(l.strokes))
	for _, s := range l.strokes {
		if s.Sealed {
			out = append(out, s)
		}
	}
	return out
}
