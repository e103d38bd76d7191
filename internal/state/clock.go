package state

import (
	"sync/atomic"
)

var (
	seq            uint64
	OnStrokeSealed func(*Stroke) // set by main/surface to observe finished strokes
)

// nextSeq hands out stroke sequence numbers. Sequence order equals paint
// order within one StrokeList.
func nextSeq() uint64 {
	return atomic.AddUint64(&seq, 1)
}
