package surface

// Gesture is what the pointer currently manipulates.
type Gesture int

const (
	Idle Gesture = iota
	DrawingStroke
	DraggingOverlay
)

func (g Gesture) String() string {
	switch g {
	case Idle:
		return "idle"
	case DrawingStroke:
		return "drawing"
	case DraggingOverlay:
		return "dragging"
	}
	return "unknown"
}

type pointerEvent int

const (
	evDownOnOverlay pointerEvent = iota
	evDownOnCanvas
	evMove
	evUp
)

// transitions[state][event] is the next gesture state. A down always
// restarts the gesture, whatever was in progress.
var transitions = [...][4]Gesture{
	Idle: {
		evDownOnOverlay: DraggingOverlay,
		evDownOnCanvas:  DrawingStroke,
		evMove:          Idle,
		evUp:            Idle,
	},
	DrawingStroke: {
		evDownOnOverlay: DraggingOverlay,
		evDownOnCanvas:  DrawingStroke,
		evMove:          DrawingStroke,
		evUp:            Idle,
	},
	DraggingOverlay: {
		evDownOnOverlay: DraggingOverlay,
		evDownOnCanvas:  DrawingStroke,
		evMove:          DraggingOverlay,
		evUp:            Idle,
	},
}

func next(g Gesture, ev pointerEvent) Gesture {
	return transitions[g][ev]
}
