package controls

// State is the status of the gesture state machine.
type State int

const (
	// Still means no gesture or animation is in progress.
	Still State = iota
	// Preparing means a pointer is down but has not moved far enough to
	// commit to an axis.
	Preparing
	// Rotating means an axis is committed and drag deltas rotate the layer
	// or cube directly. Keyboard and scramble moves also run in this state.
	Rotating
	// Animating means the pointer was released and the rotation is easing
	// toward its snapped target.
	Animating
)

func (s State) String() string {
	switch s {
	case Still:
		return "still"
	case Preparing:
		return "preparing"
	case Rotating:
		return "rotating"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// FlipType says what a gesture rotates.
type FlipType int

const (
	// LayerFlip turns one layer of pieces.
	LayerFlip FlipType = iota
	// CubeFlip reorients the whole cube.
	CubeFlip
)

func (f FlipType) String() string {
	if f == CubeFlip {
		return "cube"
	}
	return "layer"
}
