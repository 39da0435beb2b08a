package platform

type Event interface{}

// Key is a backend independent key identifier. Backends map their own
// key codes onto it; anything without a mapping is KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// Quit is a window-close request.
type Quit struct{}

type Expose struct{}
type KeyPress struct {
	Code  uint64
	Key   Key
	Label string
}
type KeyRelease struct {
	Code  uint64
	Key   Key
	Label string
}
type ButtonPress struct {
	Button uint32
	X, Y   int
}
type ButtonRelease struct {
	Button uint32
	X, Y   int
}
type MotionNotify struct {
	X, Y int
}
type MouseWheel struct {
	DeltaX float64
	DeltaY float64
	X, Y   int
}
type UnexpectedEvent struct{}
