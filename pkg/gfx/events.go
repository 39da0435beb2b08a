package gfx

import "github.com/kjkrol/gorast/internal/platform"

type Event interface{}

type Key = platform.Key

const (
	KeyUnknown = platform.KeyUnknown
	KeyEscape  = platform.KeyEscape
	KeyEnter   = platform.KeyEnter
	KeySpace   = platform.KeySpace
)

// CancelKey stops the frame driver when pressed.
const CancelKey = KeyEscape

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

// IsQuit reports whether event asks the frame driver to stop: a window
// close request or a press of CancelKey.
func IsQuit(event Event) bool {
	switch e := event.(type) {
	case Quit:
		return true
	case KeyPress:
		return e.Key == CancelKey
	}
	return false
}

func convert(event platform.Event) Event {
	switch e := event.(type) {
	case platform.Quit:
		return Quit{}
	case platform.KeyPress:
		return KeyPress{Code: e.Code, Key: e.Key, Label: e.Label}
	case platform.KeyRelease:
		return KeyRelease{Code: e.Code, Key: e.Key, Label: e.Label}
	case platform.ButtonPress:
		return ButtonPress{Button: e.Button, X: e.X, Y: e.Y}
	case platform.ButtonRelease:
		return ButtonRelease{Button: e.Button, X: e.X, Y: e.Y}
	case platform.MotionNotify:
		return MotionNotify{X: e.X, Y: e.Y}
	case platform.MouseWheel:
		return MouseWheel{DeltaX: e.DeltaX, DeltaY: e.DeltaY, X: e.X, Y: e.Y}
	case platform.Expose:
		return Expose{}
	default:
		return UnexpectedEvent{}
	}
}
