package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kjkrol/gorast/internal/platform"
)

func convert(event tcell.Event) platform.Event {
	switch e := event.(type) {
	case *tcell.EventKey:
		// Ctrl+C is the terminal's way of closing the "window".
		if e.Key() == tcell.KeyCtrlC {
			return platform.Quit{}
		}
		return platform.KeyPress{Code: uint64(e.Key()), Key: convertKey(e), Label: e.Name()}
	case *tcell.EventResize:
		return platform.Expose{}
	case *tcell.EventMouse:
		// one cell holds two pixel rows
		x, y := e.Position()
		y *= 2
		buttons := e.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			return platform.MouseWheel{DeltaY: 1, X: x, Y: y}
		case buttons&tcell.WheelDown != 0:
			return platform.MouseWheel{DeltaY: -1, X: x, Y: y}
		case buttons&tcell.Button1 != 0:
			return platform.ButtonPress{Button: 1, X: x, Y: y}
		case buttons&tcell.Button3 != 0:
			return platform.ButtonPress{Button: 2, X: x, Y: y}
		case buttons&tcell.Button2 != 0:
			return platform.ButtonPress{Button: 3, X: x, Y: y}
		default:
			return platform.MotionNotify{X: x, Y: y}
		}
	}
	return platform.UnexpectedEvent{}
}

func convertKey(e *tcell.EventKey) platform.Key {
	switch e.Key() {
	case tcell.KeyEscape:
		return platform.KeyEscape
	case tcell.KeyEnter:
		return platform.KeyEnter
	case tcell.KeyRune:
		if e.Rune() == ' ' {
			return platform.KeySpace
		}
	}
	return platform.KeyUnknown
}
