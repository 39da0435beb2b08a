package sdl2

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/kjkrol/gorast/internal/platform"
)

func convert(event sdl.Event) platform.Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return platform.Quit{}
	case *sdl.KeyboardEvent:
		code := uint64(e.Keysym.Scancode)
		key := convertKey(e.Keysym.Sym)
		label := sdl.GetKeyName(e.Keysym.Sym)
		if e.Type == sdl.KEYDOWN {
			return platform.KeyPress{Code: code, Key: key, Label: label}
		}
		return platform.KeyRelease{Code: code, Key: key, Label: label}
	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN {
			return platform.ButtonPress{Button: uint32(e.Button), X: int(e.X), Y: int(e.Y)}
		}
		return platform.ButtonRelease{Button: uint32(e.Button), X: int(e.X), Y: int(e.Y)}
	case *sdl.MouseMotionEvent:
		return platform.MotionNotify{X: int(e.X), Y: int(e.Y)}
	case *sdl.MouseWheelEvent:
		dx, dy := float64(e.X), float64(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dx, dy = -dx, -dy
		}
		mx, my, _ := sdl.GetMouseState()
		return platform.MouseWheel{DeltaX: dx, DeltaY: dy, X: int(mx), Y: int(my)}
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_EXPOSED {
			return platform.Expose{}
		}
	}
	return platform.UnexpectedEvent{}
}

func convertKey(sym sdl.Keycode) platform.Key {
	switch sym {
	case sdl.K_ESCAPE:
		return platform.KeyEscape
	case sdl.K_RETURN:
		return platform.KeyEnter
	case sdl.K_SPACE:
		return platform.KeySpace
	default:
		return platform.KeyUnknown
	}
}
