// Package sdl links the SDL2 presentation backend into the program, making
// "sdl" available to gfx.Open. Import it for its side effect; it requires
// cgo and the SDL2 development libraries.
package sdl

import _ "github.com/kjkrol/gorast/internal/platform/sdl2"
