package gfx

// Backends without native dependencies are always available. The SDL
// backend needs cgo and is linked in by importing pkg/gfx/sdl.
import (
	_ "github.com/kjkrol/gorast/internal/platform/headless"
	_ "github.com/kjkrol/gorast/internal/platform/terminal"
)
