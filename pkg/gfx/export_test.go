package gfx

import "github.com/kjkrol/gorast/internal/platform"

// NewLifecycleWith binds a lifecycle to a backend instance the test keeps
// a handle on.
func NewLifecycleWith(backend platform.Backend, conf WindowConfig) *Lifecycle {
	return newLifecycle(backend, conf)
}

// HoldsPresentation reports whether the renderer or the streaming image is
// still held.
func HoldsPresentation(l *Lifecycle) bool {
	return l.renderer != nil || l.image != nil
}
