package gfx

import (
	"log/slog"

	"github.com/kjkrol/gorast/internal/platform"
)

// SetLogger configures the logger used by the frame driver, the lifecycle
// manager and every presentation backend. By default nothing is logged;
// pass nil to go back to that.
//
// Levels in use:
//   - [slog.LevelError]: setup failures, one line per cause
//   - [slog.LevelWarn]: a frame that could not be uploaded or presented
//   - [slog.LevelInfo]: lifecycle milestones
//   - [slog.LevelDebug]: individual releases during teardown
func SetLogger(l *slog.Logger) {
	platform.SetLogger(l)
}

func Logger() *slog.Logger {
	return platform.Logger()
}
