package gfx

import "github.com/kjkrol/gorast/internal/platform"

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Borderless bool
}

func (w WindowConfig) convert() platform.WindowConfig {
	return platform.WindowConfig{Width: w.Width, Height: w.Height, Title: w.Title, Borderless: w.Borderless}
}

// BackendOptions tunes the presentation backend. Backends ignore the
// fields they have no use for.
type BackendOptions struct {
	// Frames makes the headless backend request a quit after that many
	// presented frames.
	Frames int
	// Snapshot is where the headless backend writes its last frame as BMP.
	Snapshot string
}

func (o BackendOptions) convert() platform.Options {
	return platform.Options{Frames: o.Frames, Snapshot: o.Snapshot}
}

// Failure kinds returned by Startup and SetupResources. Match them with
// errors.Is; errors.As with *SetupError yields the failing resource.
var (
	ErrSubsystemInit       = platform.ErrSubsystemInit
	ErrResourceCreation    = platform.ErrResourceCreation
	ErrAllocation          = platform.ErrAllocation
	ErrBackendNotAvailable = platform.ErrBackendNotAvailable
)

type SetupError = platform.SetupError

// Open instantiates the backend registered under name and returns a
// Lifecycle for a window described by conf. Nothing is initialized until
// Startup.
func Open(name string, conf WindowConfig, opts BackendOptions) (*Lifecycle, error) {
	backend, err := platform.Open(name, opts.convert())
	if err != nil {
		return nil, err
	}
	return newLifecycle(backend, conf), nil
}

// Backends lists the names Open accepts.
func Backends() []string {
	return platform.Available()
}
