package platform

// WindowConfig describes the native window a backend creates.
type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Borderless bool
}

// Backend is the windowing subsystem together with its input queue.
// Init must succeed before CreateWindow is called; Quit shuts the
// subsystem down and must come after every window has been destroyed.
type Backend interface {
	InputSource
	Init() error
	CreateWindow(conf WindowConfig) (Window, error)
	Quit()
}

// InputSource is the platform event queue.
type InputSource interface {
	// PollEvent returns the next queued event or nil when the queue is
	// empty. It never blocks.
	PollEvent() Event
}

type Window interface {
	CreateRenderer() (Renderer, error)
	Destroy()
}

// Renderer is the drawing context bound to a Window.
type Renderer interface {
	// CreateStreamingImage allocates a packed ARGB8888 image meant to be
	// re-uploaded every frame.
	CreateStreamingImage(width, height int) (StreamingImage, error)
	// Copy blits the whole image onto the render target.
	Copy(img StreamingImage) error
	Present()
	Destroy()
}

type StreamingImage interface {
	// Update replaces the whole image with pixels laid out row by row,
	// stride bytes apart.
	Update(pixels []uint32, stride int) error
	Destroy()
}

// Options carries backend specific tuning resolved from configuration.
type Options struct {
	// Frames makes the headless backend deliver Quit after that many
	// presented frames. Zero means never.
	Frames int
	// Snapshot is a path the headless backend writes the last presented
	// frame to, as BMP.
	Snapshot string
}
