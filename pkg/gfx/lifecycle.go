package gfx

import (
	"errors"

	"github.com/kjkrol/gorast/internal/platform"
	"github.com/kjkrol/gorast/pkg/framebuffer"
)

var ErrNotStarted = errors.New("presentation surface not started")

// Lifecycle brings the presentation stack up in dependency order
// (subsystem, window, renderer, framebuffer, streaming image) and releases
// it in exactly the reverse order.
type Lifecycle struct {
	backend platform.Backend
	conf    WindowConfig

	subsystem bool
	window    platform.Window
	renderer  platform.Renderer
	image     platform.StreamingImage
	fb        *framebuffer.Framebuffer
	running   bool
}

func newLifecycle(backend platform.Backend, conf WindowConfig) *Lifecycle {
	return &Lifecycle{backend: backend, conf: conf}
}

// Startup initializes the windowing subsystem, creates the window and the
// renderer bound to it. The first failing step stops the sequence; its
// cause is logged and returned as a *platform.SetupError.
func (l *Lifecycle) Startup() error {
	if err := l.backend.Init(); err != nil {
		return l.fail(platform.SubsystemInitError("windowing subsystem", err))
	}
	l.subsystem = true

	window, err := l.backend.CreateWindow(l.conf.convert())
	if err != nil {
		return l.fail(platform.ResourceCreationError("window", err))
	}
	l.window = window

	renderer, err := window.CreateRenderer()
	if err != nil {
		return l.fail(platform.ResourceCreationError("renderer", err))
	}
	l.renderer = renderer

	l.running = true
	Logger().Info("presentation surface ready", "width", l.conf.Width, "height", l.conf.Height)
	return nil
}

// SetupResources allocates the framebuffer and a streaming image of the
// same size. The framebuffer content is undefined until the first clear.
// On failure the caller is expected to Teardown.
func (l *Lifecycle) SetupResources() error {
	if !l.running || l.renderer == nil {
		return l.fail(platform.ResourceCreationError("streaming image", ErrNotStarted))
	}

	fb, err := framebuffer.New(l.conf.Width, l.conf.Height)
	if err != nil {
		return l.fail(platform.AllocationError("framebuffer", err))
	}
	l.fb = fb

	image, err := l.renderer.CreateStreamingImage(fb.Width(), fb.Height())
	if err != nil {
		return l.fail(platform.ResourceCreationError("streaming image", err))
	}
	l.image = image
	return nil
}

func (l *Lifecycle) fail(err error) error {
	Logger().Error("setup failed", "err", err)
	l.running = false
	return err
}

// Teardown releases whatever is currently held: framebuffer, streaming
// image, renderer, window, then the subsystem. Every handle is dropped
// right after its release, so calling Teardown again is a no-op.
func (l *Lifecycle) Teardown() {
	log := Logger()
	if l.fb != nil {
		l.fb.Release()
		l.fb = nil
		log.Debug("released framebuffer")
	}
	if l.image != nil {
		l.image.Destroy()
		l.image = nil
		log.Debug("released streaming image")
	}
	if l.renderer != nil {
		l.renderer.Destroy()
		l.renderer = nil
		log.Debug("released renderer")
	}
	if l.window != nil {
		l.window.Destroy()
		l.window = nil
		log.Debug("released window")
	}
	if l.subsystem {
		l.backend.Quit()
		l.subsystem = false
		log.Debug("windowing subsystem shut down")
	}
	l.running = false
}

// Running reports the run state established by Startup.
func (l *Lifecycle) Running() bool { return l.running }

// Framebuffer returns the frame being rendered, nil before SetupResources
// and after Teardown.
func (l *Lifecycle) Framebuffer() *framebuffer.Framebuffer { return l.fb }

func (l *Lifecycle) Config() WindowConfig { return l.conf }

// UploadAndPresent copies the whole framebuffer into the streaming image,
// row stride width*4 bytes, blits the image onto the render target and
// presents it. The framebuffer is left untouched. It reports whether a
// frame was shown; backend errors are logged and drop the frame.
func (l *Lifecycle) UploadAndPresent() bool {
	return uploadAndPresent(l.fb, l.renderer, l.image)
}
