package gfx

import (
	"errors"

	"github.com/kjkrol/gorast/internal/platform"
	"github.com/kjkrol/gorast/pkg/framebuffer"
)

// DefaultClearColor is opaque red.
const DefaultClearColor uint32 = 0xFFFF0000

var ErrAlreadyStarted = errors.New("frame driver already started")

// Frame describes the iteration an update hook runs in.
type Frame struct {
	Index uint64
}

type Option func(*Driver)

func WithClearColor(c uint32) Option {
	return func(d *Driver) { d.clearColor = c }
}

// WithUpdate installs the simulation step run once per frame, before the
// framebuffer is cleared.
func WithUpdate(update func(Frame)) Option {
	return func(d *Driver) { d.update = update }
}

// WithDraw installs the drawing step run after the clear and before the
// upload.
func WithDraw(draw func(fb *framebuffer.Framebuffer)) Option {
	return func(d *Driver) { d.draw = draw }
}

// WithEventHandler observes every event the driver consumes, quit
// requests included.
func WithEventHandler(handle func(Event)) Option {
	return func(d *Driver) { d.onEvent = handle }
}

func WithEventsStrategy(strategy EventsConsumerStrategy) Option {
	return func(d *Driver) {
		if strategy != nil {
			d.strategy = strategy
		}
	}
}

// Driver runs the frame loop: input, update, clear, draw, upload, present.
// It is single threaded; everything happens on the goroutine calling Run
// or Step.
type Driver struct {
	lifecycle *Lifecycle
	input     platform.InputSource
	state     State
	running   bool
	frames    uint64

	clearColor uint32
	strategy   EventsConsumerStrategy
	update     func(Frame)
	draw       func(*framebuffer.Framebuffer)
	onEvent    func(Event)
}

func NewDriver(lifecycle *Lifecycle, opts ...Option) *Driver {
	d := &Driver{
		lifecycle:  lifecycle,
		input:      lifecycle.backend,
		clearColor: DefaultClearColor,
		strategy:   PollOnce(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start brings the presentation stack up. Any failure tears down what was
// already created and leaves the driver Stopped.
func (d *Driver) Start() error {
	if d.state != NotStarted {
		return ErrAlreadyStarted
	}
	if err := d.lifecycle.Startup(); err != nil {
		d.abort()
		return err
	}
	if err := d.lifecycle.SetupResources(); err != nil {
		d.abort()
		return err
	}
	d.state = Running
	d.running = true
	return nil
}

func (d *Driver) abort() {
	d.state = Stopped
	d.running = false
	d.lifecycle.Teardown()
}

// Step runs one iteration and reports whether the driver keeps running.
// A quit request seen during input skips the rest of the iteration and
// stops the driver, tearing the presentation stack down.
func (d *Driver) Step() bool {
	if d.state != Running || !d.running {
		return false
	}
	if !d.lifecycle.Running() || d.lifecycle.Framebuffer() == nil {
		// torn down underneath the driver
		d.Stop()
		return false
	}

	d.processInput()
	if !d.running {
		d.Stop()
		return false
	}

	if d.update != nil {
		d.update(Frame{Index: d.frames})
	}

	fb := d.lifecycle.Framebuffer()
	fb.Clear(d.clearColor)
	if d.draw != nil {
		d.draw(fb)
	}
	if d.lifecycle.UploadAndPresent() {
		d.frames++
	}
	return true
}

func (d *Driver) processInput() {
	poll := func() (Event, bool) {
		event := d.input.PollEvent()
		if event == nil {
			return nil, false
		}
		return convert(event), true
	}
	handle := func(event Event) bool {
		if d.onEvent != nil {
			d.onEvent(event)
		}
		if IsQuit(event) {
			d.running = false
			return false
		}
		return true
	}
	d.strategy.Consume(poll, handle)
}

// Stop ends the loop and tears the presentation stack down. Only the first
// call has an effect.
func (d *Driver) Stop() {
	if d.state == Stopped {
		return
	}
	d.abort()
	Logger().Info("frame driver stopped", "frames", d.frames)
}

// Run starts the driver, steps it until a quit request and stops it.
func (d *Driver) Run() error {
	if err := d.Start(); err != nil {
		return err
	}
	defer d.Stop()
	for d.Step() {
	}
	return nil
}

func (d *Driver) State() State { return d.state }

// Frames returns how many frames were presented.
func (d *Driver) Frames() uint64 { return d.frames }

func uploadAndPresent(fb *framebuffer.Framebuffer, r platform.Renderer, img platform.StreamingImage) bool {
	if fb.Released() || r == nil || img == nil {
		return false
	}
	log := Logger()
	if err := img.Update(fb.Pixels(), fb.Stride()); err != nil {
		log.Warn("streaming image update failed", "err", err)
		return false
	}
	if err := r.Copy(img); err != nil {
		log.Warn("copy to render target failed", "err", err)
		return false
	}
	r.Present()
	return true
}
