// Package headless implements the presentation contracts in memory. It
// backs CI runs of the renderer and doubles as a recording collaborator:
// every call lands in a Journal, failures can be injected per stage and
// input is scripted.
package headless

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"golang.org/x/image/bmp"

	"github.com/kjkrol/gorast/internal/platform"
)

const Name = "headless"

func init() {
	platform.Register(Name, func(opts platform.Options) platform.Backend {
		return New(Config{Frames: opts.Frames, Snapshot: opts.Snapshot})
	})
}

// Stage names a setup step that can be forced to fail.
type Stage int

const (
	StageNone Stage = iota
	StageInit
	StageWindow
	StageRenderer
	StageImage
)

var ErrInjected = errors.New("headless: injected failure")

type Config struct {
	// Frames delivers a Quit event once that many frames were presented.
	Frames int
	// Snapshot is written with the last presented frame when the renderer
	// is destroyed.
	Snapshot string
	FailAt   Stage
	Journal  *Journal
}

type Backend struct {
	conf      Config
	journal   *Journal
	mu        sync.Mutex
	queue     []platform.Event
	presented int
	last      []uint32
	lastW     int
	lastH     int
	up        bool
	windows   int
}

func New(conf Config) *Backend {
	j := conf.Journal
	if j == nil {
		j = &Journal{}
	}
	return &Backend{conf: conf, journal: j}
}

func (b *Backend) Journal() *Journal { return b.journal }

// Push queues events for PollEvent, oldest first.
func (b *Backend) Push(events ...platform.Event) {
	b.mu.Lock()
	b.queue = append(b.queue, events...)
	b.mu.Unlock()
}

// Pending reports how many scripted events are still queued.
func (b *Backend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

func (b *Backend) Presented() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presented
}

func (b *Backend) Init() error {
	b.journal.record(EntryInit)
	if b.conf.FailAt == StageInit {
		return ErrInjected
	}
	b.up = true
	return nil
}

func (b *Backend) CreateWindow(conf platform.WindowConfig) (platform.Window, error) {
	b.journal.record(EntryCreateWindow)
	if !b.up {
		b.journal.violate("window created before init")
	}
	if b.conf.FailAt == StageWindow {
		return nil, ErrInjected
	}
	if conf.Width <= 0 || conf.Height <= 0 {
		return nil, fmt.Errorf("headless: invalid window size %dx%d", conf.Width, conf.Height)
	}
	b.windows++
	return &window{backend: b, conf: conf}, nil
}

func (b *Backend) PollEvent() platform.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) > 0 {
		ev := b.queue[0]
		b.queue = b.queue[1:]
		return ev
	}
	if b.conf.Frames > 0 && b.presented >= b.conf.Frames {
		return platform.Quit{}
	}
	return nil
}

func (b *Backend) Quit() {
	b.journal.record(EntryQuit)
	if !b.up {
		b.journal.violate("quit without init")
	}
	if b.windows > 0 {
		b.journal.violate("quit with %d live window(s)", b.windows)
	}
	b.up = false
}

// Snapshot returns the last presented frame, or nil before the first
// present.
func (b *Backend) Snapshot() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return nil
	}
	return toRGBA(b.last, b.lastW, b.lastH)
}

func (b *Backend) present(target []uint32, w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presented++
	if target == nil {
		return
	}
	if len(b.last) != len(target) {
		b.last = make([]uint32, len(target))
	}
	copy(b.last, target)
	b.lastW, b.lastH = w, h
}

func (b *Backend) writeSnapshot() {
	if b.conf.Snapshot == "" {
		return
	}
	img := b.Snapshot()
	if img == nil {
		return
	}
	log := platform.Logger()
	f, err := os.Create(b.conf.Snapshot)
	if err != nil {
		log.Warn("headless: snapshot not written", "path", b.conf.Snapshot, "err", err)
		return
	}
	if err := bmp.Encode(f, img); err != nil {
		log.Warn("headless: snapshot encode failed", "path", b.conf.Snapshot, "err", err)
	}
	if err := f.Close(); err != nil {
		log.Warn("headless: snapshot close failed", "path", b.conf.Snapshot, "err", err)
		return
	}
	log.Info("headless: snapshot written", "path", b.conf.Snapshot, "frames", b.Presented())
}

func toRGBA(pixels []uint32, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, p := range pixels {
		img.Pix[i*4+0] = uint8(p >> 16)
		img.Pix[i*4+1] = uint8(p >> 8)
		img.Pix[i*4+2] = uint8(p)
		img.Pix[i*4+3] = uint8(p >> 24)
	}
	return img
}

// ----------------------------------------------------------------------------

type window struct {
	backend   *Backend
	conf      platform.WindowConfig
	renderers int
	destroyed bool
}

func (w *window) CreateRenderer() (platform.Renderer, error) {
	j := w.backend.journal
	j.record(EntryCreateRenderer)
	if w.destroyed {
		j.violate("renderer created on destroyed window")
	}
	if w.backend.conf.FailAt == StageRenderer {
		return nil, ErrInjected
	}
	w.renderers++
	return &renderer{window: w}, nil
}

func (w *window) Destroy() {
	j := w.backend.journal
	j.record(EntryDestroyWindow)
	if w.destroyed {
		j.violate("window destroyed twice")
		return
	}
	if w.renderers > 0 {
		j.violate("window destroyed with %d live renderer(s)", w.renderers)
	}
	w.destroyed = true
	w.backend.windows--
}

// ----------------------------------------------------------------------------

type renderer struct {
	window    *window
	target    []uint32 // allocated on first copy
	images    int
	destroyed bool
}

func (r *renderer) CreateStreamingImage(width, height int) (platform.StreamingImage, error) {
	j := r.window.backend.journal
	j.record(EntryCreateImage)
	if r.destroyed {
		j.violate("image created on destroyed renderer")
	}
	if r.window.backend.conf.FailAt == StageImage {
		return nil, ErrInjected
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("headless: invalid image size %dx%d", width, height)
	}
	r.images++
	return &streamingImage{
		renderer: r,
		width:    width,
		height:   height,
		pixels:   make([]uint32, width*height),
	}, nil
}

func (r *renderer) Copy(img platform.StreamingImage) error {
	j := r.window.backend.journal
	j.record(EntryCopy)
	si, ok := img.(*streamingImage)
	if !ok || si.renderer != r {
		return errors.New("headless: image does not belong to this renderer")
	}
	if si.destroyed {
		j.violate("copy of destroyed image")
		return errors.New("headless: image destroyed")
	}
	w, h := r.window.conf.Width, r.window.conf.Height
	if r.target == nil {
		r.target = make([]uint32, w*h)
	}
	for row := 0; row < h && row < si.height; row++ {
		n := min(w, si.width)
		copy(r.target[row*w:row*w+n], si.pixels[row*si.width:row*si.width+n])
	}
	return nil
}

func (r *renderer) Present() {
	r.window.backend.journal.record(EntryPresent)
	r.window.backend.present(r.target, r.window.conf.Width, r.window.conf.Height)
}

func (r *renderer) Destroy() {
	j := r.window.backend.journal
	j.record(EntryDestroyRenderer)
	if r.destroyed {
		j.violate("renderer destroyed twice")
		return
	}
	if r.images > 0 {
		j.violate("renderer destroyed with %d live image(s)", r.images)
	}
	r.window.backend.writeSnapshot()
	r.destroyed = true
	r.window.renderers--
}

// ----------------------------------------------------------------------------

type streamingImage struct {
	renderer      *renderer
	width, height int
	pixels        []uint32
	destroyed     bool
}

func (i *streamingImage) Update(pixels []uint32, stride int) error {
	i.renderer.window.backend.journal.record(EntryUpdate)
	if i.destroyed {
		return errors.New("headless: update of destroyed image")
	}
	if stride%4 != 0 || stride < i.width*4 {
		return fmt.Errorf("headless: stride %d too small for width %d", stride, i.width)
	}
	rowLen := stride / 4
	if len(pixels) < (i.height-1)*rowLen+i.width {
		return fmt.Errorf("headless: %d pixels too short for %dx%d at stride %d", len(pixels), i.width, i.height, stride)
	}
	for row := 0; row < i.height; row++ {
		copy(i.pixels[row*i.width:(row+1)*i.width], pixels[row*rowLen:row*rowLen+i.width])
	}
	return nil
}

func (i *streamingImage) Destroy() {
	j := i.renderer.window.backend.journal
	j.record(EntryDestroyImage)
	if i.destroyed {
		j.violate("image destroyed twice")
		return
	}
	i.destroyed = true
	i.renderer.images--
}
