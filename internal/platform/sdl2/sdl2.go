// Package sdl2 presents frames through SDL2: a native window, an
// accelerated renderer and an ARGB8888 streaming texture.
package sdl2

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/kjkrol/gorast/internal/platform"
)

const Name = "sdl"

func init() {
	platform.Register(Name, func(platform.Options) platform.Backend {
		return &Backend{}
	})
}

// Backend owns the SDL video subsystem. SDL must be driven from the thread
// that initialized it, so Init locks the calling goroutine to its OS thread
// until Quit.
type Backend struct {
	initialized bool
}

func (b *Backend) Init() error {
	runtime.LockOSThread()
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		runtime.UnlockOSThread()
		return err
	}
	b.initialized = true
	return nil
}

func (b *Backend) CreateWindow(conf platform.WindowConfig) (platform.Window, error) {
	var flags uint32 = sdl.WINDOW_SHOWN
	if conf.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	win, err := sdl.CreateWindow(conf.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(conf.Width), int32(conf.Height), flags)
	if err != nil {
		return nil, err
	}
	return &window{win: win}, nil
}

// PollEvent takes a single event off the SDL queue.
func (b *Backend) PollEvent() platform.Event {
	ev := sdl.PollEvent()
	if ev == nil {
		return nil
	}
	return convert(ev)
}

func (b *Backend) Quit() {
	if !b.initialized {
		return
	}
	sdl.Quit()
	b.initialized = false
	runtime.UnlockOSThread()
}

// ----------------------------------------------------------------------------

type window struct {
	win *sdl.Window
}

func (w *window) CreateRenderer() (platform.Renderer, error) {
	r, err := sdl.CreateRenderer(w.win, -1, 0)
	if err != nil {
		return nil, err
	}
	printRendererInfo(r)
	return &renderer{r: r}, nil
}

func printRendererInfo(r *sdl.Renderer) {
	log := platform.Logger()
	info, err := r.GetInfo()
	if err != nil {
		log.Warn("SDL_GetRendererInfo failed", "err", err)
		return
	}
	log.Info("SDL renderer backend",
		"name", info.Name,
		"accelerated", info.Flags&sdl.RENDERER_ACCELERATED != 0,
		"software", info.Flags&sdl.RENDERER_SOFTWARE != 0,
		"vsync", info.Flags&sdl.RENDERER_PRESENTVSYNC != 0,
	)
}

func (w *window) Destroy() {
	if w.win == nil {
		return
	}
	if err := w.win.Destroy(); err != nil {
		platform.Logger().Warn("SDL_DestroyWindow failed", "err", err)
	}
	w.win = nil
}

// ----------------------------------------------------------------------------

type renderer struct {
	r *sdl.Renderer
}

func (r *renderer) CreateStreamingImage(width, height int) (platform.StreamingImage, error) {
	tex, err := r.r.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING,
		int32(width), int32(height))
	if err != nil {
		return nil, err
	}
	return &texture{tex: tex, width: width, height: height}, nil
}

func (r *renderer) Copy(img platform.StreamingImage) error {
	t, ok := img.(*texture)
	if !ok || t.tex == nil {
		return fmt.Errorf("sdl: %T is not a live SDL texture", img)
	}
	return r.r.Copy(t.tex, nil, nil)
}

func (r *renderer) Present() {
	r.r.Present()
}

func (r *renderer) Destroy() {
	if r.r == nil {
		return
	}
	if err := r.r.Destroy(); err != nil {
		platform.Logger().Warn("SDL_DestroyRenderer failed", "err", err)
	}
	r.r = nil
}

// ----------------------------------------------------------------------------

type texture struct {
	tex           *sdl.Texture
	width, height int
}

func (t *texture) Update(pixels []uint32, stride int) error {
	if t.tex == nil {
		return fmt.Errorf("sdl: update of destroyed texture")
	}
	if len(pixels) < t.width*t.height {
		return fmt.Errorf("sdl: %d pixels for a %dx%d texture", len(pixels), t.width, t.height)
	}
	err := t.tex.Update(nil, unsafe.Pointer(&pixels[0]), stride)
	runtime.KeepAlive(pixels)
	return err
}

func (t *texture) Destroy() {
	if t.tex == nil {
		return
	}
	if err := t.tex.Destroy(); err != nil {
		platform.Logger().Warn("SDL_DestroyTexture failed", "err", err)
	}
	t.tex = nil
}
