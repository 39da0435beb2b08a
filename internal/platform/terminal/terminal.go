// Package terminal presents frames inside a text terminal through tcell.
// Every cell shows two vertically stacked pixels using the upper half
// block glyph: foreground is the top pixel, background the bottom one.
package terminal

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/kjkrol/gorast/internal/platform"
)

const Name = "terminal"

const halfBlock = '▀'

var ErrNotATerminal = errors.New("terminal: stdout is not a terminal")

func init() {
	platform.Register(Name, func(platform.Options) platform.Backend {
		return New()
	})
}

type Backend struct {
	newScreen func() (tcell.Screen, error)
	checkTTY  bool

	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	done   chan struct{}
}

// New creates a backend bound to the process' terminal.
func New() *Backend {
	return &Backend{newScreen: tcell.NewScreen, checkTTY: true}
}

// NewWithScreen wraps an existing, not yet initialized screen, e.g. a
// tcell.SimulationScreen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{
		newScreen: func() (tcell.Screen, error) { return screen, nil },
	}
}

func (b *Backend) Init() error {
	if b.checkTTY && !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotATerminal
	}
	screen, err := b.newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()

	b.screen = screen
	b.events = make(chan tcell.Event, 64)
	b.quit = make(chan struct{})
	b.done = make(chan struct{})
	go b.pump()
	return nil
}

// pump moves tcell events into a buffered channel so PollEvent never
// blocks. It ends when the screen is finalized.
func (b *Backend) pump() {
	defer close(b.done)
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case b.events <- ev:
		case <-b.quit:
			return
		}
	}
}

func (b *Backend) CreateWindow(conf platform.WindowConfig) (platform.Window, error) {
	if b.screen == nil {
		return nil, errors.New("terminal: not initialized")
	}
	b.screen.EnableMouse()
	b.screen.Clear()
	return &window{backend: b, conf: conf}, nil
}

func (b *Backend) PollEvent() platform.Event {
	select {
	case ev := <-b.events:
		return convert(ev)
	default:
		return nil
	}
}

func (b *Backend) Quit() {
	if b.screen == nil {
		return
	}
	close(b.quit)
	b.screen.Fini()
	<-b.done
	b.screen = nil
}

// ----------------------------------------------------------------------------

type window struct {
	backend *Backend
	conf    platform.WindowConfig
}

func (w *window) CreateRenderer() (platform.Renderer, error) {
	if w.backend == nil || w.backend.screen == nil {
		return nil, errors.New("terminal: window destroyed")
	}
	return &renderer{screen: w.backend.screen}, nil
}

func (w *window) Destroy() {
	if w.backend == nil {
		return
	}
	if w.backend.screen != nil {
		w.backend.screen.DisableMouse()
		w.backend.screen.Clear()
	}
	w.backend = nil
}

// ----------------------------------------------------------------------------

type renderer struct {
	screen tcell.Screen
	scaled *image.RGBA
}

func (r *renderer) CreateStreamingImage(width, height int) (platform.StreamingImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("terminal: invalid image size %dx%d", width, height)
	}
	return &streamingImage{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

func (r *renderer) Copy(img platform.StreamingImage) error {
	si, ok := img.(*streamingImage)
	if !ok || si.rgba == nil {
		return fmt.Errorf("terminal: %T is not a live terminal image", img)
	}
	cols, rows := r.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	bounds := image.Rect(0, 0, cols, rows*2)
	if r.scaled == nil || r.scaled.Rect != bounds {
		r.scaled = image.NewRGBA(bounds)
	}
	xdraw.NearestNeighbor.Scale(r.scaled, bounds, si.rgba, si.rgba.Bounds(), xdraw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := r.scaled.RGBAAt(x, 2*y)
			bottom := r.scaled.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			r.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	return nil
}

func (r *renderer) Present() {
	r.screen.Show()
}

func (r *renderer) Destroy() {
	r.scaled = nil
}

// ----------------------------------------------------------------------------

type streamingImage struct {
	rgba *image.RGBA
}

func (i *streamingImage) Update(pixels []uint32, stride int) error {
	if i.rgba == nil {
		return errors.New("terminal: update of destroyed image")
	}
	w, h := i.rgba.Rect.Dx(), i.rgba.Rect.Dy()
	if stride%4 != 0 || stride < w*4 {
		return fmt.Errorf("terminal: stride %d too small for width %d", stride, w)
	}
	rowLen := stride / 4
	if len(pixels) < (h-1)*rowLen+w {
		return fmt.Errorf("terminal: %d pixels too short for %dx%d", len(pixels), w, h)
	}
	for y := 0; y < h; y++ {
		src := pixels[y*rowLen : y*rowLen+w]
		dst := i.rgba.Pix[y*i.rgba.Stride:]
		for x, p := range src {
			dst[x*4+0] = uint8(p >> 16)
			dst[x*4+1] = uint8(p >> 8)
			dst[x*4+2] = uint8(p)
			dst[x*4+3] = uint8(p >> 24)
		}
	}
	return nil
}

func (i *streamingImage) Destroy() {
	i.rgba = nil
}
