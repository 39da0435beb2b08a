// Package framebuffer holds the CPU side pixel array a frame is rendered
// into before it is uploaded to the presentation surface.
package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the size of one packed ARGB pixel.
const BytesPerPixel = 4

// MaxPixels bounds a single allocation (16384x16384).
const MaxPixels = 1 << 28

// ErrInvalidSize is returned by New for empty or oversized dimensions.
var ErrInvalidSize = errors.New("framebuffer: invalid size")

// Framebuffer is a row-major array of packed 0xAARRGGBB pixels with no
// padding between rows. The pixel at (row, col) lives at width*row+col.
//
// Framebuffer implements draw.Image, so the standard drawing tools can
// render into it.
type Framebuffer struct {
	width, height int
	pixels        []uint32
	released      bool
}

// New allocates a zeroed width x height framebuffer.
func New(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidSize, width, height, MaxPixels)
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
	}, nil
}

// Width and Height are the dimensions in pixels.
func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// Stride returns the distance in bytes between the starts of two rows.
func (fb *Framebuffer) Stride() int { return fb.width * BytesPerPixel }

// Pixels exposes the backing array, nil once released.
func (fb *Framebuffer) Pixels() []uint32 { return fb.pixels }

// Index maps (row, col) to its position in Pixels. It does no bounds check.
func (fb *Framebuffer) Index(row, col int) int {
	return fb.width*row + col
}

func (fb *Framebuffer) inside(row, col int) bool {
	return fb.pixels != nil && row >= 0 && row < fb.height && col >= 0 && col < fb.width
}

// Pixel reads (row, col); positions outside the buffer read as 0.
func (fb *Framebuffer) Pixel(row, col int) uint32 {
	if !fb.inside(row, col) {
		return 0
	}
	return fb.pixels[fb.Index(row, col)]
}

// SetPixel writes (row, col); positions outside the buffer are ignored.
func (fb *Framebuffer) SetPixel(row, col int, c uint32) {
	if !fb.inside(row, col) {
		return
	}
	fb.pixels[fb.Index(row, col)] = c
}

// Clear writes c into every pixel. A nil or released framebuffer is left
// alone.
func (fb *Framebuffer) Clear(c uint32) {
	if fb == nil {
		return
	}
	for i := range fb.pixels {
		fb.pixels[i] = c
	}
}

// Release drops the pixel array. Further calls are no-ops, as are all
// writes made after it.
func (fb *Framebuffer) Release() {
	if fb == nil || fb.released {
		return
	}
	fb.pixels = nil
	fb.released = true
}

// Released reports whether the pixel array was dropped. A nil framebuffer
// counts as released.
func (fb *Framebuffer) Released() bool { return fb == nil || fb.released }

// ColorModel returns ARGBModel.
func (fb *Framebuffer) ColorModel() color.Model { return ARGBModel }

func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// At and Set address pixels as (x, y), that is (col, row).
func (fb *Framebuffer) At(x, y int) color.Color {
	return Color(fb.Pixel(y, x))
}

func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(y, x, Pack(c))
}
