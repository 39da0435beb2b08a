package framebuffer_test

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/kjkrol/gorast/pkg/framebuffer"
)

func TestNew_RejectsInvalidSizes(t *testing.T) {
	cases := []struct{ w, h int }{
		{0, 1}, {1, 0}, {-1, 10}, {10, -1}, {framebuffer.MaxPixels, 2},
	}
	for _, c := range cases {
		fb, err := framebuffer.New(c.w, c.h)
		if !errors.Is(err, framebuffer.ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", c.w, c.h, err)
		}
		if fb != nil {
			t.Errorf("New(%d, %d) returned a framebuffer on failure", c.w, c.h)
		}
	}
}

func TestNew_LayoutMatchesDimensions(t *testing.T) {
	fb, err := framebuffer.New(800, 600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(fb.Pixels()); got != 800*600 {
		t.Errorf("len(pixels) = %d, want %d", got, 800*600)
	}
	if fb.Stride() != 800*4 {
		t.Errorf("stride = %d, want %d", fb.Stride(), 800*4)
	}
	if fb.Bounds() != image.Rect(0, 0, 800, 600) {
		t.Errorf("bounds = %v", fb.Bounds())
	}
}

func TestClear_FillsEveryPixel(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {1, 7}, {7, 1}, {3, 5}, {64, 48}, {800, 600}}
	colors := []uint32{0x00000000, 0xFFFF0000, 0xFFFFFF00, 0x80123456, 0xFFFFFFFF}

	for _, s := range sizes {
		for _, c := range colors {
			fb, err := framebuffer.New(s.w, s.h)
			if err != nil {
				t.Fatalf("New(%d, %d): %v", s.w, s.h, err)
			}
			fb.Clear(c)
			for i, p := range fb.Pixels() {
				if p != c {
					t.Fatalf("%dx%d clear(%#08x): pixel %d = %#08x", s.w, s.h, c, i, p)
				}
			}
		}
	}
}

func TestPixel_AddressingRoundTrip(t *testing.T) {
	const w, h = 13, 7
	fb, err := framebuffer.New(w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			idx := fb.Index(row, col)
			if idx != w*row+col {
				t.Fatalf("Index(%d, %d) = %d, want %d", row, col, idx, w*row+col)
			}
			v := uint32(row<<16 | col)
			fb.Pixels()[idx] = v
			if got := fb.Pixel(row, col); got != v {
				t.Fatalf("Pixel(%d, %d) = %#x, want %#x", row, col, got, v)
			}
		}
	}

	fb.SetPixel(2, 3, 0xCAFEBABE)
	if got := fb.Pixels()[w*2+3]; got != 0xCAFEBABE {
		t.Errorf("SetPixel stored %#x at linear index", got)
	}
}

func TestPixel_OutOfRangeIsIgnored(t *testing.T) {
	fb, _ := framebuffer.New(2, 2)
	fb.SetPixel(-1, 0, 1)
	fb.SetPixel(0, 2, 1)
	fb.SetPixel(2, 0, 1)
	for i, p := range fb.Pixels() {
		if p != 0 {
			t.Errorf("pixel %d = %#x after out-of-range writes", i, p)
		}
	}
	if fb.Pixel(5, 5) != 0 {
		t.Errorf("out-of-range read should be 0")
	}
}

func TestRelease_IsIdempotent(t *testing.T) {
	fb, _ := framebuffer.New(4, 4)
	fb.Release()
	fb.Release()
	if !fb.Released() {
		t.Errorf("Released() = false after Release")
	}
	if fb.Pixels() != nil {
		t.Errorf("pixels still owned after Release")
	}
	fb.Clear(0xFFFFFFFF)
	fb.SetPixel(0, 0, 1)
	if fb.Pixel(0, 0) != 0 {
		t.Errorf("released framebuffer accepted a write")
	}

	var nilFB *framebuffer.Framebuffer
	nilFB.Release()
	nilFB.Clear(0xFF000000)
	if !nilFB.Released() {
		t.Errorf("nil framebuffer should report released")
	}
}

func TestARGB_Packing(t *testing.T) {
	if got := framebuffer.ARGB(0xFF, 0xFF, 0, 0); got != 0xFFFF0000 {
		t.Errorf("ARGB red = %#08x", got)
	}
	if got := framebuffer.Pack(color.RGBA{0, 0xFF, 0, 0xFF}); got != 0xFF00FF00 {
		t.Errorf("Pack green = %#08x", got)
	}
	if got := framebuffer.Pack(framebuffer.Color(0x80112233)); got != 0x80112233 {
		t.Errorf("Pack of packed color = %#08x", got)
	}
}

func TestDrawImage_WritesThroughColorModel(t *testing.T) {
	fb, _ := framebuffer.New(8, 4)
	blue := image.NewUniform(color.RGBA{0, 0, 0xFF, 0xFF})
	draw.Draw(fb, image.Rect(2, 1, 4, 3), blue, image.Point{}, draw.Src)

	for row := 0; row < 4; row++ {
		for col := 0; col < 8; col++ {
			want := uint32(0)
			if row >= 1 && row < 3 && col >= 2 && col < 4 {
				want = 0xFF0000FF
			}
			if got := fb.Pixel(row, col); got != want {
				t.Errorf("pixel (%d, %d) = %#08x, want %#08x", row, col, got, want)
			}
		}
	}

	r, g, b, a := fb.At(2, 1).RGBA()
	if r != 0 || g != 0 || b != 0xFFFF || a != 0xFFFF {
		t.Errorf("At(2, 1).RGBA() = %x %x %x %x", r, g, b, a)
	}
}
