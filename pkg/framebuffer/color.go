package framebuffer

import "image/color"

// ARGB packs the channels into the 0xAARRGGBB layout used by the
// framebuffer.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Color is a packed 0xAARRGGBB pixel. It is not alpha-premultiplied.
type Color uint32

func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c>>24) & 0xff
	r = uint32(c>>16) & 0xff
	g = uint32(c>>8) & 0xff
	b = uint32(c) & 0xff
	r = r * a / 0xff
	g = g * a / 0xff
	b = b * a / 0xff
	return r | r<<8, g | g<<8, b | b<<8, a | a<<8
}

// ARGBModel converts any colour to Color.
var ARGBModel color.Model = color.ModelFunc(argbModel)

func argbModel(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	return Color(Pack(c))
}

// Pack converts any color.Color into a packed 0xAARRGGBB value.
func Pack(c color.Color) uint32 {
	if p, ok := c.(Color); ok {
		return uint32(p)
	}
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(nrgba.A, nrgba.R, nrgba.G, nrgba.B)
}
