package hub75

import "image/color"

// RGB565 is a 16-bit color: 5 bits red, 6 bits green, 5 bits blue
type RGB565 uint16

// NewRGB565 packs 8-bit channels into an RGB565 value, dropping the low bits
func NewRGB565(r, g, b uint8) RGB565 {
	return RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGB565Model converts any color to RGB565
var RGB565Model = color.ModelFunc(func(c color.Color) color.Color {
	if c, ok := c.(RGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return NewRGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})

// R5 returns the raw 5-bit red value
func (c RGB565) R5() uint8 { return uint8(c>>11) & 0x1f }

// G6 returns the raw 6-bit green value
func (c RGB565) G6() uint8 { return uint8(c>>5) & 0x3f }

// B5 returns the raw 5-bit blue value
func (c RGB565) B5() uint8 { return uint8(c) & 0x1f }

// Expand widens each channel to 8 bits by replicating its high bits into
// the low bits, so full scale maps to 255 and zero stays zero.
func (c RGB565) Expand() (r, g, b uint8) {
	r5, g6, b5 := c.R5(), c.G6(), c.B5()
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color
func (c RGB565) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Expand()
	r = uint32(r8) * 0x101
	g = uint32(g8) * 0x101
	b = uint32(b8) * 0x101
	return r, g, b, 0xffff
}
