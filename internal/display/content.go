package display

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"tinygo.org/x/drivers"
)

// Content draws one frame of something into a display
type Content interface {
	Draw(d drivers.Displayer, frame int)
}

// ContentFunc adapts a function to the Content interface
type ContentFunc func(d drivers.Displayer, frame int)

// Draw calls f(d, frame)
func (f ContentFunc) Draw(d drivers.Displayer, frame int) {
	f(d, frame)
}

// clipped drops pixels outside the display instead of passing them on
type clipped struct {
	drivers.Displayer
	w, h int16
}

// Clip wraps d so that out-of-range SetPixel calls are ignored. Font and
// image renderers routinely draw past the edges while scrolling.
func Clip(d drivers.Displayer) drivers.Displayer {
	if c, ok := d.(*clipped); ok {
		return c
	}
	w, h := d.Size()
	return &clipped{Displayer: d, w: w, h: h}
}

func (c *clipped) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.Displayer.SetPixel(x, y, col)
}

// ErrInvalidColor is returned for a color that is not #rrggbb
var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses a #rrggbb hex color
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
