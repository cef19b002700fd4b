package display

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
)

var (
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
)

// Solid fills the entire display with one color
type Solid struct {
	Color color.RGBA
}

// Draw fills every pixel
func (s Solid) Draw(d drivers.Displayer, _ int) {
	w, h := d.Size()
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			d.SetPixel(x, y, s.Color)
		}
	}
}

// Checkerboard draws square cells of Color that shift by one cell every
// eight frames; the other cells stay black.
type Checkerboard struct {
	Color color.RGBA
	Cell  int
}

// Draw draws the checkerboard for the given frame
func (c Checkerboard) Draw(d drivers.Displayer, frame int) {
	size := c.Cell
	if size <= 0 {
		size = 4
	}
	w, h := d.Size()
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			if (y/size+x/size+frame/8)%2 == 0 {
				d.SetPixel(int16(x), int16(y), c.Color)
			}
		}
	}
}

// Ramp draws a horizontal gradient of Color from black on the left to
// full brightness on the right, which shows the available PWM levels.
type Ramp struct {
	Color color.RGBA
}

// Draw draws the gradient
func (r Ramp) Draw(d drivers.Displayer, _ int) {
	w, h := d.Size()
	for x := int16(0); x < w; x++ {
		scale := func(v uint8) uint8 {
			return uint8(int(v) * int(x) / int(w-1))
		}
		c := color.RGBA{R: scale(r.Color.R), G: scale(r.Color.G), B: scale(r.Color.B), A: 255}
		for y := int16(0); y < h; y++ {
			d.SetPixel(x, y, c)
		}
	}
}

// Cycle shows each item for Frames frames in turn
type Cycle struct {
	Items  []Content
	Frames int
}

// Draw draws the item current at frame
func (c Cycle) Draw(d drivers.Displayer, frame int) {
	if len(c.Items) == 0 {
		return
	}
	n := c.Frames
	if n <= 0 {
		n = 1
	}
	c.Items[(frame/n)%len(c.Items)].Draw(d, frame)
}

// TestPattern cycles through red, green, blue and a yellow checkerboard
func TestPattern() Content {
	return Cycle{
		Items: []Content{
			Solid{red},
			Solid{green},
			Solid{blue},
			Checkerboard{Color: yellow, Cell: 4},
		},
		Frames: 20,
	}
}

// ParsePattern maps a pattern name to content drawn in c
func ParsePattern(name string, c color.RGBA) (Content, error) {
	switch name {
	case "cycle", "":
		return TestPattern(), nil
	case "solid":
		return Solid{c}, nil
	case "checkerboard":
		return Checkerboard{Color: c, Cell: 4}, nil
	case "ramp":
		return Ramp{c}, nil
	case "off":
		return ContentFunc(func(drivers.Displayer, int) {}), nil
	}
	return nil, fmt.Errorf("unknown pattern %q", name)
}
