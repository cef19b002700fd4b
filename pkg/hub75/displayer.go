package hub75

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Driver)(nil)

// Size returns the panel size in pixels
func (d *Driver) Size() (x, y int16) {
	return Width, int16(d.panel.Height())
}

// SetPixel converts c to RGB565 and stores it like Draw does
func (d *Driver) SetPixel(x, y int16, c color.RGBA) {
	d.set(int(x), int(y), NewRGB565(c.R, c.G, c.B))
}

// SetDelay replaces the delay used by Display
func (d *Driver) SetDelay(delay Delayer) {
	d.delay = delay
}

// Display runs Output with the configured delay, SpinDelay by default
func (d *Driver) Display() error {
	return d.Output(d.delay)
}
