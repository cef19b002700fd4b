package hub75

import "fmt"

// Cell holds the gamma-corrected channel values for one column of one
// half-row: R1/G1/B1 feed the top half, R2/G2/B2 the bottom half.
type Cell struct {
	R1, G1, B1 uint8
	R2, G2, B2 uint8
}

// Pixel is a single write into the frame buffer
type Pixel struct {
	X, Y  int
	Color RGB565
}

// FrameBuffer is the pixel store replayed by the output driver
type FrameBuffer struct {
	panel Panel
	rows  [][Width]Cell
}

// NewFrameBuffer allocates a zeroed buffer for the given panel
func NewFrameBuffer(panel Panel) *FrameBuffer {
	return &FrameBuffer{
		panel: panel,
		rows:  make([][Width]Cell, panel.RowsPerHalf()),
	}
}

// Panel returns the geometry the buffer was allocated for
func (fb *FrameBuffer) Panel() Panel {
	return fb.panel
}

// Draw stores each pixel, gamma corrected, into the half of the cell its
// row falls in. Coordinates outside the panel panic.
func (fb *FrameBuffer) Draw(pixels ...Pixel) {
	for _, p := range pixels {
		fb.set(p.X, p.Y, p.Color)
	}
}

// locate maps a panel coordinate to its cell and reports whether it lies
// in the bottom half.
func (fb *FrameBuffer) locate(x, y int) (*Cell, bool) {
	n := fb.panel.RowsPerHalf()
	if x < 0 || x >= Width || y < 0 || y >= 2*n {
		panic(fmt.Sprintf("hub75: pixel (%d, %d) outside %dx%d panel", x, y, Width, 2*n))
	}
	return &fb.rows[y%n][x], y >= n
}

func (fb *FrameBuffer) set(x, y int, c RGB565) {
	r, g, b := c.Expand()
	cell, bottom := fb.locate(x, y)
	if bottom {
		cell.R2, cell.G2, cell.B2 = Gamma8[r], Gamma8[g], Gamma8[b]
	} else {
		cell.R1, cell.G1, cell.B1 = Gamma8[r], Gamma8[g], Gamma8[b]
	}
}

// Clear zeroes every channel. It skips the gamma lookup a drawn black
// frame would pay.
func (fb *FrameBuffer) Clear() {
	for i := range fb.rows {
		fb.rows[i] = [Width]Cell{}
	}
}

// Cell returns the stored values for a half-row and column
func (fb *FrameBuffer) Cell(halfRow, x int) Cell {
	return fb.rows[halfRow][x]
}

// At returns the stored (gamma corrected) channels for a panel coordinate
func (fb *FrameBuffer) At(x, y int) (r, g, b uint8) {
	c, bottom := fb.locate(x, y)
	if bottom {
		return c.R2, c.G2, c.B2
	}
	return c.R1, c.G1, c.B1
}
