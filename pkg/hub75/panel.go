package hub75

import (
	"errors"
	"fmt"
)

// Panel selects the physical geometry of the matrix
type Panel int

const (
	// Panel64x32 is a 64x32 panel with 1/16 scan (address lines A-D)
	Panel64x32 Panel = iota
	// Panel64x64 is a 64x64 panel with 1/32 scan (address lines A-D and F)
	Panel64x64
)

// Width is the number of columns shifted into each color chain per row
const Width = 64

// ErrUnknownPanel is returned when a panel name or value is not recognised
var ErrUnknownPanel = errors.New("unknown panel size")

// RowsPerHalf returns the number of addressable rows in each half of the panel
func (p Panel) RowsPerHalf() int {
	if p == Panel64x64 {
		return 32
	}
	return 16
}

// Height returns the panel height in pixels
func (p Panel) Height() int {
	return 2 * p.RowsPerHalf()
}

// AddressLines returns the number of row-address lines the panel uses
func (p Panel) AddressLines() int {
	if p == Panel64x64 {
		return 5
	}
	return 4
}

func (p Panel) valid() bool {
	return p == Panel64x32 || p == Panel64x64
}

// String returns the panel name as used in configuration files
func (p Panel) String() string {
	switch p {
	case Panel64x32:
		return "64x32"
	case Panel64x64:
		return "64x64"
	}
	return fmt.Sprintf("Panel(%d)", int(p))
}

// ParsePanel maps a configuration name such as "64x32" to a Panel
func ParsePanel(name string) (Panel, error) {
	switch name {
	case "64x32", "":
		return Panel64x32, nil
	case "64x64":
		return Panel64x64, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPanel, name)
}
