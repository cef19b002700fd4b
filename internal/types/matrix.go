package types

import "tinygo.org/x/drivers"

// Matrix represents a panel that content can be drawn into and refreshed
type Matrix interface {
	drivers.Displayer
	// Clear zeroes the frame buffer without refreshing the panel
	Clear()
}
