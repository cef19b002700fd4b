package hub75

import (
	"errors"
	"fmt"
)

// Pin is a single output line that can be driven high or low
type Pin interface {
	Set(high bool) error
}

// PinFunc adapts a function to the Pin interface
type PinFunc func(high bool) error

// Set calls f(high)
func (f PinFunc) Set(high bool) error {
	return f(high)
}

// Pins is the set of lines making up a HUB75 connector.
// F is the fifth address line and is only used by 64x64 panels.
type Pins struct {
	// Color data, top half
	R1, G1, B1 Pin
	// Color data, bottom half
	R2, G2, B2 Pin
	// Row address
	A, B, C, D, F Pin
	// Control
	CLK, LAT, OE Pin
}

// ErrMissingPin is returned when a line required by the panel is nil
var ErrMissingPin = errors.New("missing pin")

// line is a pin paired with its connector name for error reporting
type line struct {
	name string
	pin  Pin
}

func (p *Pins) colorLines() [6]line {
	return [6]line{
		{"R1", p.R1}, {"G1", p.G1}, {"B1", p.B1},
		{"R2", p.R2}, {"G2", p.G2}, {"B2", p.B2},
	}
}

func (p *Pins) addressLines(panel Panel) []line {
	addr := []line{{"A", p.A}, {"B", p.B}, {"C", p.C}, {"D", p.D}, {"F", p.F}}
	return addr[:panel.AddressLines()]
}

func (p *Pins) validate(panel Panel) error {
	colors := p.colorLines()
	all := append(colors[:], p.addressLines(panel)...)
	all = append(all, line{"CLK", p.CLK}, line{"LAT", p.LAT}, line{"OE", p.OE})
	for _, l := range all {
		if l.pin == nil {
			return fmt.Errorf("%w: %s", ErrMissingPin, l.name)
		}
	}
	return nil
}
