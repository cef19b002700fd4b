// Package gpio exposes Linux GPIO character device lines as hub75 pins.
package gpio

import (
	"errors"
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"

	"github.com/fkcurrie/hub75-golang/pkg/hub75"
)

// Consumer is the label the lines are requested under
const Consumer = "hub75"

// PinMap holds the line offsets of a HUB75 connector on one GPIO chip.
// F is only requested for 64x64 panels.
type PinMap struct {
	R1  int `json:"r1"`
	G1  int `json:"g1"`
	B1  int `json:"b1"`
	R2  int `json:"r2"`
	G2  int `json:"g2"`
	B2  int `json:"b2"`
	A   int `json:"a"`
	B   int `json:"b"`
	C   int `json:"c"`
	D   int `json:"d"`
	F   int `json:"f"`
	CLK int `json:"clk"`
	LAT int `json:"lat"`
	OE  int `json:"oe"`
}

// BonnetPinMap is the wiring of the Adafruit RGB Matrix Bonnet
var BonnetPinMap = PinMap{
	R1: 5, G1: 13, B1: 6,
	R2: 12, G2: 16, B2: 23,
	A: 22, B: 26, C: 27, D: 20, F: 24,
	CLK: 17, LAT: 21, OE: 4,
}

// ErrDuplicateOffset is returned when two lines share an offset
var ErrDuplicateOffset = errors.New("duplicate line offset")

// ErrNegativeOffset is returned for an offset below zero
var ErrNegativeOffset = errors.New("negative line offset")

// Named is a line offset with its connector name
type Named struct {
	Name   string
	Offset int
}

// Lines lists the offsets used by the panel, in connector order
func (m PinMap) Lines(panel hub75.Panel) []Named {
	lines := []Named{
		{"R1", m.R1}, {"G1", m.G1}, {"B1", m.B1},
		{"R2", m.R2}, {"G2", m.G2}, {"B2", m.B2},
		{"A", m.A}, {"B", m.B}, {"C", m.C}, {"D", m.D},
	}
	if panel.AddressLines() == 5 {
		lines = append(lines, Named{"F", m.F})
	}
	return append(lines, Named{"CLK", m.CLK}, Named{"LAT", m.LAT}, Named{"OE", m.OE})
}

// Validate checks that every offset used by the panel is usable and unique
func (m PinMap) Validate(panel hub75.Panel) error {
	seen := make(map[int]string)
	for _, l := range m.Lines(panel) {
		if l.Offset < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeOffset, l.Name, l.Offset)
		}
		if other, ok := seen[l.Offset]; ok {
			return fmt.Errorf("%w: %s and %s both use %d", ErrDuplicateOffset, other, l.Name, l.Offset)
		}
		seen[l.Offset] = l.Name
	}
	return nil
}

var _ hub75.Pin = (*Line)(nil)

// Line is a requested output line implementing hub75.Pin
type Line struct {
	name   string
	offset int
	line   *gpiocdev.Line
}

// Set drives the line high or low
func (l *Line) Set(high bool) error {
	v := 0
	if high {
		v = 1
	}
	return l.line.SetValue(v)
}

// Name returns the connector name of the line
func (l *Line) Name() string {
	return l.name
}

// Offset returns the line offset on the chip
func (l *Line) Offset() int {
	return l.offset
}

// Bank is the set of lines requested for one panel
type Bank struct {
	chip  string
	lines []*Line
	pins  hub75.Pins
}

// Open requests every line the panel uses as an output, driven low.
// Lines already requested are released again if a later request fails.
func Open(chip string, m PinMap, panel hub75.Panel) (*Bank, error) {
	if err := m.Validate(panel); err != nil {
		return nil, err
	}

	b := &Bank{chip: chip}
	log.Printf("Requesting %s lines on %s...", panel, chip)
	for _, n := range m.Lines(panel) {
		l, err := gpiocdev.RequestLine(chip, n.Offset,
			gpiocdev.AsOutput(0), gpiocdev.WithConsumer(Consumer))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to request %s (line %d): %w", n.Name, n.Offset, err)
		}
		line := &Line{name: n.Name, offset: n.Offset, line: l}
		b.lines = append(b.lines, line)
		b.assign(line)
	}
	log.Printf("Requested %d lines", len(b.lines))

	return b, nil
}

func (b *Bank) assign(l *Line) {
	p := &b.pins
	switch l.name {
	case "R1":
		p.R1 = l
	case "G1":
		p.G1 = l
	case "B1":
		p.B1 = l
	case "R2":
		p.R2 = l
	case "G2":
		p.G2 = l
	case "B2":
		p.B2 = l
	case "A":
		p.A = l
	case "B":
		p.B = l
	case "C":
		p.C = l
	case "D":
		p.D = l
	case "F":
		p.F = l
	case "CLK":
		p.CLK = l
	case "LAT":
		p.LAT = l
	case "OE":
		p.OE = l
	}
}

// Pins returns the requested lines as a hub75 pin set
func (b *Bank) Pins() *hub75.Pins {
	return &b.pins
}

// Lines returns the requested lines in connector order
func (b *Bank) Lines() []*Line {
	return b.lines
}

// Close releases all lines
func (b *Bank) Close() error {
	var first error
	for _, l := range b.lines {
		if err := l.line.Close(); err != nil {
			log.Printf("Error closing %s (%s line %d): %v", l.name, b.chip, l.offset, err)
			if first == nil {
				first = err
			}
		}
	}
	b.lines = nil
	b.pins = hub75.Pins{}
	return first
}
