// Package hub75 drives RGB LED matrix panels with a HUB75 connector by
// bit-banging the color, address and control lines.
//
// The panel is split in half: the top rows are fed by one shift-register
// chain (R1, G1, B1) and the bottom rows by another (R2, G2, B2), so one
// top row and the matching bottom row are shown together. The row pair is
// selected by the address lines A-D (plus F on 64x64 panels).
//
// The panel has no brightness control of its own. Output renders the same
// frame several times per call and turns a pixel off in the sub-frames
// whose threshold is above its stored value, which time-averages into
// intermediate brightness levels (PWM).
package hub75

import (
	"errors"
	"fmt"
)

// settleMicros is the pause around latching and row switching. Shorter
// waits let the previous row bleed into the next one (ghosting).
const settleMicros = 2

// ErrorPolicy decides what Output does when a line cannot be driven
type ErrorPolicy int

const (
	// PropagateErrors aborts the scan and returns the first line error
	PropagateErrors ErrorPolicy = iota
	// IgnoreErrors discards line errors and always finishes the scan
	IgnoreErrors
)

// ErrBrightnessBits is returned for a brightness bit depth outside 1-8
var ErrBrightnessBits = errors.New("brightness bits must be between 1 and 8")

// ErrUnknownPolicy is returned for an unrecognised error policy
var ErrUnknownPolicy = errors.New("unknown error policy")

// ParseErrorPolicy maps a configuration name to an ErrorPolicy
func ParseErrorPolicy(name string) (ErrorPolicy, error) {
	switch name {
	case "propagate", "":
		return PropagateErrors, nil
	case "ignore":
		return IgnoreErrors, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Config holds the construction-time settings of a Driver
type Config struct {
	Panel Panel
	// BrightnessBits is the PWM depth per channel (1-8). Every extra bit
	// doubles the time Output takes, 3-4 bits is usually a good choice.
	BrightnessBits uint8
	Policy         ErrorPolicy
}

// Driver owns a frame buffer and the lines of one panel
type Driver struct {
	*FrameBuffer

	policy ErrorPolicy
	step   uint8
	count  uint8

	color        [6]line
	addr         []line
	clk, lat, oe line
	delay        Delayer
}

// NewDriver validates the configuration and pin set and allocates the
// frame buffer. No pin is touched.
func NewDriver(pins *Pins, cfg *Config) (*Driver, error) {
	if cfg.BrightnessBits < 1 || cfg.BrightnessBits > 8 {
		return nil, fmt.Errorf("%w: got %d", ErrBrightnessBits, cfg.BrightnessBits)
	}
	if !cfg.Panel.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPanel, cfg.Panel)
	}
	if cfg.Policy != PropagateErrors && cfg.Policy != IgnoreErrors {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, cfg.Policy)
	}
	if err := pins.validate(cfg.Panel); err != nil {
		return nil, err
	}

	return &Driver{
		FrameBuffer: NewFrameBuffer(cfg.Panel),
		policy:      cfg.Policy,
		step:        uint8(1 << (8 - cfg.BrightnessBits)),
		count:       uint8(uint16(1)<<cfg.BrightnessBits - 1),
		color:       pins.colorLines(),
		addr:        pins.addressLines(cfg.Panel),
		clk:         line{"CLK", pins.CLK},
		lat:         line{"LAT", pins.LAT},
		oe:          line{"OE", pins.OE},
		delay:       SpinDelay{},
	}, nil
}

// BrightnessStep is the distance between two PWM thresholds
func (d *Driver) BrightnessStep() uint8 {
	return d.step
}

// BrightnessCount is the number of PWM sub-frames per Output call
func (d *Driver) BrightnessCount() uint8 {
	return d.count
}

// threshold returns the value a channel must reach to be lit in sub-frame i
func (d *Driver) threshold(i int) uint8 {
	t := uint16(i+1) * uint16(d.step)
	if t > 255 {
		t = 255
	}
	return uint8(t)
}

// Output replays the whole buffer onto the panel once for every PWM
// sub-frame. It blocks until done and must be called often enough to
// avoid flicker. The buffer must not be written while it runs.
func (d *Driver) Output(delay Delayer) error {
	// The row latched by the previous call stays lit until the first
	// row of this scan is latched.
	if err := d.drive(d.oe, false); err != nil {
		return err
	}

	for i := 0; i < int(d.count); i++ {
		threshold := d.threshold(i)
		for r := range d.rows {
			if err := d.shiftRow(&d.rows[r], threshold); err != nil {
				return err
			}
			if err := d.latchRow(r, delay); err != nil {
				return err
			}
		}
	}

	// Blank, otherwise the last row stays on until the next call and
	// looks brighter than the others.
	return d.drive(d.oe, true)
}

// shiftRow clocks one half-row of thresholded bits into both chains
func (d *Driver) shiftRow(row *[Width]Cell, threshold uint8) error {
	for x := range row {
		c := &row[x]
		values := [6]uint8{c.R1, c.G1, c.B1, c.R2, c.G2, c.B2}
		for i, l := range d.color {
			if err := d.drive(l, values[i] >= threshold); err != nil {
				return err
			}
		}
		if err := d.drive(d.clk, true); err != nil {
			return err
		}
		if err := d.drive(d.clk, false); err != nil {
			return err
		}
	}
	return nil
}

// latchRow blanks the panel, latches the shifted data, selects row r and
// unblanks.
func (d *Driver) latchRow(r int, delay Delayer) error {
	if err := d.drive(d.oe, true); err != nil {
		return err
	}
	delay.DelayMicroseconds(settleMicros)
	if err := d.drive(d.lat, false); err != nil {
		return err
	}
	delay.DelayMicroseconds(settleMicros)
	if err := d.drive(d.lat, true); err != nil {
		return err
	}

	for bit, l := range d.addr {
		if err := d.drive(l, r&(1<<bit) != 0); err != nil {
			return err
		}
	}

	delay.DelayMicroseconds(settleMicros)
	return d.drive(d.oe, false)
}

func (d *Driver) drive(l line, high bool) error {
	err := l.pin.Set(high)
	if err == nil || d.policy == IgnoreErrors {
		return nil
	}
	level := "low"
	if high {
		level = "high"
	}
	return fmt.Errorf("failed to drive %s %s: %w", l.name, level, err)
}
