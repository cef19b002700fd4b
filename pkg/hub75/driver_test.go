package hub75

import (
	"errors"
	"image/color"
	"testing"
)

var errStuck = errors.New("line stuck")

// TestNewDriver tests configuration and pin validation
func TestNewDriver(t *testing.T) {
	withoutF := func(p *Pins) *Pins {
		p.F = nil
		return p
	}
	withoutOE := func(p *Pins) *Pins {
		p.OE = nil
		return p
	}

	tests := []struct {
		name    string
		pins    func(*Pins) *Pins
		cfg     Config
		wantErr error
	}{
		{"zero bits", nil, Config{BrightnessBits: 0}, ErrBrightnessBits},
		{"nine bits", nil, Config{BrightnessBits: 9}, ErrBrightnessBits},
		{"one bit", nil, Config{BrightnessBits: 1}, nil},
		{"eight bits", nil, Config{BrightnessBits: 8}, nil},
		{"unknown panel", nil, Config{Panel: Panel(7), BrightnessBits: 4}, ErrUnknownPanel},
		{"unknown policy", nil, Config{BrightnessBits: 4, Policy: ErrorPolicy(3)}, ErrUnknownPolicy},
		{"missing OE", withoutOE, Config{BrightnessBits: 4}, ErrMissingPin},
		{"64x32 without F", withoutF, Config{BrightnessBits: 4}, nil},
		{"64x64 without F", withoutF, Config{Panel: Panel64x64, BrightnessBits: 4}, ErrMissingPin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			pins := rec.pins()
			if tt.pins != nil {
				pins = tt.pins(pins)
			}

			d, err := NewDriver(pins, &tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewDriver() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && d == nil {
				t.Error("NewDriver() returned nil driver when no error expected")
			}
			if len(rec.events) != 0 {
				t.Errorf("NewDriver() drove %d lines, want none", len(rec.events))
			}
		})
	}
}

// TestBrightnessConstants checks the derived PWM constants for every depth
func TestBrightnessConstants(t *testing.T) {
	for bits := uint8(1); bits <= 8; bits++ {
		rec := &recorder{}
		d, err := NewDriver(rec.pins(), &Config{BrightnessBits: bits})
		if err != nil {
			t.Fatalf("NewDriver(%d bits) error = %v", bits, err)
		}

		if want := 1<<bits - 1; int(d.BrightnessCount()) != want {
			t.Errorf("%d bits: BrightnessCount() = %d, want %d", bits, d.BrightnessCount(), want)
		}
		if want := 1 << (8 - bits); int(d.BrightnessStep()) != want {
			t.Errorf("%d bits: BrightnessStep() = %d, want %d", bits, d.BrightnessStep(), want)
		}
		if gap := 255 - int(d.BrightnessCount())*int(d.BrightnessStep()); gap < 0 || gap > 255 {
			t.Errorf("%d bits: count*step is %d away from 255", bits, gap)
		}
		if got := d.threshold(int(d.count) - 1); got == 0 {
			t.Errorf("%d bits: last threshold is 0", bits)
		}
	}
}

// TestOutputOnOff scans a single white pixel with one brightness bit
func TestOutputOnOff(t *testing.T) {
	rec := &recorder{}
	d, err := NewDriver(rec.pins(), &Config{Panel: Panel64x32, BrightnessBits: 1})
	if err != nil {
		t.Fatalf("NewDriver() error = %v", err)
	}
	d.Draw(Pixel{X: 0, Y: 0, Color: 0xffff})

	if err := d.Output(rec); err != nil {
		t.Fatalf("Output() error = %v", err)
	}

	ev := rec.events
	perRow := Width*8 + 11
	if want := 1 + 16*perRow + 1; len(ev) != want {
		t.Fatalf("Output() recorded %d events, want %d", len(ev), want)
	}
	if ev[0] != lineEvent("OE", false) {
		t.Errorf("first event = %+v, want OE low", ev[0])
	}
	if last := ev[len(ev)-1]; last != lineEvent("OE", true) {
		t.Errorf("last event = %+v, want OE high", last)
	}

	colors := []string{"R1", "G1", "B1", "R2", "G2", "B2"}
	lit := 0
	for i, e := range ev {
		if e != lineEvent("CLK", true) {
			continue
		}
		if ev[i+1] != lineEvent("CLK", false) {
			t.Fatalf("event %d = %+v, want CLK low after CLK high", i+1, ev[i+1])
		}
		top := true
		for j, name := range colors {
			c := ev[i-6+j]
			if c.name != name {
				t.Fatalf("event %d = %+v, want %s before the clock pulse", i-6+j, c, name)
			}
			// The pixel is in the top half, so the bottom chain stays dark
			if j < 3 {
				top = top && c.high
			} else if c.high {
				t.Errorf("event %d = %+v, want bottom half low", i-6+j, c)
			}
		}
		if top {
			lit++
			if i != 7 {
				t.Errorf("lit column shifted at event %d, want row 0 column 0 (event 7)", i)
			}
		}
	}
	if lit != 1 {
		t.Errorf("shifted %d columns with R1, G1 and B1 high, want 1", lit)
	}

	latch := []event{lineEvent("OE", true), settle, lineEvent("LAT", false), settle, lineEvent("LAT", true)}
	rows := 0
	for i, e := range ev {
		if e != lineEvent("LAT", true) {
			continue
		}
		for j, want := range latch {
			if got := ev[i-4+j]; got != want {
				t.Errorf("row %d: latch event %d = %+v, want %+v", rows, j, got, want)
			}
		}
		for bit, name := range []string{"A", "B", "C", "D"} {
			want := lineEvent(name, rows&(1<<bit) != 0)
			if got := ev[i+1+bit]; got != want {
				t.Errorf("row %d: address event = %+v, want %+v", rows, got, want)
			}
		}
		if ev[i+5] != settle || ev[i+6] != lineEvent("OE", false) {
			t.Errorf("row %d: events after address = %+v, %+v, want delay then OE low", rows, ev[i+5], ev[i+6])
		}
		rows++
	}
	if rows != 16 {
		t.Errorf("latched %d rows, want 16", rows)
	}
	if n := rec.count(lineEvent("OE", false)); n != 1+16 {
		t.Errorf("OE driven low %d times, want once at start and once per row", n)
	}
}

// TestOutputThreshold checks that a stored value of 128 is lit in exactly
// the sub-frames whose threshold is at most 128.
func TestOutputThreshold(t *testing.T) {
	rec := &recorder{only: map[string]bool{"R1": true}}
	d, err := NewDriver(rec.pins(), &Config{Panel: Panel64x32, BrightnessBits: 8})
	if err != nil {
		t.Fatalf("NewDriver() error = %v", err)
	}
	d.rows[0][0].R1 = 128

	if err := d.Output(rec); err != nil {
		t.Fatalf("Output() error = %v", err)
	}

	perFrame := 16 * Width
	if want := 255 * perFrame; len(rec.events) != want {
		t.Fatalf("recorded %d R1 events, want %d", len(rec.events), want)
	}
	for i, e := range rec.events {
		frame := i / perFrame
		threshold := frame + 1
		want := i%perFrame == 0 && threshold <= 128
		if e.high != want {
			t.Fatalf("sub-frame %d (threshold %d), shift %d: R1 high = %v, want %v",
				frame, threshold, i%perFrame, e.high, want)
		}
	}
}

// TestOutputRowAddress checks the binary encoding of the row address
func TestOutputRowAddress(t *testing.T) {
	tests := []struct {
		name  string
		panel Panel
		row   int
		want  map[string]bool
	}{
		{"row 9", Panel64x32, 9, map[string]bool{"A": true, "B": false, "C": false, "D": true}},
		{"row 6", Panel64x32, 6, map[string]bool{"A": false, "B": true, "C": true, "D": false}},
		{"row 17", Panel64x64, 17, map[string]bool{"A": true, "B": false, "C": false, "D": false, "F": true}},
		{"row 31", Panel64x64, 31, map[string]bool{"A": true, "B": true, "C": true, "D": true, "F": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{only: map[string]bool{"A": true, "B": true, "C": true, "D": true, "F": true}}
			d, err := NewDriver(rec.pins(), &Config{Panel: tt.panel, BrightnessBits: 1})
			if err != nil {
				t.Fatalf("NewDriver() error = %v", err)
			}
			if err := d.Output(rec); err != nil {
				t.Fatalf("Output() error = %v", err)
			}

			lines := tt.panel.AddressLines()
			if want := tt.panel.RowsPerHalf() * lines; len(rec.events) != want {
				t.Fatalf("recorded %d address events, want %d", len(rec.events), want)
			}
			for _, e := range rec.events[tt.row*lines : (tt.row+1)*lines] {
				if e.high != tt.want[e.name] {
					t.Errorf("row %d: %s high = %v, want %v", tt.row, e.name, e.high, tt.want[e.name])
				}
			}
		})
	}
}

// TestOutputErrorPolicy tests both line failure policies
func TestOutputErrorPolicy(t *testing.T) {
	t.Run("propagate", func(t *testing.T) {
		rec := &recorder{fail: map[string]error{"CLK": errStuck}}
		d, err := NewDriver(rec.pins(), &Config{BrightnessBits: 2})
		if err != nil {
			t.Fatalf("NewDriver() error = %v", err)
		}

		err = d.Output(rec)
		if !errors.Is(err, errStuck) {
			t.Fatalf("Output() error = %v, want %v", err, errStuck)
		}
		// OE low, six color lines, then the failing clock pulse
		if len(rec.events) != 8 {
			t.Errorf("Output() kept going after the failure: %d events", len(rec.events))
		}
	})

	t.Run("ignore", func(t *testing.T) {
		rec := &recorder{fail: map[string]error{"CLK": errStuck, "OE": errStuck}}
		d, err := NewDriver(rec.pins(), &Config{BrightnessBits: 2, Policy: IgnoreErrors})
		if err != nil {
			t.Fatalf("NewDriver() error = %v", err)
		}

		if err := d.Output(rec); err != nil {
			t.Fatalf("Output() error = %v, want nil", err)
		}
		if want := 1 + 3*16*(Width*8+11) + 1; len(rec.events) != want {
			t.Errorf("Output() recorded %d events, want a full scan of %d", len(rec.events), want)
		}
	})
}

// TestDisplayer tests the drivers.Displayer methods
func TestDisplayer(t *testing.T) {
	rec := &recorder{}
	d, err := NewDriver(rec.pins(), &Config{Panel: Panel64x64, BrightnessBits: 1})
	if err != nil {
		t.Fatalf("NewDriver() error = %v", err)
	}

	if w, h := d.Size(); w != 64 || h != 64 {
		t.Errorf("Size() = %dx%d, want 64x64", w, h)
	}

	d.SetPixel(1, 40, color.RGBA{R: 255, A: 255})
	if r, g, b := d.At(1, 40); r != 255 || g != 0 || b != 0 {
		t.Errorf("At(1, 40) = (%d, %d, %d), want (255, 0, 0)", r, g, b)
	}
	if c := d.Cell(8, 1); c.R2 != 255 || c.R1 != 0 {
		t.Errorf("Cell(8, 1) = %+v, want bottom red", c)
	}

	delays := 0
	d.SetDelay(DelayFunc(func(us uint32) { delays++ }))
	if err := d.Display(); err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	if delays != 3*32 {
		t.Errorf("Display() waited %d times, want %d", delays, 3*32)
	}
}
