package hub75

// event is one line transition or delay captured by recorder
type event struct {
	name string
	high bool
	us   uint32
}

func lineEvent(name string, high bool) event { return event{name: name, high: high} }

var settle = event{name: "delay", us: settleMicros}

// recorder stands in for the GPIO lines and the delay source
type recorder struct {
	events []event
	// only, when set, limits recording to the named lines
	only map[string]bool
	fail map[string]error
}

func (r *recorder) pin(name string) Pin {
	return PinFunc(func(high bool) error {
		if r.only == nil || r.only[name] {
			r.events = append(r.events, lineEvent(name, high))
		}
		return r.fail[name]
	})
}

func (r *recorder) DelayMicroseconds(us uint32) {
	if r.only == nil {
		r.events = append(r.events, event{name: "delay", us: us})
	}
}

func (r *recorder) pins() *Pins {
	return &Pins{
		R1: r.pin("R1"), G1: r.pin("G1"), B1: r.pin("B1"),
		R2: r.pin("R2"), G2: r.pin("G2"), B2: r.pin("B2"),
		A: r.pin("A"), B: r.pin("B"), C: r.pin("C"), D: r.pin("D"), F: r.pin("F"),
		CLK: r.pin("CLK"), LAT: r.pin("LAT"), OE: r.pin("OE"),
	}
}

func (r *recorder) count(e event) int {
	n := 0
	for _, got := range r.events {
		if got == e {
			n++
		}
	}
	return n
}
