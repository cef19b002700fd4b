package hub75

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Delayer blocks the caller for a number of microseconds
type Delayer interface {
	DelayMicroseconds(us uint32)
}

// DelayFunc adapts a function to the Delayer interface
type DelayFunc func(us uint32)

// DelayMicroseconds calls f(us)
func (f DelayFunc) DelayMicroseconds(us uint32) {
	f(us)
}

// SpinDelay busy-waits instead of sleeping. Scheduler sleeps are far
// coarser than the couple of microseconds the latch sequence needs.
type SpinDelay struct{}

// DelayMicroseconds spins until us microseconds have passed
func (SpinDelay) DelayMicroseconds(us uint32) {
	cpu.Nanospin(time.Duration(us) * time.Microsecond)
}
