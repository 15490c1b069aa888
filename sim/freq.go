package sim

import (
	"log"
	"math"
)

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive ticks, in seconds.
func (f Freq) Period() float64 {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return 1.0 / float64(f)
}

// Seconds converts a number of cycles of this clock into seconds.
func (f Freq) Seconds(cycles VTimeInCycle) float64 {
	return float64(cycles) * f.Period()
}

// Cycle converts a time in seconds into the number of cycles passed since
// time 0.
func (f Freq) Cycle(seconds float64) VTimeInCycle {
	if math.IsNaN(seconds) || seconds < 0 {
		log.Panic("invalid time")
	}

	return VTimeInCycle(math.Round(seconds * float64(f)))
}

// CyclesPerTick returns how many cycles of this clock fit into one tick of a
// slower clock. The result is never smaller than 1.
func (f Freq) CyclesPerTick(slower Freq) VTimeInCycle {
	if slower == 0 {
		log.Panic("frequency cannot be 0")
	}

	n := VTimeInCycle(math.Ceil(float64(f) / float64(slower)))
	if n == 0 {
		return 1
	}

	return n
}
