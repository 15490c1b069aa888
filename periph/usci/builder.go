package usci

import (
	"log"

	"github.com/sarchlab/mcusim/intc"
	"github.com/sarchlab/mcusim/sim"
)

// A Builder can build USCI units.
type Builder struct {
	engine   sim.Engine
	line     intc.Line
	base     uint32
	vector   int
	txCycles sim.VTimeInCycle
}

// MakeBuilder returns a Builder for USCIB0 of the MSP430F5437.
func MakeBuilder() Builder {
	return Builder{
		base:     0x05E0,
		vector:   55,
		txCycles: 10,
	}
}

// WithEngine sets the engine that completes transmissions.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithInterruptLine sets where the unit requests its interrupt.
func (b Builder) WithInterruptLine(line intc.Line) Builder {
	b.line = line
	return b
}

// WithBaseAddress sets the address of the register block.
func (b Builder) WithBaseAddress(base uint32) Builder {
	b.base = base
	return b
}

// WithVector sets the interrupt vector number.
func (b Builder) WithVector(vector int) Builder {
	b.vector = vector
	return b
}

// WithTransmitCycles sets how long a byte takes to leave TXBUF.
func (b Builder) WithTransmitCycles(n sim.VTimeInCycle) Builder {
	b.txCycles = n
	return b
}

// Build creates a USCI unit.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil || b.line == nil {
		log.Panic("a USCI unit needs an engine and an interrupt line")
	}

	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		engine:        b.engine,
		line:          b.line,
		base:          b.base,
		vector:        b.vector,
		txCycles:      b.txCycles,
		ifg:           TXIFG,
	}

	return c
}
