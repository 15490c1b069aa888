package dma

import (
	"log"

	"github.com/sarchlab/mcusim/mem"
	"github.com/sarchlab/mcusim/sim"
)

// A Builder can build DMA controllers.
type Builder struct {
	engine       sim.Engine
	bus          mem.Bus
	line         InterruptLine
	base         uint32
	vectorNumber int
}

// MakeBuilder returns a Builder with the MSP430F5437 defaults.
func MakeBuilder() Builder {
	return Builder{
		base:         0x0500,
		vectorNumber: 50,
	}
}

// WithEngine sets the engine that runs the transfers.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithBus sets the bus the channels move data on.
func (b Builder) WithBus(bus mem.Bus) Builder {
	b.bus = bus
	return b
}

// WithInterruptLine sets where the controller requests its interrupt.
func (b Builder) WithInterruptLine(line InterruptLine) Builder {
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
	b.vectorNumber = vector
	return b
}

// Build creates a DMA controller. Trigger 0 is bound to the controller itself
// as the software trigger.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil || b.bus == nil || b.line == nil {
		log.Panic("a DMA controller needs an engine, a bus and an interrupt line")
	}

	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		engine:        b.engine,
		bus:           b.bus,
		line:          b.line,
		base:          b.base & mem.AddressMask,
		vectorNumber:  b.vectorNumber,
	}
	c.arbiter.comp = c

	for i := range c.channels {
		c.channels[i] = newChannel(c, i)
	}

	err := c.BindTrigger(TriggerDMAREQ, c, 0)
	if err != nil {
		log.Panic(err)
	}

	for _, ch := range c.channels {
		ch.bind(TriggerDMAREQ)
	}

	return c
}
