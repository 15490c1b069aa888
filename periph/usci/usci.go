// Package usci provides a USCI serial unit. It exists to drive the DMA
// controller with real trigger sources: a received byte raises RXIFG and a
// finished transmission raises TXIFG, and both flags are DMA triggers.
package usci

import (
	"errors"
	"fmt"
	"log"

	"github.com/sarchlab/mcusim/dma"
	"github.com/sarchlab/mcusim/intc"
	"github.com/sarchlab/mcusim/sim"
)

// Register offsets, relative to the base of the unit.
const (
	CTLW0 = 0x00
	BRW   = 0x06
	MCTL  = 0x08
	STAT  = 0x0A
	RXBUF = 0x0C
	TXBUF = 0x0E
	IE    = 0x1C
	IFG   = 0x1D
	IV    = 0x1E

	RegisterSize = 0x20
)

// Bits of IE and IFG.
const (
	RXIFG uint8 = 0x01
	TXIFG uint8 = 0x02
)

// Local trigger indexes, as seen by the DMA trigger table.
const (
	TriggerRX = 0
	TriggerTX = 1
)

// ErrUndecodedRegister is returned for accesses outside the register block.
var ErrUndecodedRegister = errors.New("undecoded USCI register")

// HookPosTransmit marks a byte leaving the unit. The detail is the byte.
var HookPosTransmit = &sim.HookPos{Name: "USCITransmit"}

// HookPosReceive marks a byte entering the unit. The detail is the byte.
var HookPosReceive = &sim.HookPos{Name: "USCIReceive"}

type txDoneEvent struct {
	*sim.EventBase
	data uint8
}

// Comp is a USCI unit.
type Comp struct {
	*sim.ComponentBase

	engine   sim.Engine
	line     intc.Line
	vector   int
	base     uint32
	txCycles sim.VTimeInCycle

	regs     [RegisterSize / 2]uint16
	rxbuf    uint8
	txbuf    uint8
	ie       uint8
	ifg      uint8
	asserted bool

	sinks       []dma.TriggerSink
	transmitted []byte
}

// Base returns the address of the register block.
func (c *Comp) Base() uint32 {
	return c.base
}

// Transmitted returns every byte sent so far.
func (c *Comp) Transmitted() []byte {
	return c.transmitted
}

// Receive puts a byte in RXBUF as if it came from the wire.
func (c *Comp) Receive(b uint8) {
	c.rxbuf = b

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosReceive,
		Item:   c,
		Detail: b,
	})

	c.setFlag(RXIFG, TriggerRX)
}

// TriggerState tells if the flag behind a trigger is set.
func (c *Comp) TriggerState(index int) bool {
	return c.ifg&flagOf(index) != 0
}

// ClearTrigger clears the flag behind a trigger.
func (c *Comp) ClearTrigger(index int) {
	c.clearFlag(flagOf(index))
}

// RegisterDMA adds a sink that is told when a flag gets set.
func (c *Comp) RegisterDMA(sink dma.TriggerSink) {
	for _, s := range c.sinks {
		if s == sink {
			return
		}
	}

	c.sinks = append(c.sinks, sink)
}

// InterruptServiced does nothing. The flags are cleared by reading RXBUF,
// writing TXBUF or reading IV.
func (c *Comp) InterruptServiced(_ int) {}

func flagOf(index int) uint8 {
	switch index {
	case TriggerRX:
		return RXIFG
	case TriggerTX:
		return TXIFG
	default:
		log.Panicf("USCI has no trigger %d", index)
	}

	return 0
}

func (c *Comp) setFlag(flag uint8, trigger int) {
	c.ifg |= flag
	c.updateInterrupt()

	for _, s := range c.sinks {
		s.FireTrigger(c, trigger)
	}
}

func (c *Comp) clearFlag(flag uint8) {
	c.ifg &^= flag
	c.updateInterrupt()
}

func (c *Comp) updateInterrupt() {
	asserted := c.ie&c.ifg != 0
	if asserted == c.asserted {
		return
	}

	c.asserted = asserted
	c.line.SetInterruptLine(c.vector, c, asserted)
}

// Handle completes transmissions.
func (c *Comp) Handle(e sim.Event) error {
	switch evt := e.(type) {
	case *txDoneEvent:
		c.transmitted = append(c.transmitted, evt.data)

		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosTransmit,
			Item:   c,
			Detail: evt.data,
		})

		c.setFlag(TXIFG, TriggerTX)
	default:
		log.Panicf("cannot handle event of type %T", e)
	}

	return nil
}

func (c *Comp) offset(address uint32) (uint32, error) {
	offset := address - c.base
	if address < c.base || offset >= RegisterSize {
		return 0, fmt.Errorf("%w: 0x%05x", ErrUndecodedRegister, address)
	}

	return offset, nil
}

// Read handles a register read. Reading RXBUF clears RXIFG and reading IV
// clears the flag it reports.
func (c *Comp) Read(address uint32, word bool) (uint16, error) {
	offset, err := c.offset(address)
	if err != nil {
		return 0, err
	}

	value := c.read(offset &^ 1)

	if !word {
		if offset&1 == 1 {
			return value >> 8, nil
		}

		return value & 0xFF, nil
	}

	return value, nil
}

func (c *Comp) read(reg uint32) uint16 {
	switch reg {
	case RXBUF:
		c.clearFlag(RXIFG)
		return uint16(c.rxbuf)
	case IV:
		return c.readIV()
	default:
		return c.peek(reg)
	}
}

func (c *Comp) readIV() uint16 {
	pending := c.ie & c.ifg

	switch {
	case pending&RXIFG != 0:
		c.clearFlag(RXIFG)
		return 2
	case pending&TXIFG != 0:
		c.clearFlag(TXIFG)
		return 4
	}

	return 0
}

func (c *Comp) peek(reg uint32) uint16 {
	switch reg {
	case RXBUF:
		return uint16(c.rxbuf)
	case TXBUF:
		return uint16(c.txbuf)
	case IE:
		return uint16(c.ie) | uint16(c.ifg)<<8
	case IV:
		pending := c.ie & c.ifg
		switch {
		case pending&RXIFG != 0:
			return 2
		case pending&TXIFG != 0:
			return 4
		}

		return 0
	default:
		return c.regs[reg/2]
	}
}

// Write handles a register write. Writing TXBUF starts a transmission that
// completes after the configured number of cycles.
func (c *Comp) Write(address uint32, value uint16, word bool) error {
	offset, err := c.offset(address)
	if err != nil {
		return err
	}

	reg := offset &^ 1

	if !word {
		old := c.peek(reg)
		if offset&1 == 1 {
			value = old&0x00FF | (value&0xFF)<<8
		} else {
			value = old&0xFF00 | value&0xFF
		}
	}

	c.write(reg, value)

	return nil
}

func (c *Comp) write(reg uint32, value uint16) {
	switch reg {
	case RXBUF, IV:
	case TXBUF:
		c.transmit(uint8(value))
	case IE:
		c.ie = uint8(value) & (RXIFG | TXIFG)
		c.writeFlags(uint8(value>>8) & (RXIFG | TXIFG))
	default:
		c.regs[reg/2] = value
	}
}

func (c *Comp) writeFlags(flags uint8) {
	set := flags &^ c.ifg

	c.ifg = flags
	c.updateInterrupt()

	if set&RXIFG != 0 {
		c.setFlag(RXIFG, TriggerRX)
	}

	if set&TXIFG != 0 {
		c.setFlag(TXIFG, TriggerTX)
	}
}

func (c *Comp) transmit(data uint8) {
	c.txbuf = data
	c.clearFlag(TXIFG)

	c.engine.Schedule(&txDoneEvent{
		EventBase: sim.NewEventBase(c.engine.CurrentTime()+c.txCycles, c),
		data:      data,
	})
}

// Reset returns the unit to its power-up state. TXIFG is set, as the
// transmit buffer is empty.
func (c *Comp) Reset() {
	c.regs = [RegisterSize / 2]uint16{}
	c.rxbuf = 0
	c.txbuf = 0
	c.ie = 0
	c.ifg = TXIFG
	c.transmitted = nil
	c.updateInterrupt()
}
