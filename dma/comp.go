// Package dma emulates the DMAxv2 controller of the MSP430x5xx family.
//
// The controller has three channels. Each channel selects one of 32 triggers
// through DMACTL0/DMACTL1. A peripheral bound to a trigger calls FireTrigger
// when its condition becomes true; every channel selecting that trigger then
// moves one byte on the next event processed by the engine. Completed blocks
// raise DMAIFG and, with DMAIE set, compete for the DMAIV vector.
package dma

import (
	"fmt"
	"log"
	"strings"

	"github.com/sarchlab/mcusim/intc"
	"github.com/sarchlab/mcusim/mem"
	"github.com/sarchlab/mcusim/sim"
)

// An InterruptLine is where the controller requests its interrupt vector.
type InterruptLine interface {
	SetInterruptLine(vector int, source intc.Source, asserted bool)
}

type transferEvent struct {
	*sim.EventBase
	channel int
}

// Comp is the DMA controller.
type Comp struct {
	*sim.ComponentBase

	engine       sim.Engine
	bus          mem.Bus
	line         InterruptLine
	base         uint32
	vectorNumber int

	channels [NumChannels]*Channel
	ctl      [5]uint16
	triggers triggerTable
	arbiter  arbiter
}

// Base returns the address of the register block.
func (c *Comp) Base() uint32 {
	return c.base
}

// VectorNumber returns the interrupt vector the controller requests.
func (c *Comp) VectorNumber() int {
	return c.vectorNumber
}

// Channel returns channel i.
func (c *Comp) Channel(i int) *Channel {
	return c.channels[i]
}

// Vector returns DMAIV without the side effect of a register read.
func (c *Comp) Vector() uint16 {
	return c.arbiter.vector
}

// BindTrigger makes trigger id refer to the given provider. Channels pick the
// binding up the next time DMACTL0/DMACTL1 selects the id.
func (c *Comp) BindTrigger(id int, provider TriggerProvider, index int) error {
	err := c.triggers.bind(id, provider, index)
	if err != nil {
		return err
	}

	provider.RegisterDMA(c)

	return nil
}

// TriggerBinding describes the provider behind a trigger id, or "none".
func (c *Comp) TriggerBinding(id int) string {
	return c.triggers.lookup(id).String()
}

// FireTrigger schedules one transfer for every channel bound to the provider
// and index, in channel order. The transfers run on the next event, never
// inside the caller.
func (c *Comp) FireTrigger(provider TriggerProvider, index int) {
	for i, ch := range c.channels {
		if ch.binding.matches(provider, index) {
			c.scheduleTransfer(i)
		}
	}
}

func (c *Comp) scheduleTransfer(channel int) {
	evt := &transferEvent{
		EventBase: sim.NewEventBase(c.engine.CurrentTime(), c),
		channel:   channel,
	}
	c.engine.Schedule(evt)
}

// Handle runs the scheduled transfers.
func (c *Comp) Handle(e sim.Event) error {
	switch evt := e.(type) {
	case *transferEvent:
		return c.channels[evt.channel].step()
	default:
		log.Panicf("cannot handle event of type %T", e)
	}

	return nil
}

// TriggerState, ClearTrigger and RegisterDMA make the controller the provider
// of the software trigger DMAREQ. Software requests go through the DMAREQ bit
// of DMAxCTL, so the trigger never reports a pending condition.
func (c *Comp) TriggerState(_ int) bool { return false }

// ClearTrigger does nothing.
func (c *Comp) ClearTrigger(_ int) {}

// RegisterDMA does nothing.
func (c *Comp) RegisterDMA(_ TriggerSink) {}

// InterruptServiced is called by the interrupt controller when the CPU takes
// the DMA interrupt. DMAIV is only released by reading it.
func (c *Comp) InterruptServiced(vector int) {
	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosInterruptTaken,
		Item:   c,
		Detail: vector,
	})
}

func (c *Comp) setInterruptLine(asserted bool) {
	c.line.SetInterruptLine(c.vectorNumber, c, asserted)
}

func (c *Comp) decode(address uint32, write bool) (uint32, error) {
	offset := address - c.base
	if address < c.base || offset >= RegisterSize {
		return 0, &AddressError{Address: address, Offset: offset, Write: write}
	}

	reg := offset &^ 1
	switch {
	case reg <= DMACTL4, reg == DMAIV:
		return offset, nil
	case reg >= channelBlockStart && reg%channelBlockSize <= DMAxSZ:
		return offset, nil
	}

	return 0, &AddressError{Address: address, Offset: offset, Write: write}
}

// Write handles a register write. A byte write changes only the addressed
// half of the register.
func (c *Comp) Write(address uint32, value uint16, word bool) error {
	offset, err := c.decode(address, true)
	if err != nil {
		return err
	}

	if !word {
		value = mergeByte(c.peek(offset&^1), offset, value)
	}

	c.write(offset&^1, value)

	return nil
}

func mergeByte(old uint16, offset uint32, value uint16) uint16 {
	if offset&1 == 1 {
		return old&0x00FF | (value&0xFF)<<8
	}

	return old&0xFF00 | value&0xFF
}

func (c *Comp) write(reg uint32, value uint16) {
	switch reg {
	case DMACTL0:
		c.ctl[0] = value
		c.channels[0].bind(int(value & 0x1F))
		c.channels[1].bind(int((value >> 8) & 0x1F))
	case DMACTL1:
		c.ctl[1] = value
		c.channels[2].bind(int(value & 0x1F))
	case DMACTL2, DMACTL3, DMACTL4:
		c.ctl[reg/2] = value
	case DMAIV:
		// DMAIV is read-only on silicon, but any write clears it here.
		c.arbiter.release()
	default:
		ch := c.channels[(reg-channelBlockStart)/channelBlockSize]
		ch.write(reg%channelBlockSize, value)
	}
}

// Read handles a register read. Reading DMAIV returns the vector and then
// releases it.
func (c *Comp) Read(address uint32, word bool) (uint16, error) {
	offset, err := c.decode(address, false)
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
	if reg == DMAIV {
		v := c.arbiter.vector
		c.arbiter.release()

		return v
	}

	return c.peek(reg)
}

func (c *Comp) peek(reg uint32) uint16 {
	switch reg {
	case DMACTL0, DMACTL1, DMACTL2, DMACTL3, DMACTL4:
		return c.ctl[reg/2]
	case DMAIV:
		return c.arbiter.vector
	default:
		ch := c.channels[(reg-channelBlockStart)/channelBlockSize]
		return ch.read(reg % channelBlockSize)
	}
}

// Peek returns a register without side effects, for debuggers and dumps.
func (c *Comp) Peek(offset uint32) (uint16, error) {
	offset, err := c.decode(c.base+offset, false)
	if err != nil {
		return 0, err
	}

	return c.peek(offset &^ 1), nil
}

// Reset returns all registers to their power-up values. The trigger table is
// kept.
func (c *Comp) Reset() {
	c.arbiter.reset()
	c.ctl = [5]uint16{}

	for _, ch := range c.channels {
		ch.reset()
		ch.bind(TriggerDMAREQ)
	}
}

// Status is a snapshot of the controller.
type Status struct {
	Name     string          `json:"name"`
	Base     uint32          `json:"base"`
	Vector   uint16          `json:"dmaiv"`
	Control  [5]uint16       `json:"dmactl"`
	Channels []ChannelStatus `json:"channels"`
}

// Status returns a snapshot of the controller.
func (c *Comp) Status() Status {
	s := Status{
		Name:    c.Name(),
		Base:    c.base,
		Vector:  c.arbiter.vector,
		Control: c.ctl,
	}

	for _, ch := range c.channels {
		s.Channels = append(s.Channels, ch.status())
	}

	return s
}

// Info returns a human readable dump of the registers and channels.
func (c *Comp) Info() string {
	var sb strings.Builder

	fmt.Fprintf(&sb,
		"  DMACTLx 0: 0x%04x 1: 0x%04x 2: 0x%04x 3: 0x%04x 4: 0x%04x iv: 0x%04x",
		c.ctl[0], c.ctl[1], c.ctl[2], c.ctl[3], c.ctl[4], c.arbiter.vector)

	for _, ch := range c.channels {
		sb.WriteString("\n  ")
		sb.WriteString(ch.info())
	}

	return sb.String()
}
