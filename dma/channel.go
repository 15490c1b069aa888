package dma

import (
	"fmt"

	"github.com/sarchlab/mcusim/mem"
	"github.com/sarchlab/mcusim/sim"
	"github.com/sarchlab/mcusim/tracing"
)

// A Channel is one of the three transfer units of the controller.
type Channel struct {
	comp  *Comp
	index int

	ctl       uint16
	mode      TransferMode
	srcStep   int32
	dstStep   int32
	srcByte   bool
	dstByte   bool
	level     bool
	ie        bool
	ifg       bool
	enabled   bool
	triggerID int
	binding   triggerBinding

	sourceAddress      uint32
	destinationAddress uint32
	currentSource      uint32
	currentDestination uint32
	size               uint16
	totalSize          uint16

	blockTaskID string
}

func newChannel(comp *Comp, index int) *Channel {
	return &Channel{comp: comp, index: index}
}

// Index returns the channel number.
func (c *Channel) Index() int { return c.index }

// Enabled tells if the channel is armed.
func (c *Channel) Enabled() bool { return c.enabled }

// InterruptFlag returns DMAIFG.
func (c *Channel) InterruptFlag() bool { return c.ifg }

// InterruptEnabled returns DMAIE.
func (c *Channel) InterruptEnabled() bool { return c.ie }

// Mode returns the transfer mode.
func (c *Channel) Mode() TransferMode { return c.mode }

// CurrentSource returns the source cursor.
func (c *Channel) CurrentSource() uint32 { return c.currentSource }

// CurrentDestination returns the destination cursor.
func (c *Channel) CurrentDestination() uint32 { return c.currentDestination }

// Size returns the number of transfers left in the block.
func (c *Channel) Size() uint16 { return c.size }

// TotalSize returns the block size the channel reloads.
func (c *Channel) TotalSize() uint16 { return c.totalSize }

// TriggerID returns the trigger selected through DMACTL0/DMACTL1.
func (c *Channel) TriggerID() int { return c.triggerID }

func (c *Channel) name() string {
	return fmt.Sprintf("%s.ch%d", c.comp.Name(), c.index)
}

func (c *Channel) bind(id int) {
	c.triggerID = id
	c.binding = c.comp.triggers.lookup(id)

	c.comp.InvokeHook(sim.HookCtx{
		Domain: c.comp,
		Pos:    HookPosTriggerSelect,
		Item:   c,
		Detail: id,
	})
}

func (c *Channel) writeControl(value uint16) {
	wasEnabled := c.enabled
	hadFlag := c.ifg
	hadIE := c.ie

	c.ctl = value &^ (CtlREQ | CtlABORT)
	c.mode = TransferMode((value >> 12) & 7)
	c.dstStep = incrSteps[(value>>10)&3]
	c.srcStep = incrSteps[(value>>8)&3]
	c.dstByte = value&CtlDSTBYTE != 0
	c.srcByte = value&CtlSRCBYTE != 0
	c.level = value&CtlLEVEL != 0
	c.enabled = value&CtlEN != 0
	c.ifg = value&CtlIFG != 0
	c.ie = value&CtlIE != 0

	c.comp.InvokeHook(sim.HookCtx{
		Domain: c.comp,
		Pos:    HookPosChannelConfig,
		Item:   c,
		Detail: c.status(),
	})

	c.releaseVectorOnFlagClear(hadFlag, hadIE)
	c.acquireVectorOnFlagAndEnable()
	c.catchPendingTrigger(wasEnabled)
	c.softwareRequest(value)
}

// releaseVectorOnFlagClear: software cleared IFG while IE was set before or
// after the write, so the channel gives up the vector if it owns it.
func (c *Channel) releaseVectorOnFlagClear(hadFlag, hadIE bool) {
	if hadFlag && !c.ifg && (hadIE || c.ie) && c.comp.arbiter.owns(c.index) {
		c.comp.arbiter.release()
	}
}

// acquireVectorOnFlagAndEnable: a write leaving IFG and IE set requests the
// vector.
func (c *Channel) acquireVectorOnFlagAndEnable() {
	if c.ifg && c.ie {
		c.comp.arbiter.acquire(c.index)
	}
}

// catchPendingTrigger: arming a channel whose trigger condition already holds
// schedules a transfer of that channel only. Other channels on the same
// trigger already saw the edge.
func (c *Channel) catchPendingTrigger(wasEnabled bool) {
	if wasEnabled || !c.enabled || c.binding.provider == nil {
		return
	}

	if c.binding.provider.TriggerState(c.binding.index) {
		c.comp.scheduleTransfer(c.index)
	}
}

// softwareRequest: DMAREQ starts one transfer of this channel when the
// channel selects the software trigger. The bit reads back as 0.
func (c *Channel) softwareRequest(value uint16) {
	if value&CtlREQ != 0 && c.triggerID == TriggerDMAREQ {
		c.comp.scheduleTransfer(c.index)
	}
}

func (c *Channel) write(reg uint32, value uint16) {
	switch reg {
	case DMAxCTL:
		c.writeControl(value)
	case DMAxSAL:
		c.sourceAddress = (c.sourceAddress &^ 0xFFFF) | uint32(value)
		c.currentSource = c.sourceAddress
	case DMAxSAH:
		c.sourceAddress = (c.sourceAddress & 0xFFFF) | uint32(value)<<16
		c.sourceAddress &= mem.AddressMask
		c.currentSource = c.sourceAddress
	case DMAxDAL:
		c.destinationAddress = (c.destinationAddress &^ 0xFFFF) | uint32(value)
		c.currentDestination = c.destinationAddress
	case DMAxDAH:
		c.destinationAddress = (c.destinationAddress & 0xFFFF) | uint32(value)<<16
		c.destinationAddress &= mem.AddressMask
		c.currentDestination = c.destinationAddress
	case DMAxSZ:
		c.size = value
		c.totalSize = value
	}
}

func (c *Channel) read(reg uint32) uint16 {
	switch reg {
	case DMAxCTL:
		c.ctl = c.ctl&^CtlIFG | boolBit(c.ifg, CtlIFG)
		return c.ctl
	case DMAxSAL:
		return uint16(c.sourceAddress)
	case DMAxSAH:
		return uint16(c.sourceAddress>>16) & 0xF
	case DMAxDAL:
		return uint16(c.destinationAddress)
	case DMAxDAH:
		return uint16(c.destinationAddress>>16) & 0xF
	default:
		return c.size
	}
}

func boolBit(b bool, bit uint16) uint16 {
	if b {
		return bit
	}

	return 0
}

func advance(address uint32, step int32) uint32 {
	return (address + uint32(step)) & mem.AddressMask
}

// step moves one byte. It does nothing if the channel was disabled after the
// transfer got scheduled, or if there is nothing left to move.
func (c *Channel) step() error {
	if !c.enabled || c.size == 0 {
		return nil
	}

	data, err := c.comp.bus.Read(c.currentSource, mem.AccessByte)
	if err != nil {
		return err
	}

	err = c.comp.bus.Write(c.currentDestination, data&0xFF, mem.AccessByte)
	if err != nil {
		return err
	}

	c.startBlockTask()

	c.comp.InvokeHook(sim.HookCtx{
		Domain: c.comp,
		Pos:    HookPosTransfer,
		Item:   c,
		Detail: Transfer{
			Channel:     c.index,
			Source:      c.currentSource,
			Destination: c.currentDestination,
			Data:        uint8(data),
			Transferred: c.totalSize - c.size + 1,
			Total:       c.totalSize,
		},
	})
	tracing.AddTaskStep(c.blockTaskID, c.comp, "transfer")

	c.currentSource = advance(c.currentSource, c.srcStep)
	c.currentDestination = advance(c.currentDestination, c.dstStep)
	c.size--

	if c.size == 0 {
		c.endOfBlock()
	}

	return nil
}

func (c *Channel) endOfBlock() {
	c.currentSource = c.sourceAddress
	c.currentDestination = c.destinationAddress
	c.size = c.totalSize

	if !c.mode.IsRepeated() {
		c.enabled = false
		c.ctl &^= CtlEN
	}

	c.ifg = true
	c.ctl |= CtlIFG

	c.comp.InvokeHook(sim.HookCtx{
		Domain: c.comp,
		Pos:    HookPosEndOfTransfer,
		Item:   c,
		Detail: c.status(),
	})
	tracing.EndTask(c.blockTaskID, c.comp)
	c.blockTaskID = ""

	if c.ie {
		c.comp.arbiter.acquire(c.index)
	}
}

func (c *Channel) startBlockTask() {
	if c.blockTaskID != "" {
		return
	}

	c.blockTaskID = sim.GetIDGenerator().Generate()
	tracing.StartTask(
		c.blockTaskID,
		"",
		c.comp,
		"dma_block",
		fmt.Sprintf("ch%d %s", c.index, c.mode),
		c.status(),
	)
}

func (c *Channel) reset() {
	if c.blockTaskID != "" {
		tracing.EndTask(c.blockTaskID, c.comp)
	}

	*c = Channel{comp: c.comp, index: c.index}
}

// ChannelStatus is a snapshot of a channel.
type ChannelStatus struct {
	Index              int    `json:"index"`
	Enabled            bool   `json:"enabled"`
	Mode               string `json:"mode"`
	SrcStep            int32  `json:"src_step"`
	DstStep            int32  `json:"dst_step"`
	SrcByte            bool   `json:"src_byte"`
	DstByte            bool   `json:"dst_byte"`
	Level              bool   `json:"level"`
	IE                 bool   `json:"ie"`
	IFG                bool   `json:"ifg"`
	TriggerID          int    `json:"trigger_id"`
	Trigger            string `json:"trigger"`
	SourceAddress      uint32 `json:"source_address"`
	DestinationAddress uint32 `json:"destination_address"`
	CurrentSource      uint32 `json:"current_source"`
	CurrentDestination uint32 `json:"current_destination"`
	Size               uint16 `json:"size"`
	TotalSize          uint16 `json:"total_size"`
}

func (c *Channel) status() ChannelStatus {
	return ChannelStatus{
		Index:              c.index,
		Enabled:            c.enabled,
		Mode:               c.mode.String(),
		SrcStep:            c.srcStep,
		DstStep:            c.dstStep,
		SrcByte:            c.srcByte,
		DstByte:            c.dstByte,
		Level:              c.level,
		IE:                 c.ie,
		IFG:                c.ifg,
		TriggerID:          c.triggerID,
		Trigger:            c.binding.String(),
		SourceAddress:      c.sourceAddress,
		DestinationAddress: c.destinationAddress,
		CurrentSource:      c.currentSource,
		CurrentDestination: c.currentDestination,
		Size:               c.size,
		TotalSize:          c.totalSize,
	}
}

func (c *Channel) info() string {
	state := " Disabled"
	if c.enabled {
		state = " Enabled "
	}

	return fmt.Sprintf("%s%s  Index: %d  Trigger: %s (%s)"+
		"\n    current source: 0x%05x destination: 0x%05x  size: %d/%d",
		c.name(), state, c.binding.index, c.binding, TriggerName(c.triggerID),
		c.currentSource, c.currentDestination,
		c.totalSize-c.size, c.totalSize)
}
