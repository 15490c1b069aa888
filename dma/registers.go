package dma

import "fmt"

// NumChannels is the number of channels of a DMAxv2 controller.
const NumChannels = 3

// RegisterSize is the size of the register block, in bytes.
const RegisterSize = 0x40

// Offsets of the shared registers, relative to the controller base.
const (
	DMACTL0 = 0x00
	DMACTL1 = 0x02
	DMACTL2 = 0x04
	DMACTL3 = 0x06
	DMACTL4 = 0x08
	DMAIV   = 0x0E
)

// Offsets of the channel registers, relative to the channel block.
const (
	DMAxCTL = 0x00
	DMAxSAL = 0x02
	DMAxSAH = 0x04
	DMAxDAL = 0x06
	DMAxDAH = 0x08
	DMAxSZ  = 0x0A
)

const (
	channelBlockStart = 0x10
	channelBlockSize  = 0x10
)

// ChannelOffset returns the offset of a channel register of channel n.
func ChannelOffset(n int, reg uint32) uint32 {
	return channelBlockStart + uint32(n)*channelBlockSize + reg
}

// Bits of DMAxCTL.
const (
	CtlREQ      uint16 = 0x0001
	CtlABORT    uint16 = 0x0002
	CtlIE       uint16 = 0x0004
	CtlIFG      uint16 = 0x0008
	CtlEN       uint16 = 0x0010
	CtlLEVEL    uint16 = 0x0020
	CtlSRCBYTE  uint16 = 0x0040
	CtlDSTBYTE  uint16 = 0x0080
	ctlModeMask uint16 = 0x7000
)

// Codes of the increment fields of DMAxCTL.
const (
	IncrUnchanged uint16 = 0
	IncrDecrement uint16 = 2
	IncrIncrement uint16 = 3
)

var incrSteps = [4]int32{0, 0, -1, 1}

// CtlSrcIncr encodes the source increment field.
func CtlSrcIncr(code uint16) uint16 {
	return (code & 3) << 8
}

// CtlDstIncr encodes the destination increment field.
func CtlDstIncr(code uint16) uint16 {
	return (code & 3) << 10
}

// CtlMode encodes the transfer mode field.
func CtlMode(m TransferMode) uint16 {
	return uint16(m&7) << 12
}

// TransferMode is the 3-bit DMADT field of DMAxCTL.
type TransferMode uint8

// The transfer modes. Codes 3 and 7 alias the burst-block modes.
const (
	ModeSingle TransferMode = iota
	ModeBlock
	ModeBurstBlock
	ModeBurstBlockAlias
	ModeRepeatedSingle
	ModeRepeatedBlock
	ModeRepeatedBurstBlock
	ModeRepeatedBurstBlockAlias
)

// IsRepeated tells if the channel stays enabled after a block.
func (m TransferMode) IsRepeated() bool {
	return m&4 != 0
}

func (m TransferMode) String() string {
	switch m & 7 {
	case ModeSingle:
		return "single"
	case ModeBlock:
		return "block"
	case ModeBurstBlock, ModeBurstBlockAlias:
		return "burst-block"
	case ModeRepeatedSingle:
		return "repeated-single"
	case ModeRepeatedBlock:
		return "repeated-block"
	default:
		return "repeated-burst-block"
	}
}

// Trigger ids of the MSP430F5437.
const (
	TriggerDMAREQ   = 0x00
	TriggerTA0CCR0  = 0x01
	TriggerTA0CCR2  = 0x02
	TriggerTA1CCR0  = 0x03
	TriggerTA1CCR2  = 0x04
	TriggerTB0CCR0  = 0x05
	TriggerTB0CCR2  = 0x06
	TriggerUSCIA0RX = 0x10
	TriggerUSCIA0TX = 0x11
	TriggerUSCIB0RX = 0x12
	TriggerUSCIB0TX = 0x13
	TriggerUSCIA1RX = 0x14
	TriggerUSCIA1TX = 0x15
	TriggerUSCIB1RX = 0x16
	TriggerUSCIB1TX = 0x17
	TriggerADC12IFG = 0x18
	TriggerMPY      = 0x1D
	TriggerDMA2IFG  = 0x1E
	TriggerDMAE0    = 0x1F

	NumTriggers = 32
)

var triggerNames = map[int]string{
	TriggerDMAREQ:   "DMAREQ",
	TriggerTA0CCR0:  "TA0CCR0",
	TriggerTA0CCR2:  "TA0CCR2",
	TriggerTA1CCR0:  "TA1CCR0",
	TriggerTA1CCR2:  "TA1CCR2",
	TriggerTB0CCR0:  "TB0CCR0",
	TriggerTB0CCR2:  "TB0CCR2",
	TriggerUSCIA0RX: "USCIA0RX",
	TriggerUSCIA0TX: "USCIA0TX",
	TriggerUSCIB0RX: "USCIB0RX",
	TriggerUSCIB0TX: "USCIB0TX",
	TriggerUSCIA1RX: "USCIA1RX",
	TriggerUSCIA1TX: "USCIA1TX",
	TriggerUSCIB1RX: "USCIB1RX",
	TriggerUSCIB1TX: "USCIB1TX",
	TriggerADC12IFG: "ADC12IFG",
	TriggerMPY:      "MPY",
	TriggerDMA2IFG:  "DMA2IFG",
	TriggerDMAE0:    "DMAE0",
}

// TriggerName returns the datasheet name of a trigger id. Reserved ids are
// named RESn.
func TriggerName(id int) string {
	if name, ok := triggerNames[id]; ok {
		return name
	}

	return fmt.Sprintf("RES%d", id)
}
