package dma

import "github.com/sarchlab/mcusim/sim"

// Hook positions of the DMA controller. The hook item is the Channel, or the
// Comp for vector changes.
var (
	HookPosChannelConfig  = &sim.HookPos{Name: "DMAChannelConfig"}
	HookPosTriggerSelect  = &sim.HookPos{Name: "DMATriggerSelect"}
	HookPosTransfer       = &sim.HookPos{Name: "DMATransfer"}
	HookPosEndOfTransfer  = &sim.HookPos{Name: "DMAEndOfTransfer"}
	HookPosVectorChange   = &sim.HookPos{Name: "DMAVectorChange"}
	HookPosInterruptTaken = &sim.HookPos{Name: "DMAInterruptServiced"}
)

// Transfer describes one byte moved by a channel.
type Transfer struct {
	Channel     int
	Source      uint32
	Destination uint32
	Data        uint8
	Transferred uint16
	Total       uint16
}

// VectorChange describes an update of DMAIV.
type VectorChange struct {
	Old uint16
	New uint16
}
