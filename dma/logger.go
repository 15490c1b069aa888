package dma

import (
	"log"

	"github.com/sarchlab/mcusim/sim"
)

// Logger prints what the DMA controller does: channel configuration, every
// byte moved, block ends and DMAIV updates.
type Logger struct {
	sim.LogHookBase

	timeTeller sim.TimeTeller
}

// NewLogger creates a Logger. Attach it with AcceptHook.
func NewLogger(logger *log.Logger, timeTeller sim.TimeTeller) *Logger {
	h := new(Logger)
	h.Logger = logger
	h.timeTeller = timeTeller

	return h
}

// Func writes the DMA activity into the logger.
func (h *Logger) Func(ctx sim.HookCtx) {
	now := h.timeTeller.CurrentTime()

	switch ctx.Pos {
	case HookPosChannelConfig:
		s := ctx.Detail.(ChannelStatus)
		h.Printf("%d: DMA ch.%d conf srcInc: %d dstInc: %d en: %t "+
			"srcB: %t dstB: %t lvl: %t mode: %s ie: %t ifg: %t",
			now, s.Index, s.SrcStep, s.DstStep, s.Enabled,
			s.SrcByte, s.DstByte, s.Level, s.Mode, s.IE, s.IFG)
	case HookPosTriggerSelect:
		ch := ctx.Item.(*Channel)
		h.Printf("%d: DMA ch.%d trigger %s -> %s",
			now, ch.index, TriggerName(ctx.Detail.(int)), ch.binding)
	case HookPosTransfer:
		t := ctx.Detail.(Transfer)
		h.Printf("%d: DMA ch.%d transfer $%05x : 0x%02x to $%05x size: %d/%d",
			now, t.Channel, t.Source, t.Data, t.Destination,
			t.Transferred, t.Total)
	case HookPosEndOfTransfer:
		s := ctx.Detail.(ChannelStatus)
		h.Printf("%d: DMA ch.%d EoT, enabled: %t", now, s.Index, s.Enabled)
	case HookPosVectorChange:
		v := ctx.Detail.(VectorChange)
		h.Printf("%d: DMAIV 0x%04x -> 0x%04x", now, v.Old, v.New)
	case HookPosInterruptTaken:
		h.Printf("%d: DMA interrupt serviced, vector %d", now, ctx.Detail.(int))
	}
}
