package dma

import "fmt"

// A TriggerSink receives trigger signals. The DMA controller is the sink that
// providers talk to.
type TriggerSink interface {
	FireTrigger(provider TriggerProvider, index int)
}

// A TriggerProvider is a peripheral that can start DMA transfers. The index is
// local to the provider, e.g. receive and transmit of a serial unit.
//
// The controller never calls ClearTrigger from a transfer. Providers clear
// their flags when the DMA accesses their data registers, as the hardware
// does.
type TriggerProvider interface {
	TriggerState(index int) bool
	ClearTrigger(index int)
	RegisterDMA(sink TriggerSink)
}

type triggerBinding struct {
	provider TriggerProvider
	index    int
}

func (b triggerBinding) matches(p TriggerProvider, index int) bool {
	return b.provider != nil && b.provider == p && b.index == index
}

func (b triggerBinding) String() string {
	if b.provider == nil {
		return "none"
	}

	if named, ok := b.provider.(interface{ Name() string }); ok {
		return fmt.Sprintf("%s:%d", named.Name(), b.index)
	}

	return fmt.Sprintf("%T:%d", b.provider, b.index)
}

type triggerTable struct {
	entries [NumTriggers]triggerBinding
}

func (t *triggerTable) bind(id int, p TriggerProvider, index int) error {
	if id < 0 || id >= NumTriggers {
		return fmt.Errorf("%w: id %d out of range", ErrInvalidTrigger, id)
	}

	if p == nil {
		return fmt.Errorf("%w: nil provider for id %d", ErrInvalidTrigger, id)
	}

	t.entries[id] = triggerBinding{provider: p, index: index}

	return nil
}

func (t *triggerTable) lookup(id int) triggerBinding {
	return t.entries[id&(NumTriggers-1)]
}
