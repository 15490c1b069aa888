package intc

import "fmt"

// A Multiplexer ORs several request bits onto one vector. Each input is a
// Line that sets one bit.
type Multiplexer struct {
	line   Line
	vector int
	bits   uint32
	inputs [32]Source
}

// NewMultiplexer creates a multiplexer that drives vector on line.
func NewMultiplexer(line Line, vector int) *Multiplexer {
	return &Multiplexer{
		line:   line,
		vector: vector,
	}
}

// Name returns the name of the multiplexer, including the active bits.
func (m *Multiplexer) Name() string {
	return fmt.Sprintf("InterruptMultiplexer vector %d bits: %d",
		m.vector, m.bits)
}

// Bits returns the active request bits.
func (m *Multiplexer) Bits() uint32 {
	return m.bits
}

// UpdateInterrupt sets or clears one request bit and drives the output line
// with the OR of all bits.
func (m *Multiplexer) UpdateInterrupt(value bool, bit int) {
	if value {
		m.bits |= 1 << bit
	} else {
		m.bits &^= 1 << bit
	}

	m.line.SetInterruptLine(m.vector, m, m.bits != 0)
}

// InterruptServiced drops the output request and forwards the notification to
// the inputs whose bit is set.
func (m *Multiplexer) InterruptServiced(vector int) {
	for bit, src := range m.inputs {
		if src != nil && m.bits&(1<<bit) != 0 {
			src.InterruptServiced(vector)
		}
	}

	m.line.SetInterruptLine(m.vector, m, false)
}

// Input returns a Line that drives one bit of the multiplexer. The vector
// given by the source is ignored.
func (m *Multiplexer) Input(bit int) Line {
	return muxInput{mux: m, bit: bit}
}

type muxInput struct {
	mux *Multiplexer
	bit int
}

func (in muxInput) SetInterruptLine(_ int, source Source, asserted bool) {
	in.mux.inputs[in.bit] = source
	in.mux.UpdateInterrupt(asserted, in.bit)
}
