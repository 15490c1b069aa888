// Package intc provides the interrupt controller of the simulated chip.
//
// Peripherals raise and drop interrupt requests through SetInterruptLine. The
// CPU side asks for the highest pending vector and reports back with Service,
// which lets the requesting peripheral know its interrupt has been taken.
package intc

import (
	"log"

	"github.com/sarchlab/mcusim/sim"
)

// A Source is a peripheral that can request interrupts.
type Source interface {
	Name() string
	InterruptServiced(vector int)
}

// A Line is where a Source signals an interrupt request.
type Line interface {
	SetInterruptLine(vector int, source Source, asserted bool)
}

// HookPosLineChange marks a change of an interrupt request line. The hook
// item is the Source and the detail is a LineChange.
var HookPosLineChange = &sim.HookPos{Name: "InterruptLineChange"}

// HookPosServiced marks the moment a pending interrupt is taken.
var HookPosServiced = &sim.HookPos{Name: "InterruptServiced"}

// LineChange describes a request line update.
type LineChange struct {
	Vector   int
	Asserted bool
}

// Controller keeps one request per vector. Higher vector numbers have higher
// priority, as on the MSP430.
type Controller struct {
	*sim.ComponentBase

	maxVector int
	sources   []Source
}

// NewController creates a controller with vectors 0..maxVector.
func NewController(name string, maxVector int) *Controller {
	c := &Controller{
		ComponentBase: sim.NewComponentBase(name),
		maxVector:     maxVector,
		sources:       make([]Source, maxVector+1),
	}

	return c
}

// Handle makes the controller a sim.Handler. The controller schedules no
// events of its own.
func (c *Controller) Handle(e sim.Event) error {
	log.Panicf("interrupt controller cannot handle event %T", e)
	return nil
}

// SetInterruptLine raises or drops the request of a source. Dropping only
// takes effect if the source is the one that raised the vector.
func (c *Controller) SetInterruptLine(vector int, source Source, asserted bool) {
	c.mustBeValidVector(vector)

	if asserted {
		c.sources[vector] = source
	} else if c.sources[vector] == source {
		c.sources[vector] = nil
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosLineChange,
		Item:   source,
		Detail: LineChange{Vector: vector, Asserted: asserted},
	})
}

func (c *Controller) mustBeValidVector(vector int) {
	if vector < 0 || vector > c.maxVector {
		log.Panicf("interrupt vector %d out of range 0..%d",
			vector, c.maxVector)
	}
}

// IsPending tells if a vector has an active request.
func (c *Controller) IsPending(vector int) bool {
	c.mustBeValidVector(vector)
	return c.sources[vector] != nil
}

// SourceOf returns the source that currently requests the vector, or nil.
func (c *Controller) SourceOf(vector int) Source {
	c.mustBeValidVector(vector)
	return c.sources[vector]
}

// HighestPending returns the pending vector with the highest priority.
func (c *Controller) HighestPending() (vector int, ok bool) {
	for v := c.maxVector; v >= 0; v-- {
		if c.sources[v] != nil {
			return v, true
		}
	}

	return 0, false
}

// Pending lists all pending vectors, highest priority first.
func (c *Controller) Pending() []int {
	var vectors []int

	for v := c.maxVector; v >= 0; v-- {
		if c.sources[v] != nil {
			vectors = append(vectors, v)
		}
	}

	return vectors
}

// Service takes the interrupt of a vector. The requesting source is told
// and stays responsible for dropping its request. It returns false if
// nothing was pending on the vector.
func (c *Controller) Service(vector int) bool {
	c.mustBeValidVector(vector)

	src := c.sources[vector]
	if src == nil {
		return false
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosServiced,
		Item:   src,
		Detail: vector,
	})

	src.InterruptServiced(vector)

	return true
}
