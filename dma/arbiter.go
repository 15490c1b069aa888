package dma

import "github.com/sarchlab/mcusim/sim"

// The arbiter owns DMAIV. At most one channel owns the vector at a time, and
// a lower channel index always wins.
type arbiter struct {
	comp   *Comp
	vector uint16
}

func vectorOf(index int) uint16 {
	return uint16(index+1) * 2
}

// owner returns the index of the channel that owns the vector.
func (a *arbiter) owner() (int, bool) {
	if a.vector == 0 {
		return 0, false
	}

	return int(a.vector/2) - 1, true
}

func (a *arbiter) owns(index int) bool {
	owner, ok := a.owner()
	return ok && owner == index
}

func (a *arbiter) acquire(index int) {
	owner, owned := a.owner()

	switch {
	case !owned:
		a.setVector(vectorOf(index))
		a.comp.setInterruptLine(true)
	case owner > index:
		a.setVector(vectorOf(index))
	}
}

// release clears the flag of the owner, drops the interrupt line, and lets the
// next pending channel take the vector.
func (a *arbiter) release() {
	owner, owned := a.owner()
	if !owned {
		return
	}

	ch := a.comp.channels[owner]
	ch.ifg = false
	ch.ctl &^= CtlIFG

	a.comp.setInterruptLine(false)
	a.setVector(0)

	for i, ch := range a.comp.channels {
		if ch.ie && ch.ifg {
			a.acquire(i)
		}
	}
}

func (a *arbiter) setVector(v uint16) {
	if v == a.vector {
		return
	}

	change := VectorChange{Old: a.vector, New: v}
	a.vector = v

	a.comp.InvokeHook(sim.HookCtx{
		Domain: a.comp,
		Pos:    HookPosVectorChange,
		Item:   a.comp,
		Detail: change,
	})
}

func (a *arbiter) reset() {
	if a.vector != 0 {
		a.comp.setInterruptLine(false)
	}

	a.setVector(0)
}
