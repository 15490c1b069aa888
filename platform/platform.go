// Package platform assembles an MSP430F5437-like machine: RAM, the interrupt
// controller, the DMA controller and four USCI units on one address space.
package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sarchlab/mcusim/dma"
	"github.com/sarchlab/mcusim/intc"
	"github.com/sarchlab/mcusim/mem"
	"github.com/sarchlab/mcusim/periph/usci"
	"github.com/sarchlab/mcusim/sim"
)

type usciSpec struct {
	name      string
	base      uint32
	vector    int
	rxTrigger int
	txTrigger int
}

var usciSpecs = []usciSpec{
	{"USCIA0", 0x05C0, 57, dma.TriggerUSCIA0RX, dma.TriggerUSCIA0TX},
	{"USCIB0", 0x05E0, 56, dma.TriggerUSCIB0RX, dma.TriggerUSCIB0TX},
	{"USCIA1", 0x0600, 46, dma.TriggerUSCIA1RX, dma.TriggerUSCIA1TX},
	{"USCIB1", 0x0620, 45, dma.TriggerUSCIB1RX, dma.TriggerUSCIB1TX},
}

// Platform is a simulated machine.
type Platform struct {
	Config     Config
	Engine     *sim.SerialEngine
	Simulation *sim.Simulation
	Bus        *mem.AddressSpace
	RAM        *mem.Storage
	Intc       *intc.Controller
	Mux        *intc.Multiplexer
	DMA        *dma.Comp

	usci map[string]*usci.Comp
}

// New builds a machine from a configuration.
func New(cfg Config) (*Platform, error) {
	p := &Platform{
		Config: cfg,
		Engine: sim.NewSerialEngine(),
		Bus:    mem.NewAddressSpace(),
		Intc:   intc.NewController("INTC", cfg.MaxVector),
		usci:   make(map[string]*usci.Comp),
	}
	p.Simulation = sim.NewSimulation(p.Engine)
	p.Simulation.RegisterComponent(p.Intc)

	ram, err := p.Bus.MapMemory("RAM", cfg.RAMStart, cfg.RAMSize)
	if err != nil {
		return nil, fmt.Errorf("mapping RAM: %w", err)
	}
	p.RAM = ram

	err = p.buildDMA()
	if err != nil {
		return nil, err
	}

	err = p.buildUSCIs()
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Platform) buildDMA() error {
	var line dma.InterruptLine = p.Intc
	if p.Config.UseMultiplexer {
		p.Mux = intc.NewMultiplexer(p.Intc, p.Config.DMAVector)
		line = p.Mux.Input(p.Config.MultiplexerBit)
	}

	p.DMA = dma.MakeBuilder().
		WithEngine(p.Engine).
		WithBus(p.Bus).
		WithInterruptLine(line).
		WithBaseAddress(p.Config.DMABase).
		WithVector(p.Config.DMAVector).
		Build("DMA")
	p.Simulation.RegisterComponent(p.DMA)

	err := p.Bus.MapIO(p.Config.DMABase, dma.RegisterSize, p.DMA)
	if err != nil {
		return fmt.Errorf("mapping DMA: %w", err)
	}

	return nil
}

func (p *Platform) buildUSCIs() error {
	bound := make(map[string]bool)
	for _, name := range p.Config.USCITriggers {
		bound[name] = true
	}

	for _, s := range usciSpecs {
		u := usci.MakeBuilder().
			WithEngine(p.Engine).
			WithInterruptLine(p.Intc).
			WithBaseAddress(s.base).
			WithVector(s.vector).
			WithTransmitCycles(p.Config.TransmitCycles()).
			Build(s.name)
		p.usci[s.name] = u
		p.Simulation.RegisterComponent(u)

		err := p.Bus.MapIO(s.base, usci.RegisterSize, u)
		if err != nil {
			return fmt.Errorf("mapping %s: %w", s.name, err)
		}

		if !bound[s.name] {
			continue
		}
		delete(bound, s.name)

		err = p.DMA.BindTrigger(s.rxTrigger, u, usci.TriggerRX)
		if err != nil {
			return err
		}

		err = p.DMA.BindTrigger(s.txTrigger, u, usci.TriggerTX)
		if err != nil {
			return err
		}
	}

	if len(bound) > 0 {
		names := make([]string, 0, len(bound))
		for n := range bound {
			names = append(names, n)
		}
		sort.Strings(names)

		return fmt.Errorf("%w: no serial unit named %s",
			dma.ErrInvalidTrigger, strings.Join(names, ", "))
	}

	return nil
}

// USCI returns a serial unit by name, or nil.
func (p *Platform) USCI(name string) *usci.Comp {
	return p.usci[name]
}

// USCINames returns the names of the serial units, sorted.
func (p *Platform) USCINames() []string {
	names := make([]string, 0, len(p.usci))
	for n := range p.usci {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Load places data in memory.
func (p *Platform) Load(address uint32, data []byte) error {
	return p.Bus.Load(address, data)
}

// Run processes events until none are left.
func (p *Platform) Run() error {
	return p.Engine.Run()
}

// Reset returns every peripheral to its power-up state. Memory is kept.
func (p *Platform) Reset() {
	p.DMA.Reset()

	for _, n := range p.USCINames() {
		p.usci[n].Reset()
	}
}
