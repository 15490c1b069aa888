package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/browser"
	"github.com/sarchlab/mcusim/datarecording"
	"github.com/sarchlab/mcusim/dma"
	"github.com/sarchlab/mcusim/mem"
	"github.com/sarchlab/mcusim/monitoring"
	"github.com/sarchlab/mcusim/periph/usci"
	"github.com/sarchlab/mcusim/platform"
	"github.com/sarchlab/mcusim/sim"
	"github.com/sarchlab/mcusim/tracing"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Receive a message over USCIB0 into RAM through DMA.",
	Long: `run feeds a message into USCIB0 byte by byte. DMA channel 0, ` +
		`triggered by USCIB0RX, copies every byte from RXBUF into RAM and ` +
		`raises DMAIFG at the end of the block. With --echo, channel 1 ` +
		`sends the buffer back, paced by USCIB0TX.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := readRunOptions(cmd)
		if err != nil {
			return err
		}

		p, err := loadPlatform(cmd)
		if err != nil {
			return err
		}

		return runEcho(p, opts, cmd.OutOrStdout())
	},
}

type runOptions struct {
	message   string
	echo      bool
	logDMA    bool
	logEvents bool
	traceDB   string
	monitor   bool
	port      int
	open      bool
}

func readRunOptions(cmd *cobra.Command) (runOptions, error) {
	f := cmd.Flags()

	var o runOptions
	o.message, _ = f.GetString("message")
	o.echo, _ = f.GetBool("echo")
	o.logDMA, _ = f.GetBool("log")
	o.logEvents, _ = f.GetBool("log-events")
	o.traceDB, _ = f.GetString("trace-db")
	o.monitor, _ = f.GetBool("monitor")
	o.port, _ = f.GetInt("port")
	o.open, _ = f.GetBool("open")

	if o.message == "" {
		return o, errors.New("the message must not be empty")
	}

	if len(o.message) > 0xFFFF {
		return o, errors.New("the message does not fit in one DMA block")
	}

	return o, nil
}

const (
	usciName  = "USCIB0"
	rxChannel = 0
	txChannel = 1
)

func runEcho(p *platform.Platform, o runOptions, out io.Writer) error {
	u := p.USCI(usciName)
	if u == nil {
		return fmt.Errorf("no serial unit %s", usciName)
	}

	if p.DMA.TriggerBinding(dma.TriggerUSCIB0RX) == "none" {
		return fmt.Errorf("%s is not bound to the DMA, set MCUSIM_DMA_USCI_TRIGGERS",
			usciName)
	}

	if o.logDMA {
		p.DMA.AcceptHook(dma.NewLogger(log.New(os.Stderr, "", 0), p.Engine))
	}

	if o.logEvents {
		p.Engine.AcceptHook(sim.NewEventLogger(log.New(os.Stderr, "", 0)))
	}

	blockTime := tracing.NewAverageTimeTracer(
		p.Engine, tracing.KindFilter("dma_block"))
	tracing.CollectTrace(p.DMA, blockTime)

	steps := tracing.NewStepCountTracer(tracing.KindFilter("dma_block"))
	tracing.CollectTrace(p.DMA, steps)

	if o.traceDB != "" {
		recorder := datarecording.New(o.traceDB)
		dbTracer := tracing.NewDBTracer(p.Engine, recorder)
		tracing.CollectTrace(p.DMA, dbTracer)
		defer func() {
			dbTracer.Terminate()
			fmt.Fprintf(out, "trace written to %s\n", recorder.Filename())
		}()
	}

	total := uint64(len(o.message))
	if o.echo {
		total *= 2
	}

	var bar *monitoring.ProgressBar
	if o.monitor {
		m := monitoring.NewMonitor().WithPortNumber(o.port)
		m.RegisterSimulation(p.Simulation)
		m.RegisterBus(p.Bus)
		port := m.StartServer()

		bar = m.CreateProgressBar("DMA transfers", total)
		defer m.CompleteProgressBar(bar)

		if o.open {
			err := browser.OpenURL(fmt.Sprintf("http://localhost:%d/api/dma/DMA", port))
			if err != nil {
				log.Printf("cannot open browser: %v", err)
			}
		}
	}

	p.DMA.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos == dma.HookPosTransfer && bar != nil {
			bar.IncrementFinished(1)
		}
	}))

	buffer := p.Config.RAMStart
	size := uint16(len(o.message))

	err := receive(p, u, buffer, size, o.message)
	if err != nil {
		return err
	}

	data, err := p.Bus.Dump(buffer, len(o.message))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "received %q at 0x%05x\n", data, buffer)

	iv, err := p.Bus.Read(p.DMA.Base()+dma.DMAIV, mem.AccessWord)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "DMAIV 0x%04x\n", iv)

	if o.echo {
		err = transmit(p, u, buffer, size)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "sent %q\n", u.Transmitted())
	}

	fmt.Fprintf(out, "finished at cycle %d (%.6f s), average block %.1f cycles\n",
		p.Engine.CurrentTime(),
		p.Config.ClockFreq.Seconds(p.Engine.CurrentTime()),
		blockTime.AverageTime())
	fmt.Fprintf(out, "%d transfers in %d blocks\n",
		steps.GetStepCount("transfer"), steps.GetTaskCount("transfer"))
	fmt.Fprintln(out, p.DMA.Info())

	return nil
}

func writeRegisters(bus mem.Bus, writes [][2]uint32) error {
	for _, w := range writes {
		err := bus.Write(w[0], uint16(w[1]), mem.AccessWord)
		if err != nil {
			return err
		}
	}

	return nil
}

func channelWrites(
	d *dma.Comp,
	n int,
	src, dst uint32,
	size, ctl uint16,
) [][2]uint32 {
	at := func(reg uint32) uint32 {
		return d.Base() + dma.ChannelOffset(n, reg)
	}

	return [][2]uint32{
		{at(dma.DMAxSAL), src & 0xFFFF},
		{at(dma.DMAxSAH), src >> 16},
		{at(dma.DMAxDAL), dst & 0xFFFF},
		{at(dma.DMAxDAH), dst >> 16},
		{at(dma.DMAxSZ), uint32(size)},
		{at(dma.DMAxCTL), uint32(ctl)},
	}
}

func receive(
	p *platform.Platform,
	u *usci.Comp,
	buffer uint32,
	size uint16,
	message string,
) error {
	ctl0, err := p.Bus.Read(p.DMA.Base()+dma.DMACTL0, mem.AccessWord)
	if err != nil {
		return err
	}

	writes := [][2]uint32{
		{p.DMA.Base() + dma.DMACTL0, uint32(ctl0&0xFF00 | dma.TriggerUSCIB0RX)},
	}
	writes = append(writes, channelWrites(p.DMA, rxChannel,
		u.Base()+usci.RXBUF, buffer, size,
		dma.CtlMode(dma.ModeSingle)|dma.CtlDstIncr(dma.IncrIncrement)|
			dma.CtlSRCBYTE|dma.CtlDSTBYTE|dma.CtlIE|dma.CtlEN)...)

	err = writeRegisters(p.Bus, writes)
	if err != nil {
		return err
	}

	for i := 0; i < len(message); i++ {
		u.Receive(message[i])

		err = p.Run()
		if err != nil {
			return err
		}
	}

	return nil
}

func transmit(
	p *platform.Platform,
	u *usci.Comp,
	buffer uint32,
	size uint16,
) error {
	ctl0, err := p.Bus.Read(p.DMA.Base()+dma.DMACTL0, mem.AccessWord)
	if err != nil {
		return err
	}

	writes := [][2]uint32{
		{p.DMA.Base() + dma.DMACTL0,
			uint32(ctl0&0x00FF | dma.TriggerUSCIB0TX<<8)},
	}
	writes = append(writes, channelWrites(p.DMA, txChannel,
		buffer, u.Base()+usci.TXBUF, size,
		dma.CtlMode(dma.ModeSingle)|dma.CtlSrcIncr(dma.IncrIncrement)|
			dma.CtlSRCBYTE|dma.CtlDSTBYTE|dma.CtlEN)...)

	err = writeRegisters(p.Bus, writes)
	if err != nil {
		return err
	}

	return p.Run()
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.String("message", "hello, DMA", "bytes received on USCIB0")
	f.Bool("echo", false, "send the received buffer back through DMA")
	f.Bool("log", false, "print DMA activity to stderr")
	f.Bool("log-events", false, "print every engine event to stderr")
	f.String("trace-db", "", "record DMA blocks into this SQLite file")
	f.Bool("monitor", false, "serve the monitoring API while running")
	f.Int("port", 0, "port of the monitoring server, random if 0")
	f.Bool("open", false, "open the DMA status page in a browser")
}
