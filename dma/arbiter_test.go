package dma

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/mcusim/mem"
	"github.com/sarchlab/mcusim/sim"
)

var _ = Describe("Vector arbitration", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *sim.SerialEngine
		space    *mem.AddressSpace
		line     *MockInterruptLine
		provider *MockTriggerProvider
		dma      *Comp
		changes  []VectorChange
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = sim.NewSerialEngine()
		space = mem.NewAddressSpace()
		_, err := space.MapMemory("RAM", 0x1000, 0x2000)
		Expect(err).NotTo(HaveOccurred())

		line = NewMockInterruptLine(mockCtrl)
		provider = NewMockTriggerProvider(mockCtrl)
		provider.EXPECT().RegisterDMA(gomock.Any()).AnyTimes()
		provider.EXPECT().TriggerState(gomock.Any()).Return(false).AnyTimes()

		dma = MakeBuilder().
			WithEngine(engine).
			WithBus(space).
			WithInterruptLine(line).
			Build("DMA")
		Expect(dma.BindTrigger(TriggerUSCIB0TX, provider, 1)).To(Succeed())

		changes = nil
		dma.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
			if ctx.Pos == HookPosVectorChange {
				changes = append(changes, ctx.Detail.(VectorChange))
			}
		}))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should keep a lower channel in front of a finished higher one", func() {
		gomock.InOrder(
			line.EXPECT().SetInterruptLine(50, dma, true),
			line.EXPECT().SetInterruptLine(50, dma, false),
			line.EXPECT().SetInterruptLine(50, dma, true),
			line.EXPECT().SetInterruptLine(50, dma, false),
		)

		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE|CtlIFG)
		Expect(dma.Vector()).To(Equal(uint16(2)))

		writeReg(dma, DMACTL0, TriggerUSCIB0TX<<8)
		configure(dma, 1, 0x1000, 0x2000, 1, byteCopy|CtlIE)
		dma.FireTrigger(provider, 1)
		Expect(engine.Run()).To(Succeed())

		Expect(dma.Channel(1).InterruptFlag()).To(BeTrue())
		Expect(dma.Vector()).To(Equal(uint16(2)))

		Expect(readReg(dma, DMAIV)).To(Equal(uint16(2)))
		Expect(dma.Channel(0).InterruptFlag()).To(BeFalse())
		Expect(dma.Vector()).To(Equal(uint16(4)))

		Expect(readReg(dma, DMAIV)).To(Equal(uint16(4)))
		Expect(dma.Channel(1).InterruptFlag()).To(BeFalse())
		Expect(readReg(dma, DMAIV)).To(Equal(uint16(0)))

		Expect(changes).To(Equal([]VectorChange{
			{Old: 0, New: 2},
			{Old: 2, New: 0},
			{Old: 0, New: 4},
			{Old: 4, New: 0},
		}))
	})

	It("should let a lower channel take the vector from a higher one", func() {
		line.EXPECT().SetInterruptLine(50, dma, true).Times(1)

		writeReg(dma, ChannelOffset(2, DMAxCTL), CtlIE|CtlIFG)
		Expect(dma.Vector()).To(Equal(uint16(6)))

		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE|CtlIFG)
		Expect(dma.Vector()).To(Equal(uint16(2)))
		Expect(dma.Channel(2).InterruptFlag()).To(BeTrue())
	})

	It("should not request the vector without DMAIE", func() {
		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIFG)

		Expect(dma.Vector()).To(Equal(uint16(0)))
		Expect(readReg(dma, DMAIV)).To(Equal(uint16(0)))
		Expect(dma.Channel(0).InterruptFlag()).To(BeTrue())
	})

	It("should clear the vector on the first read only", func() {
		gomock.InOrder(
			line.EXPECT().SetInterruptLine(50, dma, true),
			line.EXPECT().SetInterruptLine(50, dma, false),
		)
		writeReg(dma, ChannelOffset(1, DMAxCTL), CtlIE|CtlIFG)

		Expect(readReg(dma, DMAIV)).To(Equal(uint16(4)))
		Expect(readReg(dma, DMAIV)).To(Equal(uint16(0)))
	})

	It("should not release the vector on a peek", func() {
		line.EXPECT().SetInterruptLine(50, dma, true)
		writeReg(dma, ChannelOffset(1, DMAxCTL), CtlIE|CtlIFG)

		v, err := dma.Peek(DMAIV)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint16(4)))
		Expect(dma.Vector()).To(Equal(uint16(4)))
	})

	It("should clear the vector on any write to DMAIV", func() {
		gomock.InOrder(
			line.EXPECT().SetInterruptLine(50, dma, true),
			line.EXPECT().SetInterruptLine(50, dma, false),
		)
		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE|CtlIFG)

		writeReg(dma, DMAIV, 0x1234)

		Expect(dma.Vector()).To(Equal(uint16(0)))
		Expect(dma.Channel(0).InterruptFlag()).To(BeFalse())
		Expect(readReg(dma, ChannelOffset(0, DMAxCTL)) & CtlIFG).To(BeZero())
	})

	It("should release the vector when the owner clears its flag", func() {
		gomock.InOrder(
			line.EXPECT().SetInterruptLine(50, dma, true),
			line.EXPECT().SetInterruptLine(50, dma, false),
		)
		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE|CtlIFG)

		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE)

		Expect(dma.Vector()).To(Equal(uint16(0)))
	})

	It("should release the vector when the owner clears flag and enable together",
		func() {
			gomock.InOrder(
				line.EXPECT().SetInterruptLine(50, dma, true),
				line.EXPECT().SetInterruptLine(50, dma, false),
			)

			writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE|CtlIFG)
			Expect(dma.Vector()).To(Equal(uint16(2)))

			writeReg(dma, ChannelOffset(0, DMAxCTL), 0)

			Expect(dma.Channel(0).InterruptFlag()).To(BeFalse())
			Expect(dma.Vector()).To(Equal(uint16(0)))
			Expect(readReg(dma, DMAIV)).To(Equal(uint16(0)))
		})

	It("should keep the vector when the owner only clears its enable",
		func() {
			line.EXPECT().SetInterruptLine(50, dma, true)

			writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE|CtlIFG)
			writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIFG)

			Expect(dma.Vector()).To(Equal(uint16(2)))
		})

	It("should hand the vector over when the owner clears its flag", func() {
		gomock.InOrder(
			line.EXPECT().SetInterruptLine(50, dma, true),
			line.EXPECT().SetInterruptLine(50, dma, false),
			line.EXPECT().SetInterruptLine(50, dma, true),
		)
		writeReg(dma, ChannelOffset(2, DMAxCTL), CtlIE|CtlIFG)
		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE|CtlIFG)

		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE)

		Expect(dma.Vector()).To(Equal(uint16(6)))
	})

	It("should keep the vector when another channel clears its flag", func() {
		line.EXPECT().SetInterruptLine(50, dma, true)
		writeReg(dma, ChannelOffset(0, DMAxCTL), CtlIE|CtlIFG)
		writeReg(dma, ChannelOffset(1, DMAxCTL), CtlIE|CtlIFG)

		writeReg(dma, ChannelOffset(1, DMAxCTL), CtlIE)

		Expect(dma.Vector()).To(Equal(uint16(2)))
		Expect(dma.Channel(0).InterruptFlag()).To(BeTrue())
	})

	It("should always give the vector to the lowest pending channel", func() {
		line.EXPECT().SetInterruptLine(50, dma, gomock.Any()).AnyTimes()

		for _, order := range [][]int{{2, 1, 0}, {1, 2, 0}, {0, 2, 1}} {
			for _, i := range order {
				writeReg(dma, ChannelOffset(i, DMAxCTL), CtlIE|CtlIFG)
			}
			Expect(dma.Vector()).To(Equal(uint16(2)))

			Expect(readReg(dma, DMAIV)).To(Equal(uint16(2)))
			Expect(readReg(dma, DMAIV)).To(Equal(uint16(4)))
			Expect(readReg(dma, DMAIV)).To(Equal(uint16(6)))
			Expect(readReg(dma, DMAIV)).To(Equal(uint16(0)))
		}
	})
})
