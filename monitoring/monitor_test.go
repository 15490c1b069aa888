package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcusim/dma"
	"github.com/sarchlab/mcusim/mem"
	"github.com/sarchlab/mcusim/platform"
)

var _ = Describe("Monitor", func() {
	var (
		p *platform.Platform
		m *Monitor
	)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		m.router().ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		var err error
		p, err = platform.New(platform.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())

		m = NewMonitor().WithPortNumber(0)
		m.RegisterSimulation(p.Simulation)
		m.RegisterBus(p.Bus)
	})

	It("should fall back to a random port for privileged ports", func() {
		Expect(NewMonitor().WithPortNumber(80).portNumber).To(Equal(0))
		Expect(NewMonitor().WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	It("should list components", func() {
		rec := get("/api/list_components")

		var names []string
		Expect(json.Unmarshal(rec.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(ContainElements("DMA", "INTC", "USCIB0"))
	})

	It("should report the current time", func() {
		rec := get("/api/now")

		Expect(rec.Body.String()).To(Equal(`{"now":0}`))
	})

	It("should pause and continue the engine", func() {
		Expect(get("/api/pause").Code).To(Equal(http.StatusOK))
		Expect(get("/api/continue").Code).To(Equal(http.StatusOK))
	})

	It("should report the DMA status", func() {
		Expect(p.Bus.Write(0x0500+dma.ChannelOffset(2, dma.DMAxSZ), 7,
			mem.AccessWord)).To(Succeed())

		rec := get("/api/dma/DMA")

		Expect(rec.Code).To(Equal(http.StatusOK))

		var s dma.Status
		Expect(json.Unmarshal(rec.Body.Bytes(), &s)).To(Succeed())
		Expect(s.Base).To(Equal(uint32(0x0500)))
		Expect(s.Channels[2].TotalSize).To(Equal(uint16(7)))
	})

	It("should dump the DMA registers as text", func() {
		rec := get("/api/dma/DMA/info")

		Expect(rec.Body.String()).To(ContainSubstring("DMACTLx 0: 0x0000"))
	})

	It("should answer 404 for unknown components", func() {
		Expect(get("/api/dma/DMA9").Code).To(Equal(http.StatusNotFound))
		Expect(get("/api/component/none").Code).To(Equal(http.StatusNotFound))
	})

	It("should refuse DMA queries on other components", func() {
		Expect(get("/api/dma/INTC").Code).To(Equal(http.StatusBadRequest))
	})

	It("should serialize a component", func() {
		rec := get("/api/component/DMA")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should reject malformed field requests", func() {
		rec := get("/api/field/" + url.PathEscape("{not json"))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should dump memory", func() {
		Expect(p.Load(0x1C00, []byte{0xDE, 0xAD})).To(Succeed())

		rec := get("/api/memory/0x1C00/2")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal(`{"address":7168,"data":"dead"}`))
	})

	It("should refuse to dump unmapped memory", func() {
		Expect(get("/api/memory/0x0000/2").Code).To(Equal(http.StatusBadRequest))
		Expect(get("/api/memory/0x1C00/x").Code).To(Equal(http.StatusBadRequest))
		Expect(get("/api/memory/0x1C00/4294967296").Code).
			To(Equal(http.StatusBadRequest))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("transfers", 4)
		bar.IncrementFinished(1)

		rec := get("/api/progress")

		var bars []map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0]["name"]).To(Equal("transfers"))
		Expect(bars[0]["finished"]).To(BeNumerically("==", 1))
		Expect(bar.Done()).To(BeFalse())

		m.CompleteProgressBar(bar)
		Expect(get("/api/progress").Body.String()).To(Equal("[]"))
	})
})
