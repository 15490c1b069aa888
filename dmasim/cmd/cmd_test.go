package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("dmasim", func() {
	var envFile string

	execute := func(args ...string) (string, error) {
		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetErr(out)
		rootCmd.SetArgs(append(args, "--env", envFile))

		err := rootCmd.Execute()

		return out.String(), err
	}

	BeforeEach(func() {
		envFile = filepath.Join(GinkgoT().TempDir(), "mcusim.env")
	})

	It("should list the bound triggers", func() {
		out, err := execute("triggers", "--all=false")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(" 0  DMAREQ    DMA:0"))
		Expect(out).To(ContainSubstring("18  USCIB0RX  USCIB0:0"))
		Expect(out).To(ContainSubstring("19  USCIB0TX  USCIB0:1"))
		Expect(out).NotTo(ContainSubstring("USCIA0RX"))
	})

	It("should list every trigger with --all", func() {
		out, err := execute("triggers", "--all")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(" 7  RES7      none"))
		Expect(out).To(ContainSubstring("31  DMAE0     none"))
	})

	It("should follow the dotenv file", func() {
		Expect(os.WriteFile(envFile,
			[]byte("MCUSIM_DMA_USCI_TRIGGERS=USCIA1\n"), 0o600)).To(Succeed())

		out, err := execute("triggers", "--all=false")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("20  USCIA1RX  USCIA1:0"))
		Expect(out).NotTo(ContainSubstring("USCIB0RX"))
	})

	It("should print the register map", func() {
		out, err := execute("regs", "--verbose=false")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(MatchRegexp(`DMAIV\s+0x0050e`))
		Expect(out).To(MatchRegexp(`DMA2SZ\s+0x0053a`))
		Expect(out).To(ContainSubstring("DMA.ch0 Disabled"))
	})

	It("should dump the status with --verbose", func() {
		out, err := execute("regs", "--verbose")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("(dma.Status)"))
		Expect(out).To(ContainSubstring(`Trigger: (string) (len=5) "DMA:0"`))
	})

	It("should receive and echo a message", func() {
		out, err := execute("run", "--message", "hi", "--echo",
			"--log=false", "--log-events=false", "--monitor=false",
			"--trace-db", "")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(`received "hi" at 0x01c00`))
		Expect(out).To(ContainSubstring("DMAIV 0x0002"))
		Expect(out).To(ContainSubstring(`sent "hi"`))
		Expect(out).To(ContainSubstring("average block"))
		Expect(out).To(ContainSubstring("4 transfers in 2 blocks"))
	})

	It("should read back the recorded blocks", func() {
		db := filepath.Join(GinkgoT().TempDir(), "trace")

		out, err := execute("run", "--message", "abc", "--echo=false",
			"--log=false", "--log-events=false", "--monitor=false",
			"--trace-db", db)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("trace written to " + db + ".sqlite3"))

		out, err = execute("trace", db+".sqlite3", "--kind", "dma_block")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(MatchRegexp(`ch0 single\s+\d+\s+\d+\s+\d+\s+3\n`))
		Expect(out).To(ContainSubstring("1 tasks"))
	})

	It("should refuse a missing trace database", func() {
		_, err := execute("trace",
			filepath.Join(GinkgoT().TempDir(), "none.sqlite3"))

		Expect(err).To(HaveOccurred())
	})

	It("should refuse an empty message", func() {
		_, err := execute("run", "--message", "", "--echo=false",
			"--monitor=false", "--trace-db", "")

		Expect(err).To(MatchError(ContainSubstring("must not be empty")))
	})

	It("should refuse to run without the serial triggers", func() {
		Expect(os.WriteFile(envFile,
			[]byte("MCUSIM_DMA_USCI_TRIGGERS=\n"), 0o600)).To(Succeed())

		_, err := execute("run", "--message", "x", "--echo=false",
			"--monitor=false", "--trace-db", "")

		Expect(err).To(MatchError(ContainSubstring("not bound")))
	})
})
