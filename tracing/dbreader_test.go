package tracing

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcusim/datarecording"
)

var _ = Describe("ReadTasks", func() {
	var (
		db     *sql.DB
		reader *datarecording.SQLiteReader
	)

	BeforeEach(func() {
		var err error
		db, err = sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		db.SetMaxOpenConns(1)

		writer := datarecording.NewWithDB(db)
		writer.CreateTable(TraceTable, TaskRecord{})
		writer.CreateTable(StepTable, StepRecord{})

		writer.InsertData(TraceTable, TaskRecord{
			ID: "b", Kind: "dma_block", What: "ch1", StartTime: 20, EndTime: 26,
		})
		writer.InsertData(TraceTable, TaskRecord{
			ID: "a", Kind: "dma_block", What: "ch0", StartTime: 3, EndTime: 10,
		})
		writer.InsertData(TraceTable, TaskRecord{
			ID: "c", Kind: "usci_frame", What: "tx", StartTime: 1, EndTime: 2,
		})
		writer.InsertData(StepTable, StepRecord{TaskID: "a", What: "transfer", Time: 10})
		writer.InsertData(StepTable, StepRecord{TaskID: "a", What: "transfer", Time: 3})
		writer.InsertData(StepTable, StepRecord{TaskID: "b", What: "transfer", Time: 20})
		writer.Flush()

		reader = datarecording.NewReaderWithDB(db)
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	It("should read the tasks of a kind in start order", func() {
		tasks, err := ReadTasks(context.Background(), reader, "dma_block")

		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(2))
		Expect(tasks[0].ID).To(Equal("a"))
		Expect(tasks[0].Duration()).To(Equal(uint64(7)))
		Expect(tasks[0].Steps).To(HaveLen(2))
		Expect(tasks[0].Steps[0].Time).To(Equal(uint64(3)))
		Expect(tasks[1].ID).To(Equal("b"))
		Expect(tasks[1].Steps).To(HaveLen(1))
	})

	It("should read every task without a kind", func() {
		tasks, err := ReadTasks(context.Background(), reader, "")

		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(3))
		Expect(tasks[0].ID).To(Equal("c"))
		Expect(tasks[0].Steps).To(BeEmpty())
	})
})
