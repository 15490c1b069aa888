package tracing

// A Tracer receives the tasks a component reports, such as DMA blocks and
// their transfers. The SQLite tracer, the step counter and the average time
// tracer all implement it.
type Tracer interface {
	StartTask(task Task)
	StepTask(task Task)
	EndTask(task Task)
}
