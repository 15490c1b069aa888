package tracing

import (
	"context"

	"github.com/sarchlab/mcusim/datarecording"
)

// RecordedTask is a task read back from a database written by a DBTracer.
type RecordedTask struct {
	TaskRecord
	Steps []StepRecord
}

// Duration returns the number of cycles between the start and the end of the
// task.
func (t RecordedTask) Duration() uint64 {
	return t.EndTime - t.StartTime
}

// ReadTasks returns the recorded tasks of the given kind, ordered by start
// time, each with its steps. An empty kind returns every task.
func ReadTasks(
	ctx context.Context,
	reader datarecording.DataReader,
	kind string,
) ([]RecordedTask, error) {
	reader.MapTable(TraceTable, TaskRecord{})
	reader.MapTable(StepTable, StepRecord{})

	params := datarecording.QueryParams{OrderBy: "StartTime, ID"}
	if kind != "" {
		params.Where = "Kind = ?"
		params.Args = []any{kind}
	}

	rows, _, err := reader.Query(ctx, TraceTable, params)
	if err != nil {
		return nil, err
	}

	tasks := make([]RecordedTask, 0, len(rows))
	for _, row := range rows {
		task := RecordedTask{TaskRecord: *row.(*TaskRecord)}

		task.Steps, err = readSteps(ctx, reader, task.ID)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func readSteps(
	ctx context.Context,
	reader datarecording.DataReader,
	taskID string,
) ([]StepRecord, error) {
	rows, _, err := reader.Query(ctx, StepTable, datarecording.QueryParams{
		Where:   "TaskID = ?",
		Args:    []any{taskID},
		OrderBy: "Time",
	})
	if err != nil {
		return nil, err
	}

	steps := make([]StepRecord, 0, len(rows))
	for _, row := range rows {
		steps = append(steps, *row.(*StepRecord))
	}

	return steps, nil
}
