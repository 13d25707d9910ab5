// Package board computes per-project kanban columns from a flat task
// list. Only top-level tasks appear in columns; subtasks stay out of
// board counts but their totals are rolled into the parent card.
package board

import (
	"github.com/opaline-labs/taskdeck/internal/domain"
	"github.com/opaline-labs/taskdeck/internal/status"
)

// Card is a top-level task as rendered on the board, with its subtask
// totals attached. Subtask completion does not roll up into the
// parent's status or progress; the counts are informational only.
type Card struct {
	Task             *domain.Task
	SubtaskCount     int
	DoneSubtaskCount int
}

// Columns partitions top-level tasks by normalized status. Tasks whose
// status matches no keyword set land in Unrecognized rather than being
// dropped: the four columns together always account for every
// top-level task in the input.
type Columns struct {
	Todo         []Card
	InProgress   []Card
	Done         []Card
	Unrecognized []Card
}

// TopLevelCount returns the total number of cards across all columns.
func (c Columns) TopLevelCount() int {
	return len(c.Todo) + len(c.InProgress) + len(c.Done) + len(c.Unrecognized)
}

// Bucketize builds board columns from a project's flat task list.
// Input order is preserved within each column.
func Bucketize(tasks []*domain.Task) Columns {
	// Roll subtask counts up to the parent before partitioning.
	subtaskTotals := make(map[string]int)
	subtaskDone := make(map[string]int)
	for _, t := range tasks {
		if t.ParentTaskID == nil {
			continue
		}
		subtaskTotals[*t.ParentTaskID]++
		if status.Normalize(t.Status) == domain.BucketDone {
			subtaskDone[*t.ParentTaskID]++
		}
	}

	var cols Columns
	for _, t := range tasks {
		if !t.IsTopLevel() {
			continue
		}

		card := Card{
			Task:             t,
			SubtaskCount:     subtaskTotals[t.ID],
			DoneSubtaskCount: subtaskDone[t.ID],
		}

		switch status.Normalize(t.Status) {
		case domain.BucketTodo:
			cols.Todo = append(cols.Todo, card)
		case domain.BucketInProgress:
			cols.InProgress = append(cols.InProgress, card)
		case domain.BucketDone:
			cols.Done = append(cols.Done, card)
		default:
			cols.Unrecognized = append(cols.Unrecognized, card)
		}
	}

	return cols
}
