package board_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opaline-labs/taskdeck/internal/board"
	"github.com/opaline-labs/taskdeck/internal/domain"
)

func task(id, st string, parent *string) *domain.Task {
	return &domain.Task{ID: id, Status: st, ParentTaskID: parent}
}

func TestBucketize_PartitionsTopLevelTasks(t *testing.T) {
	tasks := []*domain.Task{
		task("t1", "todo", nil),
		task("t2", "Pending Review", nil),
		task("t3", "in_progress", nil),
		task("t4", "ONGOING", nil),
		task("t5", "done", nil),
		task("t6", "Completed", nil),
		task("t7", "blocked", nil), // legacy value outside all keyword sets
		task("t8", "", nil),
	}

	cols := board.Bucketize(tasks)

	assert.Len(t, cols.Todo, 2)
	assert.Len(t, cols.InProgress, 2)
	assert.Len(t, cols.Done, 2)
	assert.Len(t, cols.Unrecognized, 2)
	assert.Equal(t, len(tasks), cols.TopLevelCount(), "no task may be lost")
}

func TestBucketize_ExcludesSubtasks(t *testing.T) {
	parent := "p1"
	tasks := []*domain.Task{
		task("p1", "in_progress", nil),
		task("s1", "done", &parent),
		task("s2", "todo", &parent),
	}

	cols := board.Bucketize(tasks)

	require.Len(t, cols.InProgress, 1)
	assert.Equal(t, 1, cols.TopLevelCount(), "subtasks stay off the board")

	card := cols.InProgress[0]
	assert.Equal(t, "p1", card.Task.ID)
	assert.Equal(t, 2, card.SubtaskCount)
	assert.Equal(t, 1, card.DoneSubtaskCount)
}

// A done parent does not imply done subtasks, and vice versa; the
// board reports both sides without reconciling them.
func TestBucketize_NoStatusRollup(t *testing.T) {
	parent := "p1"
	tasks := []*domain.Task{
		{ID: "p1", Status: "done", ProgressPercent: 100},
		task("s1", "todo", &parent),
	}

	cols := board.Bucketize(tasks)

	require.Len(t, cols.Done, 1)
	assert.Equal(t, 100, cols.Done[0].Task.ProgressPercent)
	assert.Equal(t, 1, cols.Done[0].SubtaskCount)
	assert.Equal(t, 0, cols.Done[0].DoneSubtaskCount)
}

func TestBucketize_ExhaustiveAndDisjoint(t *testing.T) {
	statuses := []string{"todo", "pending", "in_progress", "ongoing", "done", "completed", "weird", ""}

	var tasks []*domain.Task
	for i, st := range statuses {
		tasks = append(tasks, task(fmt.Sprintf("t%d", i), st, nil))
	}

	cols := board.Bucketize(tasks)

	seen := make(map[string]int)
	for _, col := range [][]board.Card{cols.Todo, cols.InProgress, cols.Done, cols.Unrecognized} {
		for _, c := range col {
			seen[c.Task.ID]++
		}
	}

	require.Len(t, seen, len(tasks))
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %s must appear in exactly one column", id)
	}
}

func TestBucketize_Empty(t *testing.T) {
	cols := board.Bucketize(nil)
	assert.Equal(t, 0, cols.TopLevelCount())
}
