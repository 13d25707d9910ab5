package domain

import "time"

// TaskStatus is the canonical status vocabulary for new writes.
// Stored records may carry legacy free-form strings; those are
// normalized at read boundaries (see the status package) rather than
// rewritten in place.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid checks if the status is one of the canonical values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

// Bucket is the derived kanban column for a task. It is computed from
// the (possibly legacy) status string and never persisted.
type Bucket string

const (
	BucketTodo         Bucket = "todo"
	BucketInProgress   Bucket = "in_progress"
	BucketDone         Bucket = "done"
	BucketUnrecognized Bucket = "unrecognized"
)

// Task represents a unit of work inside a project. Tasks form a
// two-level tree: a task with a nil ParentTaskID is top-level, a task
// pointing at a top-level task is a subtask. Subtasks never carry
// children of their own.
type Task struct {
	ID              string
	ProjectID       string
	ParentTaskID    *string
	Title           string
	Description     string
	Status          string // canonical or legacy; new writes go through TaskStatus
	Priority        TaskPriority
	AssigneeID      *string
	ProgressPercent int
	DueDate         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTopLevel reports whether the task sits at the root of its tree.
func (t *Task) IsTopLevel() bool {
	return t.ParentTaskID == nil
}

// IsAssignedTo checks if the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// IsOverdue reports whether the due date has passed for an unfinished task.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && TaskStatus(t.Status) != TaskStatusDone
}
