package dto

import "time"

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	ProjectID    string     `json:"project_id"`
	ParentTaskID *string    `json:"parent_task_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	AssigneeID   *string    `json:"assignee_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents the partial-update body for PUT
// /tasks/{id}. Absent fields keep the stored value.
type UpdateTaskRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Priority        *string    `json:"priority,omitempty"`
	AssigneeID      *string    `json:"assignee_id,omitempty"`
	ProgressPercent *int       `json:"progress_percent,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

// UpdateProgressRequest represents the body for PUT /tasks/{id}/progress.
type UpdateProgressRequest struct {
	ProgressPercent int `json:"progress_percent"`
}

// CreateHistoryRequest represents the body for POST /tasks/{id}/history.
type CreateHistoryRequest struct {
	Comment              string `json:"comment"`
	CompletionPercentage int    `json:"completion_percentage"`
}

// ListTasksFilters represents query parameters for GET /tasks.
type ListTasksFilters struct {
	ProjectID    *string // ?project_id=<uuid>
	AssigneeID   *string // ?assignee_id=<uuid> or ?assignee_id=me
	ParentTaskID *string // ?parent_task_id=<uuid>
	Status       *string // ?status=todo (exact stored value)
}
