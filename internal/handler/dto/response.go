package dto

import (
	"time"

	"github.com/opaline-labs/taskdeck/internal/board"
	"github.com/opaline-labs/taskdeck/internal/domain"
	"github.com/opaline-labs/taskdeck/internal/service"
	"github.com/opaline-labs/taskdeck/internal/status"
)

// TaskResponse represents a task as returned by the API. Bucket is the
// normalized display bucket; Status is the stored value, which may be
// legacy vocabulary.
type TaskResponse struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	ParentTaskID    *string    `json:"parent_task_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	Bucket          string     `json:"bucket"`
	Priority        string     `json:"priority"`
	AssigneeID      *string    `json:"assignee_id"`
	ProgressPercent int        `json:"progress_percent"`
	DueDate         *time.Time `json:"due_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// HistoryEntryResponse represents a ledger entry.
type HistoryEntryResponse struct {
	ID                   string    `json:"id"`
	TaskID               string    `json:"task_id"`
	UserID               string    `json:"user_id"`
	Comment              string    `json:"comment"`
	CompletionPercentage int       `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	AuthorName           string    `json:"author_name,omitempty"`
	AuthorEmail          string    `json:"author_email,omitempty"`
}

// HistoryListResponse represents the response for GET /tasks/{id}/history.
type HistoryListResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
	Total   int                    `json:"total"`
}

// BoardCard is a top-level task on the board with its subtask rollup.
type BoardCard struct {
	TaskResponse
	SubtaskCount     int `json:"subtask_count"`
	DoneSubtaskCount int `json:"done_subtask_count"`
}

// BoardResponse represents the response for GET /projects/{id}/board.
// The four columns together account for every top-level task.
type BoardResponse struct {
	ProjectID    string      `json:"project_id"`
	ProjectName  string      `json:"project_name"`
	Todo         []BoardCard `json:"todo"`
	InProgress   []BoardCard `json:"in_progress"`
	Done         []BoardCard `json:"done"`
	Unrecognized []BoardCard `json:"unrecognized"`
}

// StatsResponse represents the response for GET /projects/{id}/stats.
type StatsResponse struct {
	ProjectID       string         `json:"project_id"`
	TotalTasks      int            `json:"total_tasks"`
	TasksByBucket   map[string]int `json:"tasks_by_bucket"`
	OverdueCount    int            `json:"overdue_count"`
	AvgProgress     float64        `json:"avg_progress"`
	TasksByAssignee map[string]int `json:"tasks_by_assignee"`
	Unassigned      int            `json:"unassigned"`
}

// ToTaskResponse converts a domain.Task to its API shape.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:              task.ID,
		ProjectID:       task.ProjectID,
		ParentTaskID:    task.ParentTaskID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Bucket:          string(status.Normalize(task.Status)),
		Priority:        string(task.Priority),
		AssigneeID:      task.AssigneeID,
		ProgressPercent: task.ProgressPercent,
		DueDate:         task.DueDate,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

// ToHistoryEntryResponse converts a ledger entry to its API shape.
func ToHistoryEntryResponse(entry *domain.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:                   entry.ID,
		TaskID:               entry.TaskID,
		UserID:               entry.UserID,
		Comment:              entry.Comment,
		CompletionPercentage: entry.CompletionPercentage,
		CreatedAt:            entry.CreatedAt,
	}
}

// ToHistoryEntryWithAuthorResponse converts a joined ledger entry.
func ToHistoryEntryWithAuthorResponse(entry *domain.HistoryEntryWithAuthor) HistoryEntryResponse {
	resp := ToHistoryEntryResponse(&entry.HistoryEntry)
	resp.AuthorName = entry.AuthorName
	resp.AuthorEmail = entry.AuthorEmail
	return resp
}

// ToBoardResponse converts a board snapshot to its API shape.
func ToBoardResponse(b *service.Board) BoardResponse {
	return BoardResponse{
		ProjectID:    b.Project.ID,
		ProjectName:  b.Project.Name,
		Todo:         toBoardCards(b.Columns.Todo),
		InProgress:   toBoardCards(b.Columns.InProgress),
		Done:         toBoardCards(b.Columns.Done),
		Unrecognized: toBoardCards(b.Columns.Unrecognized),
	}
}

func toBoardCards(cards []board.Card) []BoardCard {
	out := make([]BoardCard, len(cards))
	for i, c := range cards {
		out[i] = BoardCard{
			TaskResponse:     ToTaskResponse(c.Task),
			SubtaskCount:     c.SubtaskCount,
			DoneSubtaskCount: c.DoneSubtaskCount,
		}
	}
	return out
}

// ToStatsResponse converts project statistics to their API shape.
func ToStatsResponse(projectID string, stats *service.ProjectStats) StatsResponse {
	byBucket := make(map[string]int, len(stats.TasksByBucket))
	for bucket, n := range stats.TasksByBucket {
		byBucket[string(bucket)] = n
	}

	return StatsResponse{
		ProjectID:       projectID,
		TotalTasks:      stats.TotalTasks,
		TasksByBucket:   byBucket,
		OverdueCount:    stats.OverdueCount,
		AvgProgress:     stats.AvgProgress,
		TasksByAssignee: stats.TasksByAssignee,
		Unassigned:      stats.Unassigned,
	}
}
