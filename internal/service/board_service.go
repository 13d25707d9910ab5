package service

import (
	"context"
	"time"

	"github.com/opaline-labs/taskdeck/internal/board"
	"github.com/opaline-labs/taskdeck/internal/domain"
	"github.com/opaline-labs/taskdeck/internal/repository"
)

// BoardService builds rendered board snapshots and project statistics
// from store snapshots.
type BoardService struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(taskRepo *repository.TaskRepository, projectRepo *repository.ProjectRepository) *BoardService {
	return &BoardService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// Board holds a project's bucketized column view.
type Board struct {
	Project *domain.Project
	Columns board.Columns
}

// GetBoard fetches a project's tasks and partitions the top-level ones
// into columns.
func (s *BoardService) GetBoard(ctx context.Context, projectID string) (*Board, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &Board{
		Project: project,
		Columns: board.Bucketize(tasks),
	}, nil
}

// ProjectStats summarizes a project's top-level tasks.
type ProjectStats struct {
	TotalTasks      int
	TasksByBucket   map[domain.Bucket]int
	OverdueCount    int
	AvgProgress     float64
	TasksByAssignee map[string]int
	Unassigned      int
}

// GetStats computes project statistics over the current snapshot.
// Counts cover top-level tasks only, mirroring the board view.
func (s *BoardService) GetStats(ctx context.Context, projectID string) (*ProjectStats, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	cols := board.Bucketize(tasks)
	stats := &ProjectStats{
		TotalTasks: cols.TopLevelCount(),
		TasksByBucket: map[domain.Bucket]int{
			domain.BucketTodo:         len(cols.Todo),
			domain.BucketInProgress:   len(cols.InProgress),
			domain.BucketDone:         len(cols.Done),
			domain.BucketUnrecognized: len(cols.Unrecognized),
		},
		TasksByAssignee: make(map[string]int),
	}

	now := time.Now()
	progressSum := 0
	for _, col := range [][]board.Card{cols.Todo, cols.InProgress, cols.Done, cols.Unrecognized} {
		for _, card := range col {
			t := card.Task
			progressSum += t.ProgressPercent
			if t.IsOverdue(now) {
				stats.OverdueCount++
			}
			if t.AssigneeID != nil {
				stats.TasksByAssignee[*t.AssigneeID]++
			} else {
				stats.Unassigned++
			}
		}
	}

	if stats.TotalTasks > 0 {
		stats.AvgProgress = float64(progressSum) / float64(stats.TotalTasks)
	}

	return stats, nil
}
