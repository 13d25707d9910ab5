package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opaline-labs/taskdeck/internal/domain"
	"github.com/opaline-labs/taskdeck/internal/repository"
)

// TaskService coordinates task writes: creation defaults, partial
// update merging, and the done/progress auto-completion rule.
type TaskService struct {
	taskRepo  *repository.TaskRepository
	validator *Validator
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		validator: NewValidator(taskRepo),
	}
}

// CreateTaskParams holds the caller-supplied fields for task creation.
type CreateTaskParams struct {
	ProjectID    string
	ParentTaskID *string
	Title        string
	Description  string
	Priority     *string
	AssigneeID   *string
	DueDate      *time.Time
}

// CreateTask creates a task with lifecycle defaults: status todo,
// progress 0, priority medium unless supplied.
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	if params.Title == "" {
		return nil, domain.ErrEmptyTitle
	}

	priority := domain.TaskPriorityMedium
	if params.Priority != nil {
		if err := s.validator.ValidatePriority(*params.Priority); err != nil {
			return nil, err
		}
		priority = domain.TaskPriority(*params.Priority)
	}

	if params.ParentTaskID != nil {
		if err := s.validator.ValidateParent(ctx, params.ProjectID, *params.ParentTaskID); err != nil {
			return nil, err
		}
	}

	task := &domain.Task{
		ProjectID:       params.ProjectID,
		ParentTaskID:    params.ParentTaskID,
		Title:           params.Title,
		Description:     params.Description,
		Status:          string(domain.TaskStatusTodo),
		Priority:        priority,
		AssigneeID:      params.AssigneeID,
		ProgressPercent: 0,
		DueDate:         params.DueDate,
	}

	task, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	slog.Info("task created",
		"task_id", task.ID,
		"project_id", task.ProjectID,
		"parent_task_id", task.ParentTaskID,
	)

	return task, nil
}

// UpdateTaskParams holds a partial update. Nil fields keep the stored
// value; supplied fields overwrite it.
type UpdateTaskParams struct {
	Title           *string
	Description     *string
	Status          *string
	Priority        *string
	AssigneeID      *string
	ProgressPercent *int
	DueDate         *time.Time
}

// UpdateTask merges a partial update over the stored record and writes
// the result. The auto-completion rule applies here: a merge that
// lands on done without an explicit progress value in the same call
// forces progress to 100; an explicit value always wins.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, params UpdateTaskParams) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if params.Status != nil {
		if err := s.validator.ValidateStatus(*params.Status); err != nil {
			return nil, err
		}
		task.Status = *params.Status
	}
	if params.Priority != nil {
		if err := s.validator.ValidatePriority(*params.Priority); err != nil {
			return nil, err
		}
		task.Priority = domain.TaskPriority(*params.Priority)
	}
	if params.ProgressPercent != nil {
		if err := s.validator.ValidateProgress(*params.ProgressPercent); err != nil {
			return nil, err
		}
		task.ProgressPercent = *params.ProgressPercent
	}
	if params.Title != nil {
		if *params.Title == "" {
			return nil, domain.ErrEmptyTitle
		}
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.AssigneeID != nil {
		task.AssigneeID = params.AssigneeID
	}
	if params.DueDate != nil {
		task.DueDate = params.DueDate
	}

	if domain.TaskStatus(task.Status) == domain.TaskStatusDone && params.ProgressPercent == nil {
		task.ProgressPercent = 100
	}

	task, err = s.taskRepo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	slog.Info("task updated",
		"task_id", task.ID,
		"status", task.Status,
		"progress_percent", task.ProgressPercent,
	)

	return task, nil
}

// UpdateProgress overwrites only the progress percentage. Callers use
// this as the second step after a history append; the two writes are
// independent and not transactional.
func (s *TaskService) UpdateProgress(ctx context.Context, taskID string, progress int) (*domain.Task, error) {
	if err := s.validator.ValidateProgress(progress); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.UpdateProgress(ctx, taskID, progress)
	if err != nil {
		return nil, err
	}

	slog.Info("task progress updated",
		"task_id", task.ID,
		"progress_percent", task.ProgressPercent,
	)

	return task, nil
}

// DeleteTask removes a task and its subtasks and history.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}

	slog.Info("task deleted", "task_id", taskID)
	return nil
}
