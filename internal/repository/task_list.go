package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/opaline-labs/taskdeck/internal/domain"
)

// TaskListFilters holds the supported filters for task listing. At
// least one of the scoping filters is expected; an unfiltered listing
// across all projects is not part of the API surface.
type TaskListFilters struct {
	ProjectID    *string // filter by owning project
	AssigneeID   *string // filter by assigned user
	ParentTaskID *string // filter to subtasks of a given task
	TopLevelOnly bool    // restrict to tasks without a parent
	Status       *string // exact match on the stored status string
}

// List retrieves tasks matching the filters, oldest first. Creation
// order keeps board columns stable between refetches.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, error) {
	qb := psql.Select(taskColumns...).From("tasks")

	if filters.ProjectID != nil {
		qb = qb.Where(sq.Eq{"project_id": *filters.ProjectID})
	}
	if filters.AssigneeID != nil {
		qb = qb.Where(sq.Eq{"assignee_id": *filters.AssigneeID})
	}
	if filters.ParentTaskID != nil {
		qb = qb.Where(sq.Eq{"parent_task_id": *filters.ParentTaskID})
	}
	if filters.TopLevelOnly {
		qb = qb.Where(sq.Eq{"parent_task_id": nil})
	}
	if filters.Status != nil {
		qb = qb.Where(sq.Eq{"status": *filters.Status})
	}

	qb = qb.OrderBy("created_at ASC")

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	return scanTasks(rows)
}

// ListByProject retrieves every task in a project, subtasks included.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.List(ctx, TaskListFilters{ProjectID: &projectID})
}

// ListByParent retrieves the direct subtasks of a task.
func (r *TaskRepository) ListByParent(ctx context.Context, parentID string) ([]*domain.Task, error) {
	return r.List(ctx, TaskListFilters{ParentTaskID: &parentID})
}

// ListByAssignee retrieves all tasks assigned to a user.
func (r *TaskRepository) ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	return r.List(ctx, TaskListFilters{AssigneeID: &userID})
}

// ListPastDue retrieves tasks whose due date has passed, oldest due
// first. Callers filter out completed tasks themselves, since "done"
// membership depends on status normalization, not on the stored string.
func (r *TaskRepository) ListPastDue(ctx context.Context) ([]*domain.Task, error) {
	query, args, err := psql.Select(taskColumns...).
		From("tasks").
		Where("due_date IS NOT NULL AND due_date < NOW()").
		OrderBy("due_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListPastDue query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query past-due tasks: %w", err)
	}

	return scanTasks(rows)
}
