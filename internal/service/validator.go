package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/opaline-labs/taskdeck/internal/domain"
	"github.com/opaline-labs/taskdeck/internal/repository"
)

// Validator handles field and hierarchy validation for task writes.
// All checks run before any write reaches the store.
type Validator struct {
	taskRepo *repository.TaskRepository
}

// NewValidator creates a new Validator.
func NewValidator(taskRepo *repository.TaskRepository) *Validator {
	return &Validator{
		taskRepo: taskRepo,
	}
}

// ValidateStatus rejects status values outside the canonical set.
// Legacy values already in the store are tolerated on reads, but new
// writes must use the canonical vocabulary.
func (v *Validator) ValidateStatus(status string) error {
	if !domain.TaskStatus(status).IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return nil
}

// ValidatePriority rejects unknown priority values.
func (v *Validator) ValidatePriority(priority string) error {
	if !domain.TaskPriority(priority).IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, priority)
	}
	return nil
}

// ValidateProgress rejects percentages outside [0,100].
func (v *Validator) ValidateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidProgress, progress)
	}
	return nil
}

// ValidateParent enforces single-level nesting: a parent must exist,
// belong to the same project, and be top-level itself. Nothing in the
// schema prevents deeper trees, so the rule is enforced here rather
// than left to caller discipline.
func (v *Validator) ValidateParent(ctx context.Context, projectID, parentTaskID string) error {
	parent, err := v.taskRepo.GetByID(ctx, parentTaskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrParentNotFound, parentTaskID)
		}
		return fmt.Errorf("get parent task: %w", err)
	}

	if parent.ParentTaskID != nil {
		return fmt.Errorf("%w: task %s is a subtask of %s", domain.ErrParentNesting, parentTaskID, *parent.ParentTaskID)
	}

	if parent.ProjectID != projectID {
		return fmt.Errorf("%w: parent %s is in project %s", domain.ErrParentWrongProject, parentTaskID, parent.ProjectID)
	}

	return nil
}
