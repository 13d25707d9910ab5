package service

import (
	"context"
	"log/slog"

	"github.com/opaline-labs/taskdeck/internal/domain"
	"github.com/opaline-labs/taskdeck/internal/repository"
)

// HistoryService owns the progress/comment ledger. Appends never touch
// the owning task: propagation of a completion percentage into the
// task row is a separate write the caller performs against
// TaskService. The two writes can race with a concurrent status
// update, leaving the task's progress and the latest ledger entry
// briefly inconsistent; the next refetch resolves it.
type HistoryService struct {
	historyRepo *repository.HistoryRepository
	taskRepo    *repository.TaskRepository
	validator   *Validator
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(historyRepo *repository.HistoryRepository, taskRepo *repository.TaskRepository) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		taskRepo:    taskRepo,
		validator:   NewValidator(taskRepo),
	}
}

// Append records a progress snapshot for a task. The comment must be
// non-empty and the percentage within [0,100]; both are rejected before
// any write.
func (s *HistoryService) Append(ctx context.Context, taskID, userID, comment string, completionPercentage int) (*domain.HistoryEntry, error) {
	if comment == "" {
		return nil, domain.ErrEmptyComment
	}
	if err := s.validator.ValidateProgress(completionPercentage); err != nil {
		return nil, err
	}

	// Reject appends against unknown tasks up front.
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	entry := &domain.HistoryEntry{
		TaskID:               taskID,
		UserID:               userID,
		Comment:              comment,
		CompletionPercentage: completionPercentage,
	}

	if err := s.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	slog.Info("history entry appended",
		"task_id", taskID,
		"user_id", userID,
		"entry_id", entry.ID,
		"completion_percentage", completionPercentage,
	)

	return entry, nil
}

// List returns a task's entries oldest first. Each call is a fresh
// read of the ledger, not a live subscription.
func (s *HistoryService) List(ctx context.Context, taskID string) ([]*domain.HistoryEntry, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByTaskID(ctx, taskID)
}

// ListWithAuthors returns a task's entries joined with author identity,
// oldest first.
func (s *HistoryService) ListWithAuthors(ctx context.Context, taskID string) ([]*domain.HistoryEntryWithAuthor, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByTaskIDWithAuthors(ctx, taskID)
}
