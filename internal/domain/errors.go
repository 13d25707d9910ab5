package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound       = errors.New("task not found")
	ErrParentNotFound     = errors.New("parent task not found")
	ErrParentNesting      = errors.New("parent task is itself a subtask")
	ErrParentWrongProject = errors.New("parent task belongs to a different project")
	ErrSelfParent         = errors.New("task cannot be its own parent")

	// History errors
	ErrEmptyComment = errors.New("comment is required")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user is inactive")
	ErrInvalidToken = errors.New("invalid authentication token")

	// Project errors
	ErrProjectNotFound = errors.New("project not found")

	// Validation errors
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrEmptyTitle      = errors.New("title is required")
)
