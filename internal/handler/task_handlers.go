package handler

import (
	"encoding/json"
	"net/http"

	"github.com/opaline-labs/taskdeck/internal/handler/dto"
	"github.com/opaline-labs/taskdeck/internal/middleware"
	"github.com/opaline-labs/taskdeck/internal/repository"
	"github.com/opaline-labs/taskdeck/internal/service"
)

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a task with status todo and progress 0. A parent_task_id must reference a top-level task in the same project.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.ProjectID == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "project_id is required")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}

	task, err := h.taskService.CreateTask(ctx, service.CreateTaskParams{
		ProjectID:    req.ProjectID,
		ParentTaskID: req.ParentTaskID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		AssigneeID:   req.AssigneeID,
		DueDate:      req.DueDate,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleGetTask retrieves a single task.
// @Summary Get task details
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleUpdateTask applies a partial update to a task.
// @Summary Update a task
// @Description Merges the supplied fields over the stored record. Setting status to done without progress_percent forces progress to 100.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Partial update"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(ctx, taskID, service.UpdateTaskParams{
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Priority:        req.Priority,
		AssigneeID:      req.AssigneeID,
		ProgressPercent: req.ProgressPercent,
		DueDate:         req.DueDate,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleUpdateProgress overwrites a task's progress percentage.
// @Summary Update task progress
// @Description Writes only progress_percent. This is the propagation half of the history append protocol; the ledger is not touched.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateProgressRequest true "Progress update"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/progress [put]
func (h *Handler) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateProgress(ctx, taskID, req.ProgressPercent)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleDeleteTask removes a task.
// @Summary Delete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(ctx, taskID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListTasks returns tasks matching the query filters.
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param project_id query string false "Filter by project UUID"
// @Param assignee_id query string false "Filter by assignee: 'me' or user UUID"
// @Param parent_task_id query string false "Filter to subtasks of a task"
// @Param status query string false "Exact match on the stored status string"
// @Success 200 {object} dto.TasksListResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	query := r.URL.Query()
	var filters repository.TaskListFilters

	if projectID := query.Get("project_id"); projectID != "" {
		filters.ProjectID = &projectID
	}
	if assigneeID := query.Get("assignee_id"); assigneeID != "" {
		if assigneeID == "me" {
			filters.AssigneeID = &user.ID
		} else {
			filters.AssigneeID = &assigneeID
		}
	}
	if parentID := query.Get("parent_task_id"); parentID != "" {
		filters.ParentTaskID = &parentID
	}
	if statusParam := query.Get("status"); statusParam != "" {
		filters.Status = &statusParam
	}

	if filters.ProjectID == nil && filters.AssigneeID == nil && filters.ParentTaskID == nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"at least one of project_id, assignee_id, parent_task_id is required")
		return
	}

	tasks, err := h.taskRepo.List(ctx, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}

	out := make([]dto.TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = dto.ToTaskResponse(task)
	}

	respondJSON(w, http.StatusOK, dto.TasksListResponse{
		Tasks: out,
		Total: len(out),
	})
}
