package handler

import (
	"encoding/json"
	"net/http"

	"github.com/opaline-labs/taskdeck/internal/handler/dto"
	"github.com/opaline-labs/taskdeck/internal/middleware"
)

// handleCreateHistory appends a progress snapshot to a task's ledger.
// @Summary Append a history entry
// @Description Records an immutable comment + completion percentage. The task's own progress_percent is NOT updated; callers propagate via PUT /tasks/{id}/progress as a second write.
// @Tags history
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.CreateHistoryRequest true "History entry"
// @Success 201 {object} dto.HistoryEntryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/history [post]
func (h *Handler) handleCreateHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	var req dto.CreateHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	entry, err := h.historyService.Append(ctx, taskID, user.ID, req.Comment, req.CompletionPercentage)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToHistoryEntryResponse(entry))
}

// handleListHistory returns a task's ledger, oldest first.
// @Summary List task history
// @Description Activity timeline with author identity, in creation order.
// @Tags history
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.HistoryListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/history [get]
func (h *Handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractPathID(w, r, "task")
	if !ok {
		return
	}

	entries, err := h.historyService.ListWithAuthors(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	out := make([]dto.HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = dto.ToHistoryEntryWithAuthorResponse(entry)
	}

	respondJSON(w, http.StatusOK, dto.HistoryListResponse{
		Entries: out,
		Total:   len(out),
	})
}
