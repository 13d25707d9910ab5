package handler

import (
	"net/http"

	"github.com/opaline-labs/taskdeck/internal/handler/dto"
)

// handleGetBoard returns a project's kanban columns.
// @Summary Get project board
// @Description Top-level tasks bucketized by normalized status. Tasks with unrecognized legacy statuses appear in the unrecognized column rather than being dropped.
// @Tags board
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.BoardResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/board [get]
func (h *Handler) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projectID, ok := extractPathID(w, r, "project")
	if !ok {
		return
	}

	b, err := h.boardService.GetBoard(ctx, projectID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBoardResponse(b))
}

// handleGetStats returns project statistics.
// @Summary Get project statistics
// @Description Bucket counts, overdue count, average progress, and per-assignee counts over top-level tasks.
// @Tags board
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.StatsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projectID, ok := extractPathID(w, r, "project")
	if !ok {
		return
	}

	stats, err := h.boardService.GetStats(ctx, projectID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStatsResponse(projectID, stats))
}
